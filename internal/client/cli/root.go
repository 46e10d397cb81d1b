package cli

import (
	"github.com/dmitrijs2005/gophslides/internal/buildinfo"
	"github.com/dmitrijs2005/gophslides/internal/client/config"
	"github.com/spf13/cobra"
)

func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gophslides",
		Short: "End-to-end encrypted markdown slide decks",
		Long: `gophslides creates, edits and shares markdown slide decks.

Slides are encrypted on this machine with a key that only travels inside the
#fragment of a share link. The server stores ciphertext it cannot read.`,
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString(config.FlagConfig)
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(path, cmd.Flags())
			if err != nil {
				return err
			}
			a.config = cfg
			return nil
		},
	}

	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log API activity to stderr")
	root.PersistentFlags().BoolVarP(&a.askSecret, "ask-secret", "s", false, "prompt for the edit secret when given a view link")

	root.AddCommand(
		a.createCommand(),
		a.showCommand(),
		a.pushCommand(),
		a.themeCommand(),
		a.verifyCommand(),
		a.exportCommand(),
		a.linksCommand(),
		a.listCommand(),
		a.forgetCommand(),
		a.pingCommand(),
		a.versionCommand(),
	)

	return root
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buildinfo.PrintBuildData(a.out)
			return nil
		},
	}
}
