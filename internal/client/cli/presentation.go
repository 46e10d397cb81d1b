package cli

import (
	"fmt"

	"github.com/dmitrijs2005/gophslides/internal/client/deck"
	"github.com/dmitrijs2005/gophslides/internal/filex"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *App) printLinks(link *deck.Link) {
	fmt.Fprintln(a.out, color.CyanString("view:")+" "+link.View())
	if link.CanEdit() {
		fmt.Fprintln(a.out, color.CyanString("edit:")+" "+link.String())
		fmt.Fprintln(a.out, color.YellowString("→")+" anyone with the edit link can change the deck; share the view link instead")
	}
}

func (a *App) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [deck.md|-]",
		Short: "Create a presentation from a deck file, or with a welcome slide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md := ""
			if len(args) == 1 {
				var err error
				if md, err = a.readDeck(args[0]); err != nil {
					return err
				}
			}

			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Encrypting and uploading...")
			link, err := svc.Create(cmd.Context(), md)
			stop()
			if link != nil {
				fmt.Fprintln(a.out, color.GreenString("✓")+" Presentation "+color.YellowString(link.PublicID)+" created")
				a.printLinks(link)
			}
			return err
		},
	}
}

func (a *App) showCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "show <link|id>",
		Short: "Decrypt a presentation and print it as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Fetching and decrypting...")
			opened, err := svc.Open(cmd.Context(), args[0])
			stop()
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Fprint(a.out, opened.Markdown())
				return nil
			}
			if err := filex.WriteFileAtomic(out, []byte(opened.Markdown()), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %d slides (%s) written to %s\n", color.GreenString("✓"), len(opened.Slides), opened.Theme, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "O", "", "write the deck to a file instead of stdout")
	return cmd
}

func (a *App) pushCommand() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "push <link|id> <deck.md|->",
		Short: "Replace the slides of a presentation with a deck file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.readDeck(args[1])
			if err != nil {
				return err
			}
			ref, err := a.withPromptedSecret(args[0])
			if err != nil {
				return err
			}
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Encrypting and uploading...")
			res, err := svc.Push(cmd.Context(), ref, md, theme)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s saved: %d updated, %d added, %d removed (theme %s)\n",
				color.GreenString("✓"), res.Updated, res.Created, res.Deleted, res.Theme)
			return nil
		},
	}
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "also switch to this theme")
	return cmd
}

func (a *App) themeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theme <link|id> <theme.css>",
		Short: "Change the theme of a presentation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.withPromptedSecret(args[0])
			if err != nil {
				return err
			}
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.SetTheme(cmd.Context(), ref, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, color.GreenString("✓")+" theme set to "+color.YellowString(args[1]))
			return nil
		},
	}
}

func (a *App) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <link|id>",
		Short: "Check that an edit link carries a valid secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.withPromptedSecret(args[0])
			if err != nil {
				return err
			}
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := svc.Verify(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(a.out, color.GreenString("✓")+" edit secret is valid")
			} else {
				fmt.Fprintln(a.out, color.RedString("✗")+" edit secret is not valid")
			}
			return nil
		},
	}
}

func (a *App) exportCommand() *cobra.Command {
	var (
		out     string
		decrypt bool
	)

	cmd := &cobra.Command{
		Use:   "export <link|id>",
		Short: "Snapshot a presentation to object storage and print a download URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.withPromptedSecret(args[0])
			if err != nil {
				return err
			}
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Exporting...")
			url, err := svc.Export(cmd.Context(), ref)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, color.CyanString("url:")+" "+url)

			if out == "" {
				return nil
			}
			data, err := svc.DownloadSnapshot(cmd.Context(), ref, url, decrypt)
			if err != nil {
				return err
			}
			if err := filex.WriteFileAtomic(out, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintln(a.out, color.GreenString("✓")+" snapshot written to "+out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "O", "", "download the snapshot to this file")
	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "decrypt the downloaded snapshot into a markdown deck")
	return cmd
}

func (a *App) linksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "links <link|id>",
		Short: "Print the view and edit links of a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}
			link, err := svc.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printLinks(link)
			return nil
		},
	}
}
