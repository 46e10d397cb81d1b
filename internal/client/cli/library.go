package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List decks remembered on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}
			saved, err := svc.Library(cmd.Context())
			if err != nil {
				return err
			}
			if len(saved) == 0 {
				fmt.Fprintln(a.out, "No decks yet. Run "+color.YellowString("gophslides create")+" to make one.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tACCESS\tUPDATED\tTITLE")
			for _, d := range saved {
				access := "view"
				if d.CanEdit() {
					access = "edit"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.PublicID, access, d.UpdatedAt.Local().Format("2006-01-02 15:04"), d.Title)
			}
			return tw.Flush()
		},
	}
}

func (a *App) forgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <id>",
		Short: "Remove a deck from the local library (the presentation itself is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Forget(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, color.GreenString("✓")+" forgot "+args[0])
			return nil
		},
	}
}

func (a *App) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.deckService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, color.GreenString("✓")+" server "+a.config.ServerEndpointAddr+" is up")
			return nil
		},
	}
}
