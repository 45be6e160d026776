package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Start or stop the Stream Deck application",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the Stream Deck application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := startStreamDeck(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "started Stream Deck")
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the Stream Deck application, e.g. before installing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := killStreamDeck(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "stopped Stream Deck")
			return err
		},
	})

	return cmd
}
