package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func handshakeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "handshake",
		Short: "Establish a security session with the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.app.Sessions.EnsureSession(cmd.Context(), o.app.Config.APIBaseURL); err != nil {
				return fmt.Errorf("handshake with %s: %w", o.app.Config.APIBaseURL, err)
			}
			id, _ := o.app.Sessions.SessionID()
			fmt.Fprintf(cmd.OutOrStdout(), "Session established. ID=%s\n", id)
			return nil
		},
	}
}
