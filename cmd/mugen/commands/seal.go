package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// sealCmd prints the envelope a JSON value would travel in. The session is
// discarded when the process exits, so the output is only useful for
// inspecting the wire format.
func sealCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seal <json>",
		Short: "Encrypt a JSON value under a fresh session and print the envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if err := json.Unmarshal([]byte(args[0]), &v); err != nil {
				return fmt.Errorf("parse value: %w", err)
			}
			if err := o.app.Sessions.EnsureSession(cmd.Context(), o.app.Config.APIBaseURL); err != nil {
				return err
			}
			env, err := o.app.Sessions.EncryptData(v)
			if err != nil {
				return err
			}
			id, _ := o.app.Sessions.SessionID()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				SessionID string `json:"session_id"`
				IV        string `json:"iv"`
				Content   string `json:"content"`
			}{id.String(), env.IV, env.Content})
		},
	}
}
