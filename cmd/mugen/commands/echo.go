package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func echoCmd(o *options) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "echo <json>",
		Short: "Round-trip a JSON value through the peer over the security session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if err := json.Unmarshal([]byte(args[0]), &v); err != nil {
				return fmt.Errorf("parse value: %w", err)
			}

			var out json.RawMessage
			if err := o.app.Secure.Call(cmd.Context(), path, v, &out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "/echo", "endpoint path under the base URL")
	return cmd
}
