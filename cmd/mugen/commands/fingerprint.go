package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mugen/internal/crypto"
)

// fingerprintCmd prints the fingerprint the client logs as peer_fingerprint,
// so a server key can be matched against client logs.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [pem-file]",
		Short: "Print the fingerprint of a P-256 public key (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		// No backend is involved, so skip the root wiring.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			pem, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			pub, err := crypto.ParsePublicKey(string(pem))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", crypto.PublicKeyFingerprint(pub))
			return nil
		},
	}
}
