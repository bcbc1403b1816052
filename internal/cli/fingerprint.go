package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFingerprintCommand(s *settings) *cobra.Command {
	var (
		keyPath string
		short   bool
	)
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint of a key document",
		Long: `Print the SHA-256 fingerprint of the public key in --key. Compare it
with the key owner over a trusted channel before encrypting to the key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.loadKey(keyPath)
			if err != nil {
				return err
			}
			fp, err := c.Fingerprint()
			if err != nil {
				return err
			}
			if short {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), fp.Short())
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fp.String())
			return err
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "Key document (public or private).")
	cmd.Flags().BoolVar(&short, "short", false, "Print only the first 8 bytes, colon separated.")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
