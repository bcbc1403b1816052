package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheusHen/e2ee/e2ee/asym"
)

func newKeygenCommand(s *settings) *cobra.Command {
	var (
		bits       int
		publicOut  string
		privateOut string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and write its key documents",
		Long: `Generate an RSA key pair. The public key document goes to --public-out
and the private one to --private-out; "-" writes to standard output.
Private key files are created with mode 0600.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := s.opts
			if cmd.Flags().Changed("bits") {
				opts.KeySize = bits
			}
			c, err := asym.Generate(opts)
			if err != nil {
				return err
			}

			pub, err := c.ExportPublic()
			if err != nil {
				return err
			}
			priv, err := c.ExportPrivate()
			if err != nil {
				return err
			}
			if err := writeDocument(cmd.OutOrStdout(), publicOut, pub, 0o644); err != nil {
				return err
			}
			if err := writeDocument(cmd.OutOrStdout(), privateOut, priv, 0o600); err != nil {
				return err
			}

			fp, err := c.Fingerprint()
			if err != nil {
				return err
			}
			log.Info("generated key pair",
				zap.Int("bits", c.KeySize()),
				zap.String("fingerprint", fp.String()))
			fmt.Fprintf(cmd.ErrOrStderr(), "fingerprint: %s\n", fp.Short())
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", asym.DefaultKeySize, "Modulus size in bits (overrides keySize from the config).")
	cmd.Flags().StringVar(&publicOut, "public-out", "-", "Where to write the public key document.")
	cmd.Flags().StringVar(&privateOut, "private-out", "-", "Where to write the private key document.")
	return cmd
}

func writeDocument(stdout io.Writer, path, doc string, perm os.FileMode) error {
	if path == "-" || path == "" {
		_, err := fmt.Fprintln(stdout, doc)
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
