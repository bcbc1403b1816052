package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheusHen/e2ee/e2ee/asym"
)

var errNotPrivate = errors.New("key file does not contain a private key")

func newEncryptCommand(s *settings) *cobra.Command {
	var (
		keyPath string
		text    bool
	)
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt standard input for the owner of a key",
		Long: `Encrypt standard input with the public half of --key and print the
ciphertext as base64. With --text the input is treated as text: one trailing
newline is dropped and the rest is converted to the configured encoding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.loadKey(keyPath)
			if err != nil {
				return err
			}
			in, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			var ct []byte
			if text {
				ct, err = c.EncryptText(trimNewline(string(in)), s.padding)
			} else {
				ct, err = c.Encrypt(in, s.padding)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(ct))
			return err
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "Key document of the recipient (public or private).")
	cmd.Flags().BoolVar(&text, "text", false, "Treat input as text in the configured encoding.")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newDecryptCommand(s *settings) *cobra.Command {
	var (
		keyPath string
		text    bool
	)
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt base64 ciphertext from standard input",
		Long: `Decrypt the base64 ciphertext on standard input with the private key
in --key. With --text the plaintext is decoded from the configured encoding
and printed followed by a newline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.loadKey(keyPath)
			if err != nil {
				return err
			}
			if !c.HasPrivateKey() {
				return errNotPrivate
			}
			in, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ct, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(in)))
			if err != nil {
				return fmt.Errorf("ciphertext is not base64: %w", err)
			}

			if text {
				pt, err := c.DecryptText(ct, s.padding)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), pt)
				return err
			}
			pt, err := c.Decrypt(ct, s.padding)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(pt)
			return err
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "Private key document.")
	cmd.Flags().BoolVar(&text, "text", false, "Decode the plaintext as text in the configured encoding.")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// loadKey reads a key document from path and builds a cipher with the
// configured options.
func (s *settings) loadKey(path string) (*asym.Cipher, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	params, err := asym.ImportKey(string(doc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return asym.New(params, s.opts)
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
