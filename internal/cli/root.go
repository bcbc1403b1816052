// Package cli implements the e2ee command line tool.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/TheusHen/e2ee/e2ee/asym"
	"github.com/TheusHen/e2ee/e2ee/logs"
	"github.com/TheusHen/e2ee/internal/config"
)

const envPrefix = "E2EE_"

var log = logs.NewNamed("e2ee.cli")

// settings is shared by all subcommands of one command tree.
type settings struct {
	configPath string
	logLevel   string
	encoding   string
	pkcs1      bool

	cfg     config.Config
	opts    asym.Options
	padding asym.Padding
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:   "e2ee",
		Short: "RSA key pairs and message encryption for end-to-end exchange",
		Long: `e2ee generates RSA key pairs, exports them as key documents and
encrypts or decrypts short messages with RSA-OAEP.

One side runs "keygen" and hands out the public key document; the other
side encrypts with "encrypt --key public.xml" and the owner decrypts with
"decrypt --key private.xml". Ciphertext is read and written as base64.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setFlagsFromEnv(envPrefix, cmd.Flags())
			return s.load(cmd)
		},
	}

	fs := root.PersistentFlags()
	fs.StringVar(&s.configPath, "config", "", "Path to a YAML configuration file.")
	fs.StringVar(&s.logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	fs.StringVar(&s.encoding, "encoding", "", "Text encoding for --text input and output (default utf-16).")
	fs.BoolVar(&s.pkcs1, "pkcs1", false, "Use PKCS#1 v1.5 padding instead of OAEP.")

	root.AddCommand(
		newKeygenCommand(s),
		newEncryptCommand(s),
		newDecryptCommand(s),
		newFingerprintCommand(s),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree. It is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load resolves the configuration: defaults, then the config file, then flags.
func (s *settings) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if s.configPath != "" {
		var err error
		if cfg, err = config.Load(s.configPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = s.logLevel
	}
	if flags.Changed("encoding") {
		cfg.Encoding = s.encoding
	}
	if flags.Changed("pkcs1") && s.pkcs1 {
		cfg.Padding = config.PaddingPKCS1
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logs.Build(cfg.Log.Level, logs.Format(cfg.Log.Format))
	if err != nil {
		return err
	}
	logs.SetDefault(l)

	if s.opts, err = cfg.Options(); err != nil {
		return err
	}
	if s.padding, err = cfg.PaddingMode(); err != nil {
		return err
	}
	s.cfg = cfg
	log.Debug("configuration loaded",
		zap.String("file", s.configPath),
		zap.Int("keySize", cfg.KeySize),
		zap.String("encoding", cfg.Encoding),
		zap.Stringer("padding", s.padding))
	return nil
}

// setFlagsFromEnv sets every flag not given on the command line from
// PREFIX_FLAG_NAME in the environment.
func setFlagsFromEnv(prefix string, fs *pflag.FlagSet) {
	set := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) {
		set[f.Name] = true
	})
	fs.VisitAll(func(f *pflag.Flag) {
		if set[f.Name] {
			return
		}
		cleanPrefix := strings.TrimSuffix(prefix, "_")
		name := fmt.Sprintf("%s_%s", cleanPrefix, strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_"))
		if e, ok := os.LookupEnv(name); ok {
			_ = fs.Set(f.Name, e)
		}
	})
}
