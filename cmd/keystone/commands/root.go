package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keystone/internal/app"
	"keystone/internal/compat"
	"keystone/internal/logging"
)

// skipCompat marks commands that do no cryptography.
const skipCompat = "keystone/skip-compat"

// checkCompat is swapped in tests.
var checkCompat = compat.Check

var (
	configFile string
	passphrase string
	cfg        app.Config
	appCtx     *app.Wire
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	configFile, passphrase, cfg, appCtx = "", "", app.Config{}, nil

	root := &cobra.Command{
		Use:           "keystone",
		Short:         "Versioned Curve25519 key derivation, signing and sealing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.LoadConfig(cmd, configFile)
			if err != nil {
				return err
			}
			cfg = c
			if err := logging.SetLevel(cfg.LogLevel); err != nil {
				return err
			}

			if cmd.Annotations[skipCompat] == "" {
				if err := checkCompat(); err != nil {
					return err
				}
			}

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = w
			logging.Debugf("home %s, derivation %s, encoding %s", cfg.Home, appCtx.Version, appCtx.Enc)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/keystone/keystone.yaml)")
	root.PersistentFlags().String("home", "", "key directory (default ~/.keystone)")
	root.PersistentFlags().String("kdf", "", "derivation version: legacy, argon2i, argon2id or current")
	root.PersistentFlags().Uint32("kdf-max-memory", 0, "refuse derivations needing more KiB than this (0 = no cap)")
	root.PersistentFlags().String("encoding", "", "output encoding: hex, base64 or base58")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase (prompted when omitted)")

	root.AddCommand(
		generateCmd(), deriveCmd(), importCmd(), exportCmd(), listCmd(), removeCmd(),
		pubkeyCmd(), fingerprintCmd(),
		signCmd(), verifyCmd(), sealCmd(), unsealCmd(),
		probeCmd(), configCmd(),
	)
	return root
}

func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}
