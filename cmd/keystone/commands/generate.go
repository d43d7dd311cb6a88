package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/crypto"
	"keystone/internal/domain"
)

func printInfo(cmd *cobra.Command, info domain.KeyInfo) error {
	pub, err := crypto.Encode(appCtx.Enc, info.Public)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Key:         %s (%s)\n", info.Name, info.Capability)
	fmt.Fprintf(out, "Public key:  %s\n", pub)
	fmt.Fprintf(out, "Fingerprint: %s\n", info.Fingerprint)
	if info.Salt != nil {
		salt, err := crypto.Encode(appCtx.Enc, info.Salt)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Derivation:  %s\n", info.Derivation)
		fmt.Fprintf(out, "Salt:        %s\n", salt)
	}
	return nil
}

// generate <name>: create a random key pair.
func generateCmd() *cobra.Command {
	var (
		typ   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate a random key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCapability(typ)
			if err != nil {
				return err
			}
			info, err := appCtx.Keys.Generate(domain.KeyName(args[0]), c, force)
			if err != nil {
				return err
			}
			return printInfo(cmd, info)
		},
	}
	capabilityFlag(cmd, &typ)
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key pair")
	return cmd
}

// derive <name>: derive a key pair from a passphrase.
func deriveCmd() *cobra.Command {
	var (
		typ     string
		saltEnc string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "derive <name>",
		Short: "Derive a key pair from a passphrase and salt",
		Long: "Derive a key pair from a passphrase and salt.\n\n" +
			"Without --salt a random salt is generated and printed; keep it to derive the same keys again.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCapability(typ)
			if err != nil {
				return err
			}
			var salt []byte
			if saltEnc != "" {
				if salt, err = decode("salt", saltEnc); err != nil {
					return err
				}
			}
			pass, err := readPassphrase(cmd, "Passphrase: ")
			if err != nil {
				return err
			}
			info, err := appCtx.Keys.Derive(domain.KeyName(args[0]), c, pass, salt, appCtx.Version, force)
			if err != nil {
				return err
			}
			return printInfo(cmd, info)
		},
	}
	capabilityFlag(cmd, &typ)
	cmd.Flags().StringVar(&saltEnc, "salt", "", "salt in the output encoding (random when omitted)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key pair")
	return cmd
}

