package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keystone/internal/domain"
)

// pubkey <name>: print the public key.
func pubkeyCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "pubkey <name>",
		Short: "Print a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCapability(typ)
			if err != nil {
				return err
			}
			pk, err := appCtx.Keys.PublicKey(domain.KeyName(args[0]), c)
			if err != nil {
				return err
			}
			return printEncoded(cmd, pk.Bytes())
		},
	}
	capabilityFlag(cmd, &typ)
	return cmd
}

// fingerprint <name>: print the public key fingerprint.
func fingerprintCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "fingerprint <name>",
		Short: "Print a public key fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCapability(typ)
			if err != nil {
				return err
			}
			fp, err := appCtx.Keys.Fingerprint(domain.KeyName(args[0]), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
	capabilityFlag(cmd, &typ)
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored key pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := appCtx.Keys.List()
			if err != nil {
				return err
			}
			for _, e := range entries {
				fp, err := appCtx.Keys.Fingerprint(e.Name, e.Capability)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-4s  (unreadable: %v)\n", e.Name, e.Capability, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-4s  %s\n", e.Name, e.Capability, fp)
			}
			return nil
		},
	}
}

func removeCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a stored key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCapability(typ)
			if err != nil {
				return err
			}
			return appCtx.Keys.Remove(domain.KeyName(args[0]), c)
		},
	}
	capabilityFlag(cmd, &typ)
	return cmd
}

// export <name>: write a passphrase-protected copy.
func exportCmd() *cobra.Command {
	var typ, out string
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write a passphrase-protected copy of a key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCapability(typ)
			if err != nil {
				return err
			}
			pass, err := readPassphrase(cmd, "Export passphrase: ")
			if err != nil {
				return err
			}
			blob, err := appCtx.Keys.Export(domain.KeyName(args[0]), c, pass)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(blob))
				return err
			}
			return os.WriteFile(out, blob, 0o600)
		},
	}
	capabilityFlag(cmd, &typ)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// import <name>: restore a key pair from an export.
func importCmd() *cobra.Command {
	var (
		typ, in string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "import <name>",
		Short: "Restore a key pair from a protected export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCapability(typ)
			if err != nil {
				return err
			}
			if in == "" {
				in = "-"
			}
			blob, err := readInput(cmd, nil, in)
			if err != nil {
				return err
			}
			pass, err := readPassphrase(cmd, "Export passphrase: ")
			if err != nil {
				return err
			}
			info, err := appCtx.Keys.Import(domain.KeyName(args[0]), c, blob, pass, force)
			if err != nil {
				return err
			}
			return printInfo(cmd, info)
		},
	}
	capabilityFlag(cmd, &typ)
	cmd.Flags().StringVarP(&in, "in", "i", "", "export file (default stdin)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key pair")
	return cmd
}

