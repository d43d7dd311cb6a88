package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/domain"
)

// sign <name> [message]: sign a message, a file (--in) or a stream (--stream).
func signCmd() *cobra.Command {
	var (
		in     string
		stream bool
	)
	cmd := &cobra.Command{
		Use:   "sign <name> [message]",
		Short: "Sign a message or file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeyName(args[0])
			var sig []byte
			if stream {
				if len(args) > 1 {
					return errors.New("--stream signs --in or stdin, not an argument")
				}
				r, err := openInput(cmd, in)
				if err != nil {
					return err
				}
				defer r.Close()
				if sig, err = appCtx.Signer.SignStream(name, r); err != nil {
					return err
				}
			} else {
				msg, err := readInput(cmd, args[1:], in)
				if err != nil {
					return err
				}
				if sig, err = appCtx.Signer.Sign(name, msg); err != nil {
					return err
				}
			}
			return printEncoded(cmd, sig)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "read the message from a file (- for stdin)")
	cmd.Flags().BoolVar(&stream, "stream", false, "sign the input as a stream")
	return cmd
}

// verify [message]: check a signature against a stored or given public key.
func verifyCmd() *cobra.Command {
	var (
		in, key, pub, sigEnc string
		stream               bool
	)
	cmd := &cobra.Command{
		Use:   "verify [message]",
		Short: "Verify a signature",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := signaturePublicKey(key, pub)
			if err != nil {
				return err
			}
			sig, err := decode("signature", sigEnc)
			if err != nil {
				return err
			}

			ok := false
			if stream {
				if len(args) > 0 {
					return errors.New("--stream verifies --in or stdin, not an argument")
				}
				r, err := openInput(cmd, in)
				if err != nil {
					return err
				}
				defer r.Close()
				switch err := appCtx.Signer.VerifyStream(pk, r, sig); {
				case err == nil:
					ok = true
				case !errors.Is(err, domain.ErrAuthenticationFailure):
					return err
				}
			} else {
				msg, err := readInput(cmd, args, in)
				if err != nil {
					return err
				}
				ok = appCtx.Signer.Verify(pk, msg, sig)
			}
			if !ok {
				return domain.ErrAuthenticationFailure
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "read the message from a file (- for stdin)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "stored signature key name")
	cmd.Flags().StringVar(&pub, "pubkey", "", "encoded signature public key")
	cmd.Flags().StringVarP(&sigEnc, "sig", "s", "", "encoded signature")
	cmd.Flags().BoolVar(&stream, "stream", false, "verify a stream signature")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

// seal [message]: encrypt to a recipient.
func sealCmd() *cobra.Command {
	var (
		in, from, to, toPub string
		anonymous           bool
	)
	cmd := &cobra.Command{
		Use:   "seal [message]",
		Short: "Encrypt a message to a public key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := encryptionPublicKey(to, toPub)
			if err != nil {
				return err
			}
			msg, err := readInput(cmd, args, in)
			if err != nil {
				return err
			}

			var ct []byte
			switch {
			case anonymous && from != "":
				return errors.New("--anonymous and --from are exclusive")
			case anonymous:
				ct, err = appCtx.Sealer.SealAnonymous(recipient, msg)
			case from != "":
				ct, err = appCtx.Sealer.Seal(domain.KeyName(from), recipient, msg)
			default:
				return errors.New("--from is required unless --anonymous is set")
			}
			if err != nil {
				return err
			}
			return printEncoded(cmd, ct)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "read the message from a file (- for stdin)")
	cmd.Flags().StringVarP(&from, "from", "f", "", "stored sender encryption key")
	cmd.Flags().StringVar(&to, "to", "", "stored recipient encryption key")
	cmd.Flags().StringVar(&toPub, "to-pubkey", "", "encoded recipient public key")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "do not authenticate the sender")
	return cmd
}

// unseal [ciphertext]: decrypt with a stored key.
func unsealCmd() *cobra.Command {
	var (
		in, to, from, fromPub string
		anonymous             bool
	)
	cmd := &cobra.Command{
		Use:   "unseal [ciphertext]",
		Short: "Decrypt a sealed message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return errors.New("--to is required")
			}
			ct, err := decodeInput(cmd, args, in, "ciphertext")
			if err != nil {
				return err
			}

			var pt []byte
			if anonymous {
				if from != "" || fromPub != "" {
					return errors.New("--anonymous takes no sender")
				}
				pt, err = appCtx.Sealer.UnsealAnonymous(domain.KeyName(to), ct)
			} else {
				sender, perr := encryptionPublicKey(from, fromPub)
				if perr != nil {
					return perr
				}
				pt, err = appCtx.Sealer.Unseal(domain.KeyName(to), sender, ct)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(pt)
			return err
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "read the ciphertext from a file (- for stdin)")
	cmd.Flags().StringVar(&to, "to", "", "stored recipient encryption key")
	cmd.Flags().StringVarP(&from, "from", "f", "", "stored sender encryption key")
	cmd.Flags().StringVar(&fromPub, "from-pubkey", "", "encoded sender public key")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "the message was sealed anonymously")
	return cmd
}
