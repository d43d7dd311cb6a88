package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"keystone/internal/crypto"
	"keystone/internal/domain"
	"keystone/internal/keys"
)

// readPassphrase returns -p or prompts on the terminal without echo.
func readPassphrase(cmd *cobra.Command, prompt string) ([]byte, error) {
	if passphrase != "" {
		return []byte(passphrase), nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("passphrase required (-p)")
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("empty passphrase")
	}
	return b, nil
}

// readInput returns the message: the literal argument, the --in file, or
// stdin when --in is "-".
func readInput(cmd *cobra.Command, args []string, in string) ([]byte, error) {
	switch {
	case len(args) > 0 && in != "":
		return nil, errors.New("give a message argument or --in, not both")
	case len(args) > 0:
		return []byte(args[0]), nil
	case in == "-":
		return io.ReadAll(cmd.InOrStdin())
	case in != "":
		return os.ReadFile(in)
	default:
		return nil, errors.New("no input: give a message argument or --in")
	}
}

// openInput opens --in for streaming; "-" is stdin.
func openInput(cmd *cobra.Command, in string) (io.ReadCloser, error) {
	if in == "" || in == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(in)
}

func printEncoded(cmd *cobra.Command, b []byte) error {
	s, err := crypto.Encode(appCtx.Enc, b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}

func decode(what, s string) ([]byte, error) {
	b, err := crypto.Decode(appCtx.Enc, s)
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", what, appCtx.Enc, err)
	}
	return b, nil
}

// decodeInput reads encoded text from an argument, --in or stdin.
func decodeInput(cmd *cobra.Command, args []string, in, what string) ([]byte, error) {
	raw, err := readInput(cmd, args, in)
	if err != nil {
		return nil, err
	}
	return decode(what, strings.TrimSpace(string(raw)))
}

// signaturePublicKey resolves a verifying key from a stored name or an
// encoded public key.
func signaturePublicKey(name, encoded string) (keys.SignaturePublicKey, error) {
	switch {
	case name != "" && encoded != "":
		return keys.SignaturePublicKey{}, errors.New("give a key name or a public key, not both")
	case name != "":
		pk, err := appCtx.Keys.PublicKey(domain.KeyName(name), domain.Signature)
		if err != nil {
			return keys.SignaturePublicKey{}, err
		}
		return pk.(keys.SignaturePublicKey), nil
	case encoded != "":
		b, err := decode("public key", encoded)
		if err != nil {
			return keys.SignaturePublicKey{}, err
		}
		return keys.NewSignaturePublicKey(b)
	default:
		return keys.SignaturePublicKey{}, errors.New("no public key given")
	}
}

// encryptionPublicKey resolves a peer key from a stored name or an encoded
// public key.
func encryptionPublicKey(name, encoded string) (keys.EncryptionPublicKey, error) {
	switch {
	case name != "" && encoded != "":
		return keys.EncryptionPublicKey{}, errors.New("give a key name or a public key, not both")
	case name != "":
		pk, err := appCtx.Keys.PublicKey(domain.KeyName(name), domain.Encryption)
		if err != nil {
			return keys.EncryptionPublicKey{}, err
		}
		return pk.(keys.EncryptionPublicKey), nil
	case encoded != "":
		b, err := decode("public key", encoded)
		if err != nil {
			return keys.EncryptionPublicKey{}, err
		}
		return keys.NewEncryptionPublicKey(b)
	default:
		return keys.EncryptionPublicKey{}, errors.New("no public key given")
	}
}

func capabilityFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "type", "t", "sign", "key type: sign or enc")
}
