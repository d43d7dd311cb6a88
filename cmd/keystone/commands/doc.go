// Package commands defines the keystone CLI and wires dependencies for subcommands.
//
// Commands
//
//   - generate     Create a random signature or encryption key pair
//   - derive       Derive a key pair from a passphrase and salt
//   - import       Restore a key pair from a protected export
//   - export       Write a passphrase-protected copy of a key pair
//   - list         List stored key pairs
//   - remove       Delete a stored key pair
//   - pubkey       Print a public key
//   - fingerprint  Print a public key fingerprint
//   - sign         Sign a message or file
//   - verify       Verify a signature
//   - seal         Encrypt a message to a public key
//   - unseal       Decrypt a sealed message
//   - probe        Report the primitive library version
//   - config init  Write the current settings to the config file
//
// # Implementation
//
// The root command loads the configuration, sets the log level, checks the
// primitive library once and builds the dependency graph before any
// subcommand runs. Commands annotated with skipCompat run even when the
// check fails.
package commands
