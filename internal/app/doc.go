// Package app wires application dependencies for the CLI.
//
// It loads Config from defaults, the config file, KEYSTONE_* environment
// variables and command flags, then builds the key store, the derivation
// engine and the keyring service, exposing them via the Wire struct for
// commands to use.
package app
