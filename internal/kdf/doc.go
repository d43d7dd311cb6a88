// Package kdf is the key derivation engine.
//
// A passphrase and salt go through the KDF selected by a DerivationVersion to
// produce a 32-byte seed, which is expanded into an Ed25519 key pair or used
// directly as an X25519 scalar. Nothing random enters after the seed is fixed,
// so the same passphrase, salt and version always give the same key pair.
//
// Versions are frozen rows in a table. Adding a KDF means adding a row; an
// existing row is never edited because that would silently change the keys of
// existing users.
package kdf
