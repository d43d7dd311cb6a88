// Package symmetric implements the authenticated envelope that carries sealed
// messages.
//
// # Format
//
//	Protocol tag (4) || salt (32) || nonce (24) || ciphertext || mac (32)
//
// A fresh salt and nonce are drawn for every message. Two subkeys are split
// from the 32-byte input key with HKDF over BLAKE2b-512, salted per message:
// one keys XSalsa20, the other keys HMAC-SHA-512/256 over everything before the
// MAC.
//
// # Errors
//
// Open reports every failure as ErrAuthenticationFailure with no further
// detail. The MAC is compared in constant time and checked before any byte is
// decrypted, so a rejected envelope never yields partial plaintext.
package symmetric
