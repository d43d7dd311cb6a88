// Package crypto exposes the minimal primitives used by keystone.
//
// Contents
//
//   - Ed25519 seed expansion, signing and verification (Ed25519FromSeed,
//     SignEd25519, VerifyEd25519)
//   - X25519 base-point multiplication and Diffie–Hellman (X25519Base, DH)
//   - Random seeds from the system CSPRNG (RandomKey)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//   - Text encodings for keys and signatures (Encode, Decode)
//
// # Notes
//
// Nothing here reimplements curve arithmetic or hashing; every function is a
// thin adapter over crypto/ed25519 and golang.org/x/crypto so the rest of the
// module has a single place that touches the primitive library. Callers own
// the returned secrets and should wipe them with memzero.Zero when done.
package crypto
