// Package asymmetric implements sign/verify and seal/unseal over the typed
// key model.
//
// Signatures are Ed25519 (RFC 8032). Signing is deterministic: the nonce is
// derived from the secret key and the message, and no randomness is consumed.
//
// Seal authenticates the sender: the envelope key is the X25519 agreement of
// the sender's secret key and the recipient's public key, and the message is
// wrapped with package symmetric. SealAnonymous uses NaCl sealed boxes when the
// sender should stay anonymous.
//
// Verify, Unseal and UnsealAnonymous fail closed. Every rejection is reported
// the same way, as false or ErrAuthenticationFailure, whichever check failed.
package asymmetric
