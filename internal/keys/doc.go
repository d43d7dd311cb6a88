// Package keys is the typed key model.
//
// Signature and encryption keys are distinct Go types, so passing a signing
// key to seal/unseal does not compile. Secret keys own their buffers and are
// destroyed with Release; Use and Load tie that release to a scope.
//
// The central invariant, checked by every constructor that pairs keys and by
// Validate, is PublicKey == DerivePublicKey(SecretKey).
package keys
