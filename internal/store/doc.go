// Package store persists key pairs.
//
// A key file is KeysFormat || secret(32) || public(32). Loading checks the
// version tag, the body length and that the public key belongs to the secret
// key, in that order. The capability of a file is implied by the loader the
// caller picks; it is not recorded on disk.
//
// KeyFileStore keeps named key files under one directory. Writes go through a
// temp file and rename, so readers never see a partial file and the last
// writer wins. Locking is in-process only.
//
// Export and Import wrap a key file in a passphrase-protected JSON blob for
// backups.
package store
