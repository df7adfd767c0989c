package xgp

import "io"

// Encryptor protects backup archives at rest. Encryption uses a public key
// only; decryption requires unlocking the passphrase-protected private key
// first, so routine imports never prompt for a passphrase.
type Encryptor interface {
	// Setup generates and stores a new key pair, protecting the private
	// key with the passphrase.
	Setup(passphrase string) error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key with the passphrase.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether a key pair is present.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked identity for decrypting data.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
