// Package crypto encrypts state payloads at rest for the secure and
// encrypted persistence tiers.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher encrypts and decrypts opaque state payloads. Implementations must be
// safe for concurrent use.
type Cipher interface {
	// Encrypt seals plaintext and returns a self-contained, printable blob.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a blob produced by Encrypt. It fails if the blob was
	// produced with a different passphrase or has been tampered with.
	Decrypt(blob string) (string, error)
}
