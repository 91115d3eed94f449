// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltSize = 16

// Errors returned by the passphrase cipher.
var (
	ErrEmptyPassphrase = errors.New("empty passphrase")
	ErrBlobTooShort    = errors.New("ciphertext too short")
	ErrDecrypt         = errors.New("decryption failed")
)

// passphraseCipher derives XChaCha20-Poly1305 keys from a passphrase with
// Argon2id.
//
// Blob layout (base64, standard encoding): salt(16) | nonce(24) | ciphertext.
// A random salt is chosen once per cipher instance; keys derived for other
// salts are cached so blobs written by earlier runs stay readable without
// paying the Argon2id cost on every call.
type passphraseCipher struct {
	passphrase []byte

	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8

	salt []byte
	aead cipher.AEAD

	mu    sync.Mutex
	cache map[string]cipher.AEAD
}

// NewPassphraseCipher returns a [Cipher] keyed by passphrase. The Argon2id
// parameters follow the OWASP recommendation: 1 iteration, 64 MiB, 4 threads.
func NewPassphraseCipher(passphrase string) (Cipher, error) {
	return newPassphraseCipher(passphrase, 1, 64*1024, 4)
}

func newPassphraseCipher(passphrase string, argonTime, argonMemory uint32, argonThreads uint8) (*passphraseCipher, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	c := &passphraseCipher{
		passphrase:   []byte(passphrase),
		argonTime:    argonTime,
		argonMemory:  argonMemory,
		argonThreads: argonThreads,
		cache:        make(map[string]cipher.AEAD),
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	aead, err := c.aeadFor(salt)
	if err != nil {
		return nil, err
	}
	c.salt, c.aead = salt, aead

	return c, nil
}

// Encrypt implements [Cipher].
func (c *passphraseCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+c.aead.Overhead())
	blob = append(blob, c.salt...)
	blob = append(blob, nonce...)
	blob = c.aead.Seal(blob, nonce, []byte(plaintext), c.salt)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Cipher].
func (c *passphraseCipher) Decrypt(encoded string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	if len(blob) < saltSize+chacha20poly1305.NonceSizeX {
		return "", ErrBlobTooShort
	}
	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := blob[saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := c.aeadFor(salt)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, salt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	return string(plaintext), nil
}

func (c *passphraseCipher) aeadFor(salt []byte) (cipher.AEAD, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if aead, ok := c.cache[string(salt)]; ok {
		return aead, nil
	}

	key := argon2.IDKey(c.passphrase, salt, c.argonTime, c.argonMemory, c.argonThreads, chacha20poly1305.KeySize)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	c.cache[string(salt)] = aead
	return aead, nil
}
