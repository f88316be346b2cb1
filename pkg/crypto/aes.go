// Package crypto implements the per-chunk encryption step: AES in CBC mode
// with PKCS#7 padding. Decryption is a client-side concern and deliberately
// absent here.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"streaming-service/entities"
)

const (
	// KeySize is the length of freshly minted per-video keys (AES-256).
	KeySize = 32
	// IVSize is the CBC initialization vector length, one cipher block.
	IVSize = aes.BlockSize
)

// GenerateKey returns cipher-grade random key material for a new video.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// GenerateIV returns a fresh random initialization vector.
func GenerateIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}
	return iv, nil
}

// Encrypt performs deterministic single-shot AES-CBC encryption of plaintext
// under key and iv. The key must be 16, 24 or 32 bytes and the iv exactly one
// block; both are validated up front.
func Encrypt(plaintext, key, iv []byte) ([]byte, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("key length %d: %w", len(key), entities.ErrInvalidKeyMaterial)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("iv length %d, want %d: %w", len(iv), IVSize, entities.ErrInvalidKeyMaterial)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

// EncryptWithFreshIV encrypts plaintext under key with an internally generated
// random IV and returns both the ciphertext and the IV. The IV must travel
// with the ciphertext; CBC decryption is impossible without it.
func EncryptWithFreshIV(plaintext, key []byte) (ciphertext, iv []byte, err error) {
	iv, err = GenerateIV()
	if err != nil {
		return nil, nil, err
	}
	ciphertext, err = Encrypt(plaintext, key, iv)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, iv, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}
