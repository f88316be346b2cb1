package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"testing"

	"streaming-service/entities"
)

// decryptCBC reverses Encrypt for test verification only; the service itself
// never decrypts.
func decryptCBC(t *testing.T, ciphertext, key, iv []byte) []byte {
	t.Helper()

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("failed to create cipher: %v", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		t.Fatalf("ciphertext length %d is not a positive block multiple", len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	padding := int(plaintext[len(plaintext)-1])
	if padding < 1 || padding > block.BlockSize() {
		t.Fatalf("invalid padding byte %d", padding)
	}
	return plaintext[:len(plaintext)-padding]
}

func TestEncrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{
			name:  "Short message",
			input: []byte("Hello, this is a test chunk!"),
		},
		{
			name:  "Empty data",
			input: []byte(""),
		},
		{
			name:  "Exact block multiple",
			input: bytes.Repeat([]byte("0123456789abcdef"), 4),
		},
		{
			name:  "Large data",
			input: bytes.Repeat([]byte("Large data test "), 1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := GenerateKey()
			if err != nil {
				t.Fatalf("Failed to generate key: %v", err)
			}
			iv, err := GenerateIV()
			if err != nil {
				t.Fatalf("Failed to generate IV: %v", err)
			}

			encrypted, err := Encrypt(tt.input, key, iv)
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}

			if len(tt.input) > 0 && bytes.Equal(encrypted, tt.input) {
				t.Error("Encrypted data is identical to input data")
			}
			// PKCS#7 always appends at least one padding byte.
			if len(encrypted) <= len(tt.input) {
				t.Errorf("Ciphertext length %d, want > %d", len(encrypted), len(tt.input))
			}

			decrypted := decryptCBC(t, encrypted, key, iv)
			if !bytes.Equal(tt.input, decrypted) {
				t.Errorf("Decrypted data doesn't match original data")
			}
		})
	}
}

func TestEncrypt_DeterministicWithFixedIV(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	iv := bytes.Repeat([]byte{0x24}, IVSize)
	data := []byte("same input, same key, same iv")

	first, err := Encrypt(data, key, iv)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := Encrypt(data, key, iv)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Expected identical ciphertext for fixed key and IV")
	}
}

func TestEncryptWithFreshIV_IVFreshness(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, KeySize)
	data := []byte("the same plaintext twice")

	ct1, iv1, err := EncryptWithFreshIV(data, key)
	if err != nil {
		t.Fatalf("EncryptWithFreshIV failed: %v", err)
	}
	ct2, iv2, err := EncryptWithFreshIV(data, key)
	if err != nil {
		t.Fatalf("EncryptWithFreshIV failed: %v", err)
	}

	if bytes.Equal(iv1, iv2) {
		t.Error("Expected distinct IVs across calls")
	}
	if bytes.Equal(ct1, ct2) {
		t.Error("Expected distinct ciphertext across calls")
	}
	if len(iv1) != IVSize || len(iv2) != IVSize {
		t.Errorf("IV lengths %d/%d, want %d", len(iv1), len(iv2), IVSize)
	}

	if got := decryptCBC(t, ct1, key, iv1); !bytes.Equal(got, data) {
		t.Error("First ciphertext doesn't decrypt to input")
	}
	if got := decryptCBC(t, ct2, key, iv2); !bytes.Equal(got, data) {
		t.Error("Second ciphertext doesn't decrypt to input")
	}
}

func TestEncrypt_InvalidKeyMaterial(t *testing.T) {
	validKey := bytes.Repeat([]byte{0x01}, KeySize)
	validIV := bytes.Repeat([]byte{0x02}, IVSize)
	data := []byte("Test data")

	tests := []struct {
		name string
		key  []byte
		iv   []byte
	}{
		{name: "Invalid key size", key: make([]byte, 31), iv: validIV},
		{name: "Nil key", key: nil, iv: validIV},
		{name: "Invalid IV size", key: validKey, iv: make([]byte, 15)},
		{name: "Nil IV", key: validKey, iv: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt(data, tt.key, tt.iv)
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !errors.Is(err, entities.ErrInvalidKeyMaterial) {
				t.Errorf("Expected ErrInvalidKeyMaterial, got %v", err)
			}
		})
	}
}

func TestGenerateKey_Length(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if len(key) != KeySize {
		t.Errorf("GenerateKey() got key length = %v, want %v", len(key), KeySize)
	}

	other, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if bytes.Equal(key, other) {
		t.Error("Two generated keys are identical")
	}
}
