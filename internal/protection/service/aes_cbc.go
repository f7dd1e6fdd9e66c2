package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// AESCBCCipher implements BlockCipher using AES-256-CBC with PKCS#7 padding.
//
// Every call draws a fresh 16-byte IV, so equal plaintexts encrypt differently.
// There is no authentication tag: a flipped byte may decrypt to garbage or fail
// the padding check.
type AESCBCCipher struct {
	block cipher.Block
}

// NewAESCBC creates a new AES-256-CBC cipher. The key must be exactly 32 bytes.
func NewAESCBC(key []byte) (*AESCBCCipher, error) {
	if len(key) != protectionDomain.KeySize {
		return nil, protectionDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &AESCBCCipher{block: block}, nil
}

// Encrypt pads plaintext and encrypts it under a random IV.
func (c *AESCBCCipher) Encrypt(plaintext []byte) (ciphertext, iv []byte, err error) {
	iv = make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, iv, nil
}

// Decrypt decrypts ciphertext and strips the padding.
func (c *AESCBCCipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	if len(iv) != aes.BlockSize {
		return nil, protectionDomain.ErrMalformedInput
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, protectionDomain.ErrMalformedInput
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(padded, ciphertext)
	return pkcs7Unpad(padded, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad strips PKCS#7 padding. The last block is checked in constant time and
// every padding failure returns the same error.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, protectionDomain.ErrMalformedInput
	}

	n := int(data[len(data)-1])
	good := subtle.ConstantTimeLessOrEq(1, n) & subtle.ConstantTimeLessOrEq(n, blockSize)

	last := data[len(data)-blockSize:]
	for i, b := range last {
		inPadding := subtle.ConstantTimeLessOrEq(blockSize-i, n)
		matches := subtle.ConstantTimeByteEq(b, byte(n))
		good &= subtle.ConstantTimeSelect(inPadding, matches, 1)
	}

	if good != 1 {
		return nil, protectionDomain.ErrMalformedInput
	}
	return data[:len(data)-n], nil
}
