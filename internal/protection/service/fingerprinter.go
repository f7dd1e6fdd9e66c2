package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// hmacFingerprinter implements Fingerprinter with HMAC-SHA256 keyed by the pepper.
type hmacFingerprinter struct {
	pepper []byte
}

// NewHMACFingerprinter creates a Fingerprinter keyed by a copy of pepper.
func NewHMACFingerprinter(pepper []byte) Fingerprinter {
	return &hmacFingerprinter{pepper: bytes.Clone(pepper)}
}

// Fingerprint returns hex(HMAC-SHA256(pepper, normalized)). Empty input yields an empty fingerprint.
func (f *hmacFingerprinter) Fingerprint(normalized string) protectionDomain.Fingerprint {
	if normalized == "" {
		return ""
	}
	h := hmac.New(sha256.New, f.pepper)
	h.Write([]byte(normalized))
	return protectionDomain.Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
