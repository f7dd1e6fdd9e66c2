// Package domain defines the field protection model: the protection tiers a field can be
// stored under, the persisted ProtectedValue format, search fingerprints, and the key
// material the protection engine is built from.
//
// Tiers trade off three properties (confidentiality strength, tamper evidence and
// searchability). No single scheme provides all three, so every sensitive field declares
// its tier up front:
//
//	highest      AEAD (nonce:tag:ciphertext), for government identifiers
//	strong       AES-256-CBC (iv:ciphertext), for phone and email
//	basic        AES-256-CBC (iv:ciphertext), for names and locations
//	system-code  salted adaptive hash, for passwords and PINs
//
// Equality search over encrypted columns goes through a keyed Fingerprint stored next to
// the ProtectedValue, never through deterministic encryption.
package domain
