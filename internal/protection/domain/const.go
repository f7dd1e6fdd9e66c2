package domain

// Algorithm is the authenticated encryption algorithm used by the highest tier.
//
// Both algorithms use a 32-byte key, a 12-byte nonce and a 16-byte tag, so the
// highest-tier ProtectedValue layout does not depend on the choice. Values written
// under one algorithm do not open under the other.
type Algorithm string

const (
	// AESGCM is AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305. Constant time in software, preferred without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// HashAlgorithm is the adaptive one-way hash used by the system-code tier.
type HashAlgorithm string

const (
	// Argon2id hashes with Argon2id using a go-pwdhash policy as work factor.
	Argon2id HashAlgorithm = "argon2id"

	// Bcrypt hashes with bcrypt using a fixed cost as work factor.
	Bcrypt HashAlgorithm = "bcrypt"
)

// HashPolicy selects the Argon2id work factor.
type HashPolicy string

const (
	// PolicyInteractive is tuned for request-path hashing (sign-in, PIN checks).
	PolicyInteractive HashPolicy = "interactive"

	// PolicyModerate trades latency for a higher memory and time cost.
	PolicyModerate HashPolicy = "moderate"
)

// KeySize is the required length of the master key and every derived tier key.
const KeySize = 32

// MinPepperSize is the minimum accepted fingerprint pepper length in bytes.
const MinPepperSize = 16
