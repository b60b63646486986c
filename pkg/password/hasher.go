package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/edustack/academy-idm/pkg/errors"
)

// Hasher is the credential hashing contract consumed by the account service
type Hasher interface {
	// Hash irreversibly transforms a plaintext secret into a storable,
	// self-describing hash string
	Hash(plaintext string) (string, error)

	// Verify recomputes the hash of plaintext using the parameters and salt
	// embedded in encodedHash and compares. A mismatch returns (false, nil);
	// only a structurally unparseable hash returns an error.
	Verify(encodedHash, plaintext string) (bool, error)
}

// Argon2Hasher implements Hasher using Argon2id
type Argon2Hasher struct {
	// Argon2 parameters
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewArgon2Hasher creates a new Argon2Hasher with the platform's parameters
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		memory:      1024, // KiB
		iterations:  2,
		parallelism: 1,
		saltLength:  16,
		keyLength:   32,
	}
}

// Hash implements Hasher.Hash. The transient plaintext buffer is wiped on
// every exit path.
func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	buf := []byte(plaintext)
	defer wipe(buf)

	// Generate a random salt
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	// Hash the password using Argon2id
	hash := argon2.IDKey(
		buf,
		salt,
		h.iterations,
		h.memory,
		h.parallelism,
		h.keyLength,
	)

	// Base64 encode the salt and hash
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	// Format: $argon2id$v=19$m=1024,t=2,p=1$<salt>$<hash>
	encodedHash := fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		h.memory,
		h.iterations,
		h.parallelism,
		b64Salt,
		b64Hash,
	)

	return encodedHash, nil
}

// Verify implements Hasher.Verify
func (h *Argon2Hasher) Verify(encodedHash, plaintext string) (bool, error) {
	buf := []byte(plaintext)
	defer wipe(buf)

	iterations, memory, parallelism, salt, decodedHash, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	// Compute the hash of the provided password using the embedded parameters
	computedHash := argon2.IDKey(
		buf,
		salt,
		iterations,
		memory,
		parallelism,
		uint32(len(decodedHash)),
	)

	return subtle.ConstantTimeCompare(decodedHash, computedHash) == 1, nil
}

// decodeHash extracts the parameters, salt, and digest from an encoded hash
func decodeHash(encodedHash string) (iterations, memory uint32, parallelism uint8, salt, hash []byte, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "invalid hash format")
	}

	if parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "incompatible hash algorithm")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "invalid hash format")
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "incompatible argon2id version")
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "invalid hash format")
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "invalid salt encoding")
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "invalid hash encoding")
	}

	// An empty salt or digest decodes cleanly but cannot come from Hash,
	// and a zero-length key length makes argon2.IDKey panic.
	if len(salt) == 0 || len(hash) == 0 {
		return 0, 0, 0, nil, nil, errors.New(errors.ErrCodeCorruptCredential, "truncated salt or digest")
	}

	return iterations, memory, parallelism, salt, hash, nil
}

// wipe overwrites a transient plaintext buffer
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
