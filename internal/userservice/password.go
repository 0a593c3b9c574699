package userservice

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/careercraft/careercraft/internal/models"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing these invalidates no existing records
// because the derived key is re-checked with the same constants; a future
// parameter bump needs a version field in the record.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashPassword derives a salted argon2id digest. Salt and digest are
// returned hex encoded, matching the persisted record shape.
func HashPassword(password string) (salt string, digest string, err error) {
	rawSalt := make([]byte, saltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(rawSalt), hex.EncodeToString(key), nil
}

// VerifyPassword checks password against a credential record in constant
// time. Legacy records carry an unsalted sha256 digest and are still
// accepted; new records always use argon2id.
func VerifyPassword(user *models.User, password string) bool {
	switch user.Algo {
	case models.AlgoSHA256:
		sum := sha256.Sum256([]byte(password))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(user.Digest)) == 1

	case models.AlgoArgon2id, "":
		rawSalt, err := hex.DecodeString(user.Salt)
		if err != nil {
			return false
		}
		want, err := hex.DecodeString(user.Digest)
		if err != nil {
			return false
		}
		got := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
		return subtle.ConstantTimeCompare(got, want) == 1

	default:
		return false
	}
}
