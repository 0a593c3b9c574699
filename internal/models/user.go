package models

import "errors"

// ErrUserExists is returned by repositories when a registration collides
// with an existing username. Callers must not leak the distinction between
// this and a failed login to end users.
var ErrUserExists = errors.New("username already exists")

// Hash algorithm identifiers as persisted in credential records.
const (
	AlgoArgon2id = "argon2id"
	// AlgoSHA256 marks legacy records: a bare unsalted sha256 hex digest.
	// Still accepted for authentication, never written for new users.
	AlgoSHA256 = "sha256"
)

// User is a credential record. Salt and Digest are hex encoded.
type User struct {
	Username  string `bson:"username" mapstructure:"username" db:"username"`
	Salt      string `bson:"salt" mapstructure:"salt" db:"salt"`
	Digest    string `bson:"digest" mapstructure:"digest" db:"digest"`
	Algo      string `bson:"algo" mapstructure:"algo" db:"algo"`
	Education string `bson:"education,omitempty" mapstructure:"education" db:"education"`
}

// NewUser builds a record for a freshly hashed password.
func NewUser(username, salt, digest, education string) *User {
	return &User{
		Username:  username,
		Salt:      salt,
		Digest:    digest,
		Algo:      AlgoArgon2id,
		Education: education,
	}
}

// Legacy reports whether the record predates salted hashing.
func (u *User) Legacy() bool {
	return u.Algo == AlgoSHA256
}
