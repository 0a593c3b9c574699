package interfaces

import (
	"context"

	"github.com/careercraft/careercraft/internal/models"
)

// CredentialRepository defines the contract for storing and retrieving
// user credential records. Implementations exist for the JSON file store,
// MongoDB, and PostgreSQL.
type CredentialRepository interface {
	// Load returns every persisted record keyed by username. A missing
	// backing store is not an error and yields an empty map.
	Load(ctx context.Context) (map[string]models.User, error)

	// Get returns the record for username, or nil if no such user exists.
	// Absence is not an error.
	Get(ctx context.Context, username string) (*models.User, error)

	// Add persists a new record. It returns models.ErrUserExists if the
	// username is already taken, without mutating the store.
	Add(ctx context.Context, user models.User) error

	Close(ctx context.Context) error
}
