package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/models"
)

const (
	DefaultLockRetry   = 50 * time.Millisecond
	DefaultLockTimeout = 5 * time.Second

	lockSuffix    = ".lock"
	corruptSuffix = ".corrupt"
)

// ErrCorruptStore marks a credential file whose content could not be parsed.
// The store recovers by substituting an empty mapping; the original bytes
// are preserved in a sidecar file for inspection.
var ErrCorruptStore = errors.New("credential store file is corrupt")

// ErrLockTimeout is returned when another writer holds the advisory lock
// for longer than the configured timeout.
var ErrLockTimeout = errors.New("timed out waiting for credential store lock")

// FileUserRepository persists credential records as a single JSON object
// mapping username to record. Every operation reloads the file, so
// registrations from other processes are observed. Writes are serialized by
// an in-process mutex plus an advisory lockfile, and land via a
// write-temp-then-rename so a crash mid-write cannot truncate the store.
type FileUserRepository struct {
	path        string
	lockRetry   time.Duration
	lockTimeout time.Duration
	logger      interfaces.Logger

	mu sync.Mutex
}

// record is the on-disk shape for salted entries. Legacy entries are bare
// 64-hex sha256 strings and are converted on read.
type record struct {
	Salt      string `json:"salt"`
	Digest    string `json:"digest"`
	Algo      string `json:"algo"`
	Education string `json:"education,omitempty"`
}

// NewFileUserRepository creates a JSON-file-backed repository.
func NewFileUserRepository(cfg *config.FileStoreConfig, logger interfaces.Logger) (*FileUserRepository, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("credential store path cannot be empty")
	}
	retry := cfg.LockRetry
	if retry <= 0 {
		retry = DefaultLockRetry
	}
	timeout := cfg.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &FileUserRepository{
		path:        cfg.Path,
		lockRetry:   retry,
		lockTimeout: timeout,
		logger:      logger,
	}, nil
}

// Load reads the full store. A missing file yields an empty map and no
// error. A malformed file yields an empty map and ErrCorruptStore; callers
// continue degraded.
func (r *FileUserRepository) Load(ctx context.Context) (map[string]models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.User{}, nil
		}
		return nil, fmt.Errorf("failed to read credential store: %w", err)
	}

	users, err := decodeStore(data)
	if err != nil {
		r.quarantine(data)
		r.logger.Warn("credential store is malformed, substituting empty store",
			"path", r.path, "error", err)
		return map[string]models.User{}, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return users, nil
}

// Get returns the record for username, or nil when absent. Corruption is
// degraded to "no such user" after Load has logged it.
func (r *FileUserRepository) Get(ctx context.Context, username string) (*models.User, error) {
	users, err := r.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptStore) {
		return nil, err
	}
	user, ok := users[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Add persists a new record. Uniqueness is re-checked under the lock after
// a fresh reload, so two racing registrations of distinct usernames both
// land and a duplicate gets models.ErrUserExists.
func (r *FileUserRepository) Add(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := r.acquireFileLock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	users, err := r.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptStore) {
		return err
	}

	if _, exists := users[user.Username]; exists {
		return fmt.Errorf("%w: %s", models.ErrUserExists, user.Username)
	}

	users[user.Username] = user
	return r.writeAtomic(users)
}

// Close is a no-op; the file is never held open between operations.
func (r *FileUserRepository) Close(ctx context.Context) error {
	return nil
}

// acquireFileLock takes the cross-process advisory lock via O_EXCL create,
// retrying until the configured timeout.
func (r *FileUserRepository) acquireFileLock(ctx context.Context) (func(), error) {
	lockPath := r.path + lockSuffix
	deadline := time.Now().Add(r.lockTimeout)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, lockPath)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.lockRetry):
		}
	}
}

// writeAtomic rewrites the whole store through a temp file and rename.
func (r *FileUserRepository) writeAtomic(users map[string]models.User) error {
	out := make(map[string]record, len(users))
	for name, u := range users {
		out[name] = record{
			Salt:      u.Salt,
			Digest:    u.Digest,
			Algo:      u.Algo,
			Education: u.Education,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential store: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace credential store: %w", err)
	}
	return nil
}

// quarantine keeps the unparseable bytes next to the store for audit.
func (r *FileUserRepository) quarantine(data []byte) {
	if err := os.WriteFile(r.path+corruptSuffix, data, 0o600); err != nil {
		r.logger.Warn("failed to preserve corrupt credential store", "error", err)
	}
}

// decodeStore parses the on-disk JSON object. Values may be record objects
// or legacy bare digest strings.
func decodeStore(data []byte) (map[string]models.User, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	users := make(map[string]models.User, len(raw))
	for name, msg := range raw {
		var legacy string
		if err := json.Unmarshal(msg, &legacy); err == nil {
			users[name] = models.User{
				Username: name,
				Digest:   legacy,
				Algo:     models.AlgoSHA256,
			}
			continue
		}

		var rec record
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, fmt.Errorf("invalid record for user %q: %w", name, err)
		}
		algo := rec.Algo
		if algo == "" {
			algo = models.AlgoArgon2id
		}
		users[name] = models.User{
			Username:  name,
			Salt:      rec.Salt,
			Digest:    rec.Digest,
			Algo:      algo,
			Education: rec.Education,
		}
	}
	return users, nil
}
