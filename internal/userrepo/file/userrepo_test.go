package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/models"
	"github.com/careercraft/careercraft/pkg/zerolog"
)

func newTestRepo(t *testing.T) *FileUserRepository {
	t.Helper()
	repo, err := NewFileUserRepository(&config.FileStoreConfig{
		Path: filepath.Join(t.TempDir(), "users.json"),
	}, zerolog.NewZerologLogger("test"))
	if err != nil {
		t.Fatalf("NewFileUserRepository() error = %v", err)
	}
	return repo
}

func TestNewFileUserRepository(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.FileStoreConfig
		wantErr bool
	}{
		{
			name:    "valid path",
			cfg:     config.FileStoreConfig{Path: "users.json"},
			wantErr: false,
		},
		{
			name:    "empty path",
			cfg:     config.FileStoreConfig{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileUserRepository(&tt.cfg, zerolog.NewZerologLogger("test"))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFileUserRepository() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileUserRepository_LoadMissingFile(t *testing.T) {
	repo := newTestRepo(t)

	users, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("Load() on missing file returned %d users, want 0", len(users))
	}
}

func TestFileUserRepository_AddAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := *models.NewUser("alice", "aabb", "ccdd", "BSc")
	if err := repo.Add(ctx, user); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for existing user")
	}
	if *got != user {
		t.Errorf("Get() = %+v, want %+v", *got, user)
	}

	missing, err := repo.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if missing != nil {
		t.Errorf("Get() for missing user = %+v, want nil", missing)
	}

	// No lockfile may survive a completed write.
	if _, err := os.Stat(repo.path + lockSuffix); !os.IsNotExist(err) {
		t.Errorf("lockfile still present after Add: %v", err)
	}
}

func TestFileUserRepository_ConcurrentAddDistinctUsers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const writers = 8
	errCh := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := *models.NewUser(fmt.Sprintf("user%d", i), "aabb", "ccdd", "")
			errCh <- repo.Add(ctx, user)
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			t.Errorf("Add() error = %v", err)
		}
	}

	users, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(users) != writers {
		t.Fatalf("Load() returned %d users, want %d", len(users), writers)
	}
	for i := 0; i < writers; i++ {
		if _, ok := users[fmt.Sprintf("user%d", i)]; !ok {
			t.Errorf("user%d missing from store after concurrent writes", i)
		}
	}
}

func TestFileUserRepository_AddDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := *models.NewUser("alice", "aabb", "ccdd", "")
	if err := repo.Add(ctx, first); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	second := *models.NewUser("alice", "1122", "3344", "")
	err := repo.Add(ctx, second)
	if !errors.Is(err, models.ErrUserExists) {
		t.Fatalf("Add() duplicate error = %v, want ErrUserExists", err)
	}

	// The original record must be untouched.
	got, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Digest != first.Digest {
		t.Errorf("duplicate Add mutated stored digest: got %q, want %q", got.Digest, first.Digest)
	}
}

func TestFileUserRepository_LoadLegacyRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	legacy := `{"olduser": "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"}`
	if err := os.WriteFile(repo.path, []byte(legacy), 0o600); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	got, err := repo.Get(ctx, "olduser")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for legacy user")
	}
	if got.Algo != models.AlgoSHA256 {
		t.Errorf("legacy record Algo = %q, want %q", got.Algo, models.AlgoSHA256)
	}
	if got.Salt != "" {
		t.Errorf("legacy record Salt = %q, want empty", got.Salt)
	}

	// New records coexist with legacy ones.
	if err := repo.Add(ctx, *models.NewUser("newuser", "aabb", "ccdd", "")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	users, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("Load() returned %d users, want 2", len(users))
	}
}

func TestFileUserRepository_CorruptStore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(repo.path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	users, err := repo.Load(ctx)
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("Load() error = %v, want ErrCorruptStore", err)
	}
	if len(users) != 0 {
		t.Errorf("Load() on corrupt file returned %d users, want 0", len(users))
	}

	// The unparseable bytes are preserved for inspection.
	preserved, err := os.ReadFile(repo.path + corruptSuffix)
	if err != nil {
		t.Fatalf("corrupt sidecar missing: %v", err)
	}
	if string(preserved) != "{not json" {
		t.Errorf("sidecar content = %q, want original bytes", preserved)
	}

	// Get degrades to "no such user".
	got, err := repo.Get(ctx, "anyone")
	if err != nil {
		t.Fatalf("Get() on corrupt store error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() on corrupt store = %+v, want nil", got)
	}

	// Add recovers by writing a fresh store.
	if err := repo.Add(ctx, *models.NewUser("alice", "aabb", "ccdd", "")); err != nil {
		t.Fatalf("Add() after corruption error = %v", err)
	}
	users, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after recovery error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("Load() after recovery returned %d users, want 1", len(users))
	}
}

func TestFileUserRepository_AddWhileLocked(t *testing.T) {
	repo, err := NewFileUserRepository(&config.FileStoreConfig{
		Path:        filepath.Join(t.TempDir(), "users.json"),
		LockRetry:   5 * time.Millisecond,
		LockTimeout: 50 * time.Millisecond,
	}, zerolog.NewZerologLogger("test"))
	if err != nil {
		t.Fatalf("NewFileUserRepository() error = %v", err)
	}

	// Hold the advisory lock as another process would.
	lockPath := repo.path + lockSuffix
	if err := os.WriteFile(lockPath, nil, 0o600); err != nil {
		t.Fatalf("failed to take lock: %v", err)
	}
	defer os.Remove(lockPath)

	err = repo.Add(context.Background(), *models.NewUser("alice", "aabb", "ccdd", ""))
	if !errors.Is(err, ErrLockTimeout) {
		t.Errorf("Add() under held lock error = %v, want ErrLockTimeout", err)
	}
}
