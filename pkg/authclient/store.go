// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package authclient

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"
)

// Snapshot is the locally persisted session state: the token pair, a
// denormalized copy of the signed-in user, and the access token's expiry
// instant derived at write time.
type Snapshot struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user"`
	ExpiresAt    time.Time       `json:"expiresAt"`
}

// Store persists the session snapshot between process runs.
//
// Implementations must treat "no snapshot" as a normal state: Load returns
// (nil, nil) when nothing is stored, and Clear on an empty store is a no-op.
type Store interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Clear() error
}

// MemoryStore keeps the snapshot in process memory only.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (store *MemoryStore) Load() (*Snapshot, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.snapshot == nil {
		return nil, nil
	}
	copied := *store.snapshot
	return &copied, nil
}

func (store *MemoryStore) Save(snapshot *Snapshot) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	copied := *snapshot
	store.snapshot = &copied
	return nil
}

func (store *MemoryStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.snapshot = nil
	return nil
}

// FileStore persists the snapshot as a JSON file, the CLI analog of the
// dashboard's browser storage. The file is written with 0600 permissions
// since it contains live credentials.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (store *FileStore) Load() (*Snapshot, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		// A corrupt file is unrecoverable; treat it as absent.
		return nil, nil
	}
	return snapshot, nil
}

func (store *FileStore) Save(snapshot *Snapshot) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return os.WriteFile(store.path, data, 0o600)
}

func (store *FileStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	err := os.Remove(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
