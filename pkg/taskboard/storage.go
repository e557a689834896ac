package taskboard

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Storage.GetItem when a key holds no value.
var ErrNotFound = errors.New("key not found")

// Storage is the persistence adapter: a string key/value store holding the
// serialized snapshot and session record. It is the board's only I/O
// boundary. Implementations must be safe for concurrent use.
type Storage interface {
	// GetItem returns the value stored under key, or ErrNotFound.
	GetItem(ctx context.Context, key string) (string, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// StateSubscriber is implemented by backends that can announce writes.
type StateSubscriber interface {
	SubscribeStateEvents(ctx context.Context) (*StateSubscription, error)
}

// IsNotFound returns true if the error means the key holds no value.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// MemoryStorage keeps items in a map. Used for ephemeral boards and tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

// GetItem implements Storage.
func (m *MemoryStorage) GetItem(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// SetItem implements Storage.
func (m *MemoryStorage) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

// RemoveItem implements Storage.
func (m *MemoryStorage) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Close implements Storage. Items survive Close.
func (m *MemoryStorage) Close() error {
	return nil
}
