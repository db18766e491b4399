package credstore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore keeps entries in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func memoryKey(name string, opts Options) string {
	return opts.Path + "\x00" + name
}

func (m *MemoryStore) Get(_ context.Context, name string, opts Options) (string, error) {
	opts = opts.normalize()
	if err := validate(name, opts, false); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[memoryKey(name, opts)]
	if !ok || !m.now().Before(e.expiresAt) {
		return "", nil
	}
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, name, value string, opts Options) error {
	opts = opts.normalize()
	if err := validate(name, opts, true); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[memoryKey(name, opts)] = memoryEntry{
		value:     value,
		expiresAt: m.now().Add(opts.Expires),
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, name string, opts Options) error {
	opts = opts.normalize()
	if err := validate(name, opts, false); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, memoryKey(name, opts))
	return nil
}
