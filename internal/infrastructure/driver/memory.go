package driver

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value    string
	deadline time.Time // zero means no expiry
}

// MemoryKV in-process KeyValueDB used by the development backend and tests,
// fills the slot redis occupies in production
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

var _ KeyValueDB = &MemoryKV{}

// NewMemoryKV create an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]memoryEntry)}
}

// Set implement KeyValueDB
func (kv *MemoryKV) Set(key string, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.entries[key] = memoryEntry{value: value}
	return nil
}

// SetEX implement KeyValueDB
func (kv *MemoryKV) SetEX(key string, value string, expiration time.Duration) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	entry := memoryEntry{value: value}
	if expiration > 0 {
		entry.deadline = time.Now().Add(expiration)
	}
	kv.entries[key] = entry
	return nil
}

// Get implement KeyValueDB
func (kv *MemoryKV) Get(key string) (string, error) {
	kv.mu.RLock()
	entry, ok := kv.entries[key]
	kv.mu.RUnlock()
	if !ok || expired(entry) {
		return "", ErrKeyNotFound
	}
	return entry.value, nil
}

// Del implement KeyValueDB
func (kv *MemoryKV) Del(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.entries, key)
	return nil
}

// Exists implement KeyValueDB
func (kv *MemoryKV) Exists(key string) (bool, error) {
	kv.mu.RLock()
	entry, ok := kv.entries[key]
	kv.mu.RUnlock()
	return ok && !expired(entry), nil
}

// Ping implement KeyValueDB
func (kv *MemoryKV) Ping() error {
	return nil
}

func expired(entry memoryEntry) bool {
	return !entry.deadline.IsZero() && time.Now().After(entry.deadline)
}
