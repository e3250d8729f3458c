package session

import (
	"context"
	"encoding/json"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/driver"
	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
)

// Store holds the logged-in identity and its progress snapshot, one slot per
// user. Pure storage, no expiry and no token validation, lifetime of the
// session is governed by the transport token
type Store interface {
	GetCurrentUser(ctx context.Context, uid string) (*profile.Profile, error)
	LoginUser(ctx context.Context, p *profile.Profile) error
	LogoutUser(ctx context.Context, uid string) error
}

const slotPrefix = "currentUser:"

// KVStore Store implementation over a KeyValueDB slot, the profile is kept
// JSON-serialized under currentUser:<uid>
type KVStore struct {
	kv driver.KeyValueDB
}

var _ Store = &KVStore{}

// NewKVStore create a kv backed session store
func NewKVStore(kv driver.KeyValueDB) *KVStore {
	return &KVStore{kv: kv}
}

// GetCurrentUser read the session slot, (nil, nil) when never logged in or
// after logout
func (store *KVStore) GetCurrentUser(ctx context.Context, uid string) (*profile.Profile, error) {
	raw, err := store.kv.Get(slotPrefix + uid)
	if err == driver.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := new(profile.Profile)
	if err := json.Unmarshal([]byte(raw), p); err != nil {
		return nil, err
	}
	return p, nil
}

// LoginUser persist the profile as the current session, overwrites any prior
// session without merging
func (store *KVStore) LoginUser(ctx context.Context, p *profile.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return store.kv.Set(slotPrefix+p.ID, string(raw))
}

// LogoutUser clear the session slot, idempotent
func (store *KVStore) LogoutUser(ctx context.Context, uid string) error {
	return store.kv.Del(slotPrefix + uid)
}
