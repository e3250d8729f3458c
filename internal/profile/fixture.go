package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/driver"
)

// RosterCacheKey kv slot holding the cached roster document
const RosterCacheKey = "usersData"

type rosterDocument struct {
	Users []*Profile `json:"users"`
}

// FixtureStore development Store reading a static roster document, cached
// read-through in the kv store on first successful fetch
type FixtureStore struct {
	fixtureURL string
	kv         driver.KeyValueDB
}

var _ Store = &FixtureStore{}

// NewFixtureStore create a fixture backed store, fixtureURL may be a file
// path or an http(s) URL
func NewFixtureStore(fixtureURL string, kv driver.KeyValueDB) *FixtureStore {
	return &FixtureStore{
		fixtureURL: fixtureURL,
		kv:         kv,
	}
}

// GetAll read the roster, fetching the fixture only when the cache is cold
func (store *FixtureStore) GetAll(ctx context.Context) ([]*Profile, error) {
	doc, err := store.loadDocument(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// GetByID look the id up in the roster, (nil, nil) when absent
func (store *FixtureStore) GetByID(ctx context.Context, id string) (*Profile, error) {
	doc, err := store.loadDocument(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range doc.Users {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

// Insert append the profile to the cached roster document
func (store *FixtureStore) Insert(ctx context.Context, p *Profile) error {
	doc, err := store.loadDocument(ctx)
	if err != nil {
		return err
	}
	doc.Users = append(doc.Users, p)
	return store.saveDocument(doc)
}

// UpdateProgress replace the progress of one cached roster entry
func (store *FixtureStore) UpdateProgress(ctx context.Context, id string, progress Progress) error {
	doc, err := store.loadDocument(ctx)
	if err != nil {
		return err
	}
	for _, p := range doc.Users {
		if p.ID == id {
			p.Progress = progress.Clone()
			p.UpdatedAt = nowUnix()
			return store.saveDocument(doc)
		}
	}
	return ErrProfileNotFound
}

func (store *FixtureStore) loadDocument(ctx context.Context) (*rosterDocument, error) {
	doc := new(rosterDocument)
	if cached, err := store.kv.Get(RosterCacheKey); err == nil {
		if err := json.Unmarshal([]byte(cached), doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	raw, err := fetchFixture(ctx, store.fixtureURL)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	// cache is best effort, a failed write only costs a refetch
	store.kv.Set(RosterCacheKey, string(raw))
	return doc, nil
}

func (store *FixtureStore) saveDocument(doc *rosterDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return store.kv.Set(RosterCacheKey, string(raw))
}

func fetchFixture(ctx context.Context, fixtureURL string) ([]byte, error) {
	if strings.HasPrefix(fixtureURL, "http://") || strings.HasPrefix(fixtureURL, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fixtureURL, nil)
		if err != nil {
			return nil, err
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch fixture %s: unexpected status %d", fixtureURL, res.StatusCode)
		}
		return ioutil.ReadAll(res.Body)
	}
	return ioutil.ReadFile(fixtureURL)
}
