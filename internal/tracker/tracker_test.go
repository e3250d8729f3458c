package tracker

import (
	"context"
	"errors"
	"sync"

	"github.com/Mephistophillis/UnityCourseTracker/internal/events"
	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
)

var errStoreDown = errors.New("store unavailable")

type fakeStore struct {
	mu        sync.Mutex
	profiles  []*profile.Profile
	failAll   bool
	failByID  bool
	failWrite bool
}

func (fs *fakeStore) GetAll(ctx context.Context) ([]*profile.Profile, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.failAll {
		return nil, errStoreDown
	}
	out := make([]*profile.Profile, 0, len(fs.profiles))
	for _, p := range fs.profiles {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (fs *fakeStore) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.failByID {
		return nil, errStoreDown
	}
	for _, p := range fs.profiles {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

func (fs *fakeStore) Insert(ctx context.Context, p *profile.Profile) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.failWrite {
		return errStoreDown
	}
	fs.profiles = append(fs.profiles, p.Clone())
	return nil
}

func (fs *fakeStore) UpdateProgress(ctx context.Context, id string, progress profile.Progress) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.failWrite {
		return errStoreDown
	}
	for _, p := range fs.profiles {
		if p.ID == id {
			p.Progress = progress.Clone()
			return nil
		}
	}
	return profile.ErrProfileNotFound
}

type fakeSessions struct {
	mu    sync.Mutex
	slots map[string]*profile.Profile
	fail  bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{slots: make(map[string]*profile.Profile)}
}

func (fs *fakeSessions) GetCurrentUser(ctx context.Context, uid string) (*profile.Profile, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.fail {
		return nil, errStoreDown
	}
	p, ok := fs.slots[uid]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (fs *fakeSessions) LoginUser(ctx context.Context, p *profile.Profile) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.fail {
		return errStoreDown
	}
	fs.slots[p.ID] = p.Clone()
	return nil
}

func (fs *fakeSessions) LogoutUser(ctx context.Context, uid string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.slots, uid)
	return nil
}

type capturedEvents struct {
	mu     sync.Mutex
	events []events.ProgressEvent
}

func (ce *capturedEvents) Publish(ev events.ProgressEvent) {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	ce.events = append(ce.events, ev)
}

func (ce *capturedEvents) all() []events.ProgressEvent {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	return append([]events.ProgressEvent(nil), ce.events...)
}
