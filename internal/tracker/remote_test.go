package tracker

import (
	"context"
	"testing"

	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
	"go.uber.org/zap"
)

func TestRemoteRegisterThenLoadRoundTrip(t *testing.T) {
	store := &fakeStore{}
	rt := NewRemoteTracker(store, newFakeSessions(), nil, zap.NewNop())

	ident := &profile.Identity{ID: "42", Username: "ada", Avatar: "http://a/ada.png"}
	registered, err := rt.RegisterProfile(context.Background(), ident)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(registered.Progress) != 0 {
		t.Errorf("fresh registration must start with empty progress, got %+v", registered.Progress)
	}

	loaded := rt.LoadProfile(context.Background(), "42", "42")
	if loaded == nil {
		t.Fatal("registered profile not found on load")
	}
	if loaded.ID != "42" || loaded.Username != "ada" || loaded.Avatar != "http://a/ada.png" {
		t.Errorf("loaded profile diverges from registration: %+v", loaded)
	}
	if len(loaded.Progress) != 0 {
		t.Errorf("expected empty progress after round trip, got %+v", loaded.Progress)
	}
}

func TestRemoteRegisterDoesNotClobberExisting(t *testing.T) {
	existing := &profile.Profile{
		ID: "42", Username: "ada", Avatar: "http://a/old.png",
		Progress: profile.Progress{},
	}
	existing.Progress.SetLesson("ch-1", "l-1", true)
	store := &fakeStore{profiles: []*profile.Profile{existing}}
	rt := NewRemoteTracker(store, newFakeSessions(), nil, zap.NewNop())

	p, err := rt.RegisterProfile(context.Background(), &profile.Identity{
		ID: "42", Username: "ada_renamed", Avatar: "http://a/new.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lesson, ok := p.Progress.Lesson("ch-1", "l-1"); !ok || !lesson.Completed {
		t.Errorf("re-registration dropped stored progress: %+v", p.Progress)
	}
	if p.Username != "ada" {
		t.Errorf("re-registration overwrote the stored record: %+v", p)
	}
}

func TestRemoteRegisterPropagatesStoreError(t *testing.T) {
	rt := NewRemoteTracker(&fakeStore{failByID: true}, newFakeSessions(), nil, zap.NewNop())

	if _, err := rt.RegisterProfile(context.Background(), &profile.Identity{ID: "42"}); err == nil {
		t.Error("expected the store error to surface from registration")
	}
}

func TestRemoteLoadRosterDegradesToEmpty(t *testing.T) {
	rt := NewRemoteTracker(&fakeStore{failAll: true}, newFakeSessions(), nil, zap.NewNop())

	users := rt.LoadRoster(context.Background(), "42")
	if users == nil || len(users) != 0 {
		t.Errorf("store failure must yield an empty roster, got %v", users)
	}
}

func TestRemoteLoadProfileNilOnErrorOrAbsence(t *testing.T) {
	down := NewRemoteTracker(&fakeStore{failByID: true}, newFakeSessions(), nil, zap.NewNop())
	if p := down.LoadProfile(context.Background(), "42", "42"); p != nil {
		t.Errorf("store failure must yield nil, got %+v", p)
	}

	empty := NewRemoteTracker(&fakeStore{}, newFakeSessions(), nil, zap.NewNop())
	if p := empty.LoadProfile(context.Background(), "42", "42"); p != nil {
		t.Errorf("unknown id must yield nil, got %+v", p)
	}
}

func TestRemoteRecordProgressFindOrCreate(t *testing.T) {
	stored := &profile.Profile{ID: "42", Username: "ada", Progress: profile.Progress{}}
	stored.Progress.SetLesson("ch-1", "l-1", true)
	store := &fakeStore{profiles: []*profile.Profile{stored}}
	sink := &capturedEvents{}
	rt := NewRemoteTracker(store, newFakeSessions(), sink, zap.NewNop())

	if ok := rt.RecordProgress(context.Background(), "42", "ch-2", "l-9", true); !ok {
		t.Fatal("expected the write to succeed")
	}

	p, _ := store.GetByID(context.Background(), "42")
	if lesson, ok := p.Progress.Lesson("ch-2", "l-9"); !ok || !lesson.Completed {
		t.Errorf("new lesson entry not created: %+v", p.Progress)
	}
	if lesson, ok := p.Progress.Lesson("ch-1", "l-1"); !ok || !lesson.Completed {
		t.Errorf("existing entry disturbed by the write: %+v", p.Progress)
	}
	if evs := sink.all(); len(evs) != 1 || evs[0].LessonID != "l-9" {
		t.Errorf("expected one progress event, got %+v", evs)
	}
}

func TestRemoteRecordProgressIdempotentToggle(t *testing.T) {
	store := &fakeStore{profiles: []*profile.Profile{
		{ID: "42", Username: "ada", Progress: profile.Progress{}},
	}}
	rt := NewRemoteTracker(store, newFakeSessions(), nil, zap.NewNop())

	rt.RecordProgress(context.Background(), "42", "ch-1", "l-1", true)
	rt.RecordProgress(context.Background(), "42", "ch-1", "l-1", true)

	p, _ := store.GetByID(context.Background(), "42")
	if n := len(p.Progress["ch-1"].Lessons); n != 1 {
		t.Errorf("repeated toggle duplicated the lesson entry, got %d", n)
	}
	if lesson, _ := p.Progress.Lesson("ch-1", "l-1"); !lesson.Completed {
		t.Errorf("expected completed=true after repeated toggle, got %+v", lesson)
	}
}

func TestRemoteRecordProgressFalseOnFailure(t *testing.T) {
	// unknown user
	rt := NewRemoteTracker(&fakeStore{}, newFakeSessions(), nil, zap.NewNop())
	if ok := rt.RecordProgress(context.Background(), "42", "ch-1", "l-1", true); ok {
		t.Error("write for an unknown user must report false")
	}

	// read fails
	rt = NewRemoteTracker(&fakeStore{failByID: true}, newFakeSessions(), nil, zap.NewNop())
	if ok := rt.RecordProgress(context.Background(), "42", "ch-1", "l-1", true); ok {
		t.Error("write must report false when the read side fails")
	}

	// write fails
	rt = NewRemoteTracker(&fakeStore{
		profiles:  []*profile.Profile{{ID: "42", Progress: profile.Progress{}}},
		failWrite: true,
	}, newFakeSessions(), nil, zap.NewNop())
	if ok := rt.RecordProgress(context.Background(), "42", "ch-1", "l-1", true); ok {
		t.Error("write must report false when the update fails")
	}
}

func TestRemoteRecordProgressRefreshesSessionCache(t *testing.T) {
	store := &fakeStore{profiles: []*profile.Profile{
		{ID: "42", Username: "ada", Progress: profile.Progress{}},
	}}
	sessions := newFakeSessions()
	rt := NewRemoteTracker(store, sessions, nil, zap.NewNop())

	rt.RecordProgress(context.Background(), "42", "ch-1", "l-1", true)

	sess, _ := sessions.GetCurrentUser(context.Background(), "42")
	if sess == nil {
		t.Fatal("expected the session cache to be refreshed after the write")
	}
	if lesson, ok := sess.Progress.Lesson("ch-1", "l-1"); !ok || !lesson.Completed {
		t.Errorf("session cache out of step with the table: %+v", sess.Progress)
	}
}
