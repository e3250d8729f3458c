package tracker

import (
	"context"
	"testing"

	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
	"go.uber.org/zap"
)

func fixtureRoster() []*profile.Profile {
	return []*profile.Profile{
		{ID: "100001", Username: "ada", Progress: profile.Progress{}},
		{ID: "100002", Username: "grace", Progress: profile.Progress{}},
	}
}

func TestLocalLoadRosterNoSession(t *testing.T) {
	lt := NewLocalTracker(&fakeStore{profiles: fixtureRoster()}, newFakeSessions(), nil, zap.NewNop())

	users := lt.LoadRoster(context.Background(), "100001")
	if len(users) != 2 {
		t.Fatalf("expected the plain fixture roster, got %d entries", len(users))
	}
}

func TestLocalLoadRosterSplicesSessionUser(t *testing.T) {
	sessions := newFakeSessions()
	sess := &profile.Profile{ID: "100001", Username: "ada", Progress: profile.Progress{}}
	sess.Progress.SetLesson("ch-1", "l-1", true)
	sessions.LoginUser(context.Background(), sess)

	lt := NewLocalTracker(&fakeStore{profiles: fixtureRoster()}, sessions, nil, zap.NewNop())
	users := lt.LoadRoster(context.Background(), "100001")

	if len(users) != 2 {
		t.Fatalf("splicing must replace, not append, got %d entries", len(users))
	}
	for _, p := range users {
		if p.ID != "100001" {
			continue
		}
		if lesson, ok := p.Progress.Lesson("ch-1", "l-1"); !ok || !lesson.Completed {
			t.Errorf("session progress missing from the merged roster entry: %+v", p.Progress)
		}
	}
}

func TestLocalLoadRosterAppendsUnknownSessionUser(t *testing.T) {
	sessions := newFakeSessions()
	sessions.LoginUser(context.Background(), &profile.Profile{
		ID: "200001", Username: "newcomer", Progress: profile.Progress{},
	})

	lt := NewLocalTracker(&fakeStore{profiles: fixtureRoster()}, sessions, nil, zap.NewNop())
	users := lt.LoadRoster(context.Background(), "200001")

	if len(users) != 3 {
		t.Fatalf("session user absent from the fixture must be appended, got %d entries", len(users))
	}
	if users[len(users)-1].ID != "200001" {
		t.Errorf("appended entry expected last, got %s", users[len(users)-1].ID)
	}
}

func TestLocalLoadRosterDegradesToEmpty(t *testing.T) {
	lt := NewLocalTracker(&fakeStore{failAll: true}, newFakeSessions(), nil, zap.NewNop())

	users := lt.LoadRoster(context.Background(), "100001")
	if users == nil || len(users) != 0 {
		t.Errorf("store failure must yield an empty roster, got %v", users)
	}
}

func TestLocalLoadProfilePrefersSession(t *testing.T) {
	sessions := newFakeSessions()
	sess := &profile.Profile{ID: "100001", Username: "ada", Progress: profile.Progress{}}
	sess.Progress.SetLesson("ch-1", "l-1", true)
	sessions.LoginUser(context.Background(), sess)

	lt := NewLocalTracker(&fakeStore{profiles: fixtureRoster()}, sessions, nil, zap.NewNop())

	p := lt.LoadProfile(context.Background(), "100001", "100001")
	if p == nil {
		t.Fatal("expected the session profile")
	}
	if lesson, ok := p.Progress.Lesson("ch-1", "l-1"); !ok || !lesson.Completed {
		t.Errorf("expected the session snapshot with local edits, got %+v", p.Progress)
	}

	// someone else's profile still comes from the roster
	other := lt.LoadProfile(context.Background(), "100001", "100002")
	if other == nil || other.Username != "grace" {
		t.Errorf("expected the roster entry for 100002, got %+v", other)
	}

	if missing := lt.LoadProfile(context.Background(), "100001", "999999"); missing != nil {
		t.Errorf("unknown id must yield nil, got %+v", missing)
	}
}

func TestLocalRecordProgressRequiresOwningSession(t *testing.T) {
	lt := NewLocalTracker(&fakeStore{profiles: fixtureRoster()}, newFakeSessions(), nil, zap.NewNop())

	if ok := lt.RecordProgress(context.Background(), "100001", "ch-1", "l-1", true); ok {
		t.Error("progress write without a session must report false")
	}
}

func TestLocalRecordProgressWritesThrough(t *testing.T) {
	store := &fakeStore{profiles: fixtureRoster()}
	sessions := newFakeSessions()
	sessions.LoginUser(context.Background(), &profile.Profile{
		ID: "100001", Username: "ada", Progress: profile.Progress{},
	})
	sink := &capturedEvents{}
	lt := NewLocalTracker(store, sessions, sink, zap.NewNop())

	if ok := lt.RecordProgress(context.Background(), "100001", "ch-1", "l-1", true); !ok {
		t.Fatal("expected the write to succeed")
	}

	sess, _ := sessions.GetCurrentUser(context.Background(), "100001")
	if lesson, ok := sess.Progress.Lesson("ch-1", "l-1"); !ok || !lesson.Completed {
		t.Errorf("session slot not updated: %+v", sess.Progress)
	}

	stored, _ := store.GetByID(context.Background(), "100001")
	if lesson, ok := stored.Progress.Lesson("ch-1", "l-1"); !ok || !lesson.Completed {
		t.Errorf("roster cache not updated: %+v", stored.Progress)
	}

	evs := sink.all()
	if len(evs) != 1 || evs[0].UserID != "100001" || !evs[0].Completed {
		t.Errorf("expected one progress event, got %+v", evs)
	}
}

func TestLocalRecordProgressIdempotentToggle(t *testing.T) {
	sessions := newFakeSessions()
	sessions.LoginUser(context.Background(), &profile.Profile{
		ID: "100001", Username: "ada", Progress: profile.Progress{},
	})
	lt := NewLocalTracker(&fakeStore{profiles: fixtureRoster()}, sessions, nil, zap.NewNop())

	lt.RecordProgress(context.Background(), "100001", "ch-1", "l-1", true)
	lt.RecordProgress(context.Background(), "100001", "ch-1", "l-1", true)

	sess, _ := sessions.GetCurrentUser(context.Background(), "100001")
	if n := len(sess.Progress["ch-1"].Lessons); n != 1 {
		t.Errorf("repeated toggle duplicated the lesson entry, got %d", n)
	}
}

func TestLocalRegisterProfileReturnsEmptyProgress(t *testing.T) {
	lt := NewLocalTracker(&fakeStore{}, newFakeSessions(), nil, zap.NewNop())

	p, err := lt.RegisterProfile(context.Background(), &profile.Identity{
		ID: "300001", Username: "linus", Avatar: "http://a/l.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "300001" || p.Username != "linus" {
		t.Errorf("identity fields not carried over: %+v", p)
	}
	if len(p.Progress) != 0 {
		t.Errorf("fresh registration must start with empty progress, got %+v", p.Progress)
	}
}
