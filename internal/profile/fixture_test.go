package profile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/driver"
)

func newTestFixtureStore() (*FixtureStore, *driver.MemoryKV) {
	kv := driver.NewMemoryKV()
	return NewFixtureStore(filepath.Join("testdata", "users.json"), kv), kv
}

func TestFixtureGetAll(t *testing.T) {
	store, _ := newTestFixtureStore()

	users, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 fixture users, got %d", len(users))
	}
	if users[0].Username != "ada" || users[1].Username != "grace" {
		t.Errorf("fixture order not preserved: %s, %s", users[0].Username, users[1].Username)
	}
	if lesson, ok := users[0].Progress.Lesson("ch-basics", "l-editor"); !ok || !lesson.Completed {
		t.Errorf("fixture progress not decoded: %+v", users[0].Progress)
	}
}

func TestFixtureCachesDocument(t *testing.T) {
	store, kv := newTestFixtureStore()

	if _, err := store.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := kv.Exists(RosterCacheKey); !ok {
		t.Error("first read must warm the roster cache")
	}

	// subsequent reads come from the cache, not the file
	kv.Set(RosterCacheKey, `{"users":[{"id":"1","username":"cached"}]}`)
	users, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Username != "cached" {
		t.Errorf("expected the cached document to be served, got %+v", users)
	}
}

func TestFixtureGetByID(t *testing.T) {
	store, _ := newTestFixtureStore()

	p, err := store.GetByID(context.Background(), "100002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Username != "grace" {
		t.Errorf("expected grace, got %+v", p)
	}

	missing, err := store.GetByID(context.Background(), "999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("unknown id must yield (nil, nil), got %+v", missing)
	}
}

func TestFixtureInsert(t *testing.T) {
	store, _ := newTestFixtureStore()

	fresh := &Profile{ID: "300001", Username: "linus", Progress: Progress{}}
	if err := store.Insert(context.Background(), fresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	users, _ := store.GetAll(context.Background())
	if len(users) != 3 {
		t.Fatalf("expected 3 users after insert, got %d", len(users))
	}
	if p, _ := store.GetByID(context.Background(), "300001"); p == nil || p.Username != "linus" {
		t.Errorf("inserted profile not readable: %+v", p)
	}
}

func TestFixtureUpdateProgress(t *testing.T) {
	store, _ := newTestFixtureStore()

	progress := Progress{}
	progress.SetLesson("ch-basics", "l-scenes", true)
	if err := store.UpdateProgress(context.Background(), "100002", progress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, _ := store.GetByID(context.Background(), "100002")
	if lesson, ok := p.Progress.Lesson("ch-basics", "l-scenes"); !ok || !lesson.Completed {
		t.Errorf("progress update not persisted: %+v", p.Progress)
	}

	if err := store.UpdateProgress(context.Background(), "999999", progress); err != ErrProfileNotFound {
		t.Errorf("expected ErrProfileNotFound for an unknown id, got %v", err)
	}
}

func TestFixtureMissingFile(t *testing.T) {
	store := NewFixtureStore(filepath.Join("testdata", "does-not-exist.json"), driver.NewMemoryKV())

	if _, err := store.GetAll(context.Background()); err == nil {
		t.Error("expected an error for a missing fixture file")
	}
}
