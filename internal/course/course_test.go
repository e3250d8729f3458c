package course

import (
	"context"
	"path/filepath"
	"testing"
)

func loadTestCourse(t *testing.T) *Course {
	t.Helper()
	c, err := Load(context.Background(), filepath.Join("testdata", "course.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestLoadFromFile(t *testing.T) {
	c := loadTestCourse(t)

	if len(c.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(c.Chapters))
	}
	if c.Chapters[0].ID != "ch-basics" || c.Chapters[0].Title != "Unity Basics" {
		t.Errorf("unexpected first chapter: %+v", c.Chapters[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join("testdata", "does-not-exist.json")); err == nil {
		t.Error("expected an error for a missing fixture file")
	}
}

func TestTotalLessons(t *testing.T) {
	if got := loadTestCourse(t).TotalLessons(); got != 5 {
		t.Errorf("TotalLessons() = %d, want 5", got)
	}
}

func TestHasLesson(t *testing.T) {
	c := loadTestCourse(t)

	tests := []struct {
		chapterID string
		lessonID  string
		want      bool
	}{
		{"ch-basics", "l-editor", true},
		{"ch-scripting", "l-physics", true},
		{"ch-basics", "l-physics", false},
		{"ch-unknown", "l-editor", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := c.HasLesson(tt.chapterID, tt.lessonID); got != tt.want {
			t.Errorf("HasLesson(%q, %q) = %v, want %v", tt.chapterID, tt.lessonID, got, tt.want)
		}
	}
}
