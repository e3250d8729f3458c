package course

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
)

// Lesson a single trackable unit
type Lesson struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Chapter ordered sequence of lessons
type Chapter struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course the static course definition, read once and never mutated
type Course struct {
	Chapters []Chapter `json:"chapters"`
}

// Load read the course fixture from a file path or http(s) URL
func Load(ctx context.Context, fixtureURL string) (*Course, error) {
	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(fixtureURL, "http://") || strings.HasPrefix(fixtureURL, "https://") {
		raw, err = fetch(ctx, fixtureURL)
	} else {
		raw, err = ioutil.ReadFile(fixtureURL)
	}
	if err != nil {
		return nil, fmt.Errorf("load course fixture: %w", err)
	}

	c := new(Course)
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse course fixture: %w", err)
	}
	return c, nil
}

// TotalLessons lesson count over all chapters
func (c *Course) TotalLessons() int {
	total := 0
	for _, chapter := range c.Chapters {
		total += len(chapter.Lessons)
	}
	return total
}

// HasLesson report whether the (chapter, lesson) pair is defined
func (c *Course) HasLesson(chapterID, lessonID string) bool {
	for _, chapter := range c.Chapters {
		if chapter.ID != chapterID {
			continue
		}
		for _, lesson := range chapter.Lessons {
			if lesson.ID == lessonID {
				return true
			}
		}
	}
	return false
}

func fetch(ctx context.Context, fixtureURL string) ([]byte, error) {
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
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return ioutil.ReadAll(res.Body)
}
