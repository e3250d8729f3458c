package profile

// LessonProgress completion state of a single lesson
type LessonProgress struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// ChapterProgress per-chapter lesson states, membership is by lesson id
type ChapterProgress struct {
	Lessons []LessonProgress `json:"lessons"`
}

// Progress chapter id to chapter progress mapping, absent chapters mean
// no lessons completed
type Progress map[string]ChapterProgress

// Profile a participant identity plus their course completion state
type Profile struct {
	ID        string   `json:"id"`
	Username  string   `json:"username,omitempty"`
	Avatar    string   `json:"avatar,omitempty"`
	Progress  Progress `json:"progress"`
	UpdatedAt int64    `json:"updated_at,omitempty"` // unix seconds
}

// Identity normalized identity-provider payload
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// NewProfile build a fresh profile for the identity with empty progress
func (ident *Identity) NewProfile(now int64) *Profile {
	return &Profile{
		ID:        ident.ID,
		Username:  ident.Username,
		Avatar:    ident.Avatar,
		Progress:  Progress{},
		UpdatedAt: now,
	}
}

// Lesson look up a lesson entry, second value reports presence
func (p Progress) Lesson(chapterID, lessonID string) (LessonProgress, bool) {
	chapter, ok := p[chapterID]
	if !ok {
		return LessonProgress{}, false
	}
	for _, lesson := range chapter.Lessons {
		if lesson.ID == lessonID {
			return lesson, true
		}
	}
	return LessonProgress{}, false
}

// SetLesson find-or-create the lesson entry and set its completed flag.
// The chapter entry is created on first touch, a lesson appears at most
// once per chapter
func (p Progress) SetLesson(chapterID, lessonID string, completed bool) {
	chapter := p[chapterID]
	for i, lesson := range chapter.Lessons {
		if lesson.ID == lessonID {
			chapter.Lessons[i].Completed = completed
			p[chapterID] = chapter
			return
		}
	}
	chapter.Lessons = append(chapter.Lessons, LessonProgress{ID: lessonID, Completed: completed})
	p[chapterID] = chapter
}

// Percentage completion percentage over all recorded lessons, rounded to
// the nearest integer, 0 when nothing is recorded
func (p Progress) Percentage() int {
	total, completed := 0, 0
	for _, chapter := range p {
		for _, lesson := range chapter.Lessons {
			total++
			if lesson.Completed {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}

// Clone deep copy, keeps merge operations from aliasing store-owned state
func (p *Profile) Clone() *Profile {
	clone := *p
	clone.Progress = p.Progress.Clone()
	return &clone
}

// Clone deep copy of the progress mapping
func (p Progress) Clone() Progress {
	if p == nil {
		return nil
	}
	clone := make(Progress, len(p))
	for chapterID, chapter := range p {
		lessons := make([]LessonProgress, len(chapter.Lessons))
		copy(lessons, chapter.Lessons)
		clone[chapterID] = ChapterProgress{Lessons: lessons}
	}
	return clone
}
