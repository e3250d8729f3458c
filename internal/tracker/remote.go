package tracker

import (
	"context"
	"time"

	"github.com/Mephistophillis/UnityCourseTracker/internal/events"
	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
	"github.com/Mephistophillis/UnityCourseTracker/internal/session"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// RemoteTracker production variant, the profiles table is the system of
// record and the session slot is a cache kept consistent with it
type RemoteTracker struct {
	store    profile.Store
	sessions session.Store
	events   events.Publisher
	logger   *zap.Logger
}

var _ Tracker = &RemoteTracker{}

// NewRemoteTracker create the production tracker
func NewRemoteTracker(
	store profile.Store,
	sessions session.Store,
	publisher events.Publisher,
	logger *zap.Logger,
) *RemoteTracker {
	return &RemoteTracker{
		store:    store,
		sessions: sessions,
		events:   publisher,
		logger:   logger,
	}
}

// LoadRoster all table rows verbatim, remote is authoritative so no session
// merge happens here
func (rt *RemoteTracker) LoadRoster(ctx context.Context, uid string) []*profile.Profile {
	apmSpan, ctx := apm.StartSpan(ctx, "RemoteTracker.LoadRoster", "service")
	defer apmSpan.End()

	users, err := rt.store.GetAll(ctx)
	if err != nil {
		rt.logger.Error("Failed to load roster", zap.Error(err))
		return []*profile.Profile{}
	}
	if users == nil {
		users = []*profile.Profile{}
	}
	return users
}

// LoadProfile single row fetch, nil on absence or failure alike
func (rt *RemoteTracker) LoadProfile(ctx context.Context, uid, targetID string) *profile.Profile {
	apmSpan, ctx := apm.StartSpan(ctx, "RemoteTracker.LoadProfile", "service")
	defer apmSpan.End()

	p, err := rt.store.GetByID(ctx, targetID)
	if err != nil {
		rt.logger.Error("Failed to load profile", zap.String("profile.id", targetID), zap.Error(err))
		return nil
	}
	return p
}

// RecordProgress non-atomic read-modify-write against the table: the row's
// current progress is fetched, the lesson entry is found or created in
// memory and the whole value is written back conditioned on id match only.
// Two in-flight toggles for the same user race and the last write wins,
// accepted since a user drives their own checkboxes serially
func (rt *RemoteTracker) RecordProgress(ctx context.Context, uid, chapterID, lessonID string, completed bool) bool {
	apmSpan, ctx := apm.StartSpan(ctx, "RemoteTracker.RecordProgress", "service")
	defer apmSpan.End()

	p, err := rt.store.GetByID(ctx, uid)
	if err != nil || p == nil {
		rt.logger.Error("Failed to read profile for progress write",
			zap.String("user.id", uid), zap.Error(err))
		return false
	}

	if p.Progress == nil {
		p.Progress = profile.Progress{}
	}
	p.Progress.SetLesson(chapterID, lessonID, completed)
	if err := rt.store.UpdateProgress(ctx, uid, p.Progress); err != nil {
		rt.logger.Error("Failed to write progress",
			zap.String("user.id", uid), zap.Error(err))
		return false
	}

	// keep the session cache in step with the table, best effort
	p.UpdatedAt = time.Now().Unix()
	if err := rt.sessions.LoginUser(ctx, p); err != nil {
		rt.logger.Warn("Failed to refresh session cache",
			zap.String("user.id", uid), zap.Error(err))
	}

	if rt.events != nil {
		rt.events.Publish(events.ProgressEvent{
			UserID:    uid,
			ChapterID: chapterID,
			LessonID:  lessonID,
			Completed: completed,
		})
	}
	return true
}

// RegisterProfile insert-if-absent: a first-time identity gets a fresh row
// with empty progress, a returning user's stored record is returned
// untouched so remote progress is never clobbered by a stale login payload
func (rt *RemoteTracker) RegisterProfile(ctx context.Context, ident *profile.Identity) (*profile.Profile, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "RemoteTracker.RegisterProfile", "service")
	defer apmSpan.End()

	existing, err := rt.store.GetByID(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	p := ident.NewProfile(time.Now().Unix())
	if err := rt.store.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
