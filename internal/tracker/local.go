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

// LocalTracker development variant working off the roster fixture, the
// session snapshot is the authority for the logged-in user's own progress
type LocalTracker struct {
	store    profile.Store
	sessions session.Store
	events   events.Publisher
	logger   *zap.Logger
}

var _ Tracker = &LocalTracker{}

// NewLocalTracker create the development tracker
func NewLocalTracker(
	store profile.Store,
	sessions session.Store,
	publisher events.Publisher,
	logger *zap.Logger,
) *LocalTracker {
	return &LocalTracker{
		store:    store,
		sessions: sessions,
		events:   publisher,
		logger:   logger,
	}
}

// LoadRoster fixture roster with the caller's live session progress spliced
// in: the matching entry is replaced, a session user missing from the
// fixture is appended
func (lt *LocalTracker) LoadRoster(ctx context.Context, uid string) []*profile.Profile {
	apmSpan, ctx := apm.StartSpan(ctx, "LocalTracker.LoadRoster", "service")
	defer apmSpan.End()

	users, err := lt.store.GetAll(ctx)
	if err != nil {
		lt.logger.Error("Failed to load roster fixture", zap.Error(err))
		return []*profile.Profile{}
	}

	if uid == "" {
		return users
	}
	sess, err := lt.sessions.GetCurrentUser(ctx, uid)
	if err != nil {
		lt.logger.Error("Failed to read session", zap.String("user.id", uid), zap.Error(err))
		return users
	}
	if sess == nil {
		return users
	}

	merged := make([]*profile.Profile, 0, len(users)+1)
	found := false
	for _, p := range users {
		if p.ID == sess.ID {
			merged = append(merged, sess.Clone())
			found = true
			continue
		}
		merged = append(merged, p)
	}
	if !found {
		merged = append(merged, sess.Clone())
	}
	return merged
}

// LoadProfile session profile when the caller asks for their own id, so
// locally applied edits are visible before any refetch, roster lookup
// otherwise
func (lt *LocalTracker) LoadProfile(ctx context.Context, uid, targetID string) *profile.Profile {
	apmSpan, ctx := apm.StartSpan(ctx, "LocalTracker.LoadProfile", "service")
	defer apmSpan.End()

	if uid != "" && uid == targetID {
		sess, err := lt.sessions.GetCurrentUser(ctx, uid)
		if err != nil {
			lt.logger.Error("Failed to read session", zap.String("user.id", uid), zap.Error(err))
			return nil
		}
		if sess != nil {
			return sess
		}
	}
	for _, p := range lt.LoadRoster(ctx, uid) {
		if p.ID == targetID {
			return p
		}
	}
	return nil
}

// RecordProgress read-modify-write of the session progress, written through
// to the session slot and the roster cache. Re-checks that uid owns the
// session before touching anything
func (lt *LocalTracker) RecordProgress(ctx context.Context, uid, chapterID, lessonID string, completed bool) bool {
	apmSpan, ctx := apm.StartSpan(ctx, "LocalTracker.RecordProgress", "service")
	defer apmSpan.End()

	sess, err := lt.sessions.GetCurrentUser(ctx, uid)
	if err != nil || sess == nil || sess.ID != uid {
		lt.logger.Warn("Progress write without a matching session", zap.String("user.id", uid), zap.Error(err))
		return false
	}

	if sess.Progress == nil {
		sess.Progress = profile.Progress{}
	}
	sess.Progress.SetLesson(chapterID, lessonID, completed)
	sess.UpdatedAt = time.Now().Unix()
	if err := lt.sessions.LoginUser(ctx, sess); err != nil {
		lt.logger.Error("Failed to persist session progress", zap.String("user.id", uid), zap.Error(err))
		return false
	}

	// the session slot is already updated at this point, a failed cache
	// write leaves the roster stale until the next full reload
	if err := lt.store.UpdateProgress(ctx, uid, sess.Progress); err != nil && err != profile.ErrProfileNotFound {
		lt.logger.Warn("Failed to write progress through to the roster cache",
			zap.String("user.id", uid), zap.Error(err))
	}

	if lt.events != nil {
		lt.events.Publish(events.ProgressEvent{
			UserID:    uid,
			ChapterID: chapterID,
			LessonID:  lessonID,
			Completed: completed,
		})
	}
	return true
}

// RegisterProfile no-op in development, registration only matters against
// the remote table
func (lt *LocalTracker) RegisterProfile(ctx context.Context, ident *profile.Identity) (*profile.Profile, error) {
	apmSpan, _ := apm.StartSpan(ctx, "LocalTracker.RegisterProfile", "service")
	defer apmSpan.End()

	return ident.NewProfile(time.Now().Unix()), nil
}
