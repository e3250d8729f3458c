package tracker

import (
	"context"

	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
)

// Tracker reconciles the session snapshot with the authoritative profile
// source. One implementation is picked at boot per environment, operations
// never branch on mode at runtime.
//
// The uid argument is the authenticated user of the calling session, empty
// when anonymous. Loads degrade instead of failing: LoadRoster returns an
// empty slice and LoadProfile nil on any store error, absence and transient
// failure are deliberately indistinguishable to callers.
type Tracker interface {
	LoadRoster(ctx context.Context, uid string) []*profile.Profile
	LoadProfile(ctx context.Context, uid, targetID string) *profile.Profile
	RecordProgress(ctx context.Context, uid, chapterID, lessonID string, completed bool) bool
	RegisterProfile(ctx context.Context, ident *profile.Identity) (*profile.Profile, error)
}
