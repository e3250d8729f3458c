package http

import (
	"net/http"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/auth"
	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
	"github.com/Mephistophillis/UnityCourseTracker/internal/tracker"
	"github.com/labstack/echo/v4"
)

// RosterEntry dashboard row: profile plus its derived completion percentage
type RosterEntry struct {
	*profile.Profile
	Percentage int `json:"percentage"`
}

type rosterResponse struct {
	Users []*RosterEntry `json:"users"`
}

// RosterHandler dashboard listing
type RosterHandler struct {
	tracker tracker.Tracker
	jwtUtil *auth.JWTUtil
}

func NewRosterHandler(Tracker tracker.Tracker, JWTUtil *auth.JWTUtil) *RosterHandler {
	return &RosterHandler{Tracker, JWTUtil}
}

// HandleGetRoster full participant list, an errored backend read degrades to
// an empty list rather than a failure status
func (rh *RosterHandler) HandleGetRoster(c echo.Context) (err error) {
	claims := rh.jwtUtil.GetContextToken(c)
	uid := ""
	if claims != nil {
		uid = claims.UID
	}

	users := rh.tracker.LoadRoster(c.Request().Context(), uid)
	entries := make([]*RosterEntry, 0, len(users))
	for _, p := range users {
		entries = append(entries, &RosterEntry{
			Profile:    p,
			Percentage: p.Progress.Percentage(),
		})
	}
	return c.JSON(http.StatusOK, rosterResponse{Users: entries})
}
