package http

import (
	"net/http"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/auth"
	"github.com/Mephistophillis/UnityCourseTracker/internal/tracker"
	"github.com/labstack/echo/v4"
)

// ProfileHandler single participant view
type ProfileHandler struct {
	tracker tracker.Tracker
	jwtUtil *auth.JWTUtil
}

func NewProfileHandler(Tracker tracker.Tracker, JWTUtil *auth.JWTUtil) *ProfileHandler {
	return &ProfileHandler{Tracker, JWTUtil}
}

// HandleGetProfile one profile with its percentage, 404 covers both a
// missing row and an unreachable backend
func (ph *ProfileHandler) HandleGetProfile(c echo.Context) (err error) {
	claims := ph.jwtUtil.GetContextToken(c)
	targetID := c.Param("id")

	p := ph.tracker.LoadProfile(c.Request().Context(), claims.UID, targetID)
	if p == nil {
		return c.JSON(http.StatusNotFound,
			NewRESTStandardError(http.StatusNotFound, "Profile not found"))
	}
	return c.JSON(http.StatusOK, &RosterEntry{
		Profile:    p,
		Percentage: p.Progress.Percentage(),
	})
}
