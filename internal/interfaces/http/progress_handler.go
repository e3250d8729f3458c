package http

import (
	"net/http"

	"github.com/Mephistophillis/UnityCourseTracker/internal/course"
	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/auth"
	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/validate"
	"github.com/Mephistophillis/UnityCourseTracker/internal/tracker"
	"github.com/labstack/echo/v4"
)

// ProgressUpdate lesson toggle request body
type ProgressUpdate struct {
	ChapterID string `json:"chapter_id" validate:"required"`
	LessonID  string `json:"lesson_id" validate:"required"`
	Completed bool   `json:"completed"`
}

// ProgressHandler lesson completion toggles
type ProgressHandler struct {
	tracker   tracker.Tracker
	jwtUtil   *auth.JWTUtil
	validator validate.Validator
	course    *course.Course
}

func NewProgressHandler(
	Tracker tracker.Tracker,
	JWTUtil *auth.JWTUtil,
	Validator validate.Validator,
	Course *course.Course,
) *ProgressHandler {
	return &ProgressHandler{Tracker, JWTUtil, Validator, Course}
}

// HandleRecordProgress toggle one lesson checkbox, owners only. The tracker
// reports plain success or failure, a false maps to 502 since the backing
// store is the thing that broke
func (ph *ProgressHandler) HandleRecordProgress(c echo.Context) (err error) {
	claims := ph.jwtUtil.GetContextToken(c)
	targetID := c.Param("id")
	if targetID != claims.UID {
		return c.JSON(http.StatusForbidden,
			NewRESTStandardError(http.StatusForbidden, "Progress can only be recorded on your own profile"))
	}

	post := new(ProgressUpdate)
	if err = c.Bind(post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind progress update").SetDetail(internal.Error()))
	}
	if err := ph.validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}
	if !ph.course.HasLesson(post.ChapterID, post.LessonID) {
		return c.JSON(http.StatusBadRequest,
			NewRESTStandardError(http.StatusBadRequest, "Unknown chapter or lesson"))
	}

	ok := ph.tracker.RecordProgress(c.Request().Context(), claims.UID, post.ChapterID, post.LessonID, post.Completed)
	if !ok {
		return c.JSON(http.StatusBadGateway,
			NewRESTStandardError(http.StatusBadGateway, "Failed to record progress"))
	}
	return c.JSON(http.StatusOK, post)
}
