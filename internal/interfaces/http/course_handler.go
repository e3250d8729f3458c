package http

import (
	"net/http"

	"github.com/Mephistophillis/UnityCourseTracker/internal/course"
	"github.com/labstack/echo/v4"
)

// CourseHandler serves the static course definition
type CourseHandler struct {
	course *course.Course
}

func NewCourseHandler(Course *course.Course) *CourseHandler {
	return &CourseHandler{Course}
}

func (ch *CourseHandler) HandleGetCourse(c echo.Context) (err error) {
	return c.JSON(http.StatusOK, ch.course)
}
