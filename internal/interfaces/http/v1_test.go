package http

import (
	"testing"

	"github.com/labstack/echo/v4"
)

func TestV1DataGroupsRequireAuth(t *testing.T) {
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	def := v1Endpoint(
		(*AuthHandler)(nil),
		(*RosterHandler)(nil),
		(*ProfileHandler)(nil),
		(*ProgressHandler)(nil),
		(*CourseHandler)(nil),
		(*ProgressSocketHandler)(nil),
		passthrough, passthrough, passthrough, passthrough,
	)

	protected := map[string]bool{
		"/roster":   false,
		"/profiles": false,
		"/course":   false,
		"/ws":       false,
	}
	for _, group := range def.groups {
		if _, ok := protected[group.prefix]; ok {
			protected[group.prefix] = len(group.middlewares) > 0
		}
	}
	for prefix, guarded := range protected {
		if !guarded {
			t.Errorf("group %s carries no middleware, data routes must sit behind token verification", prefix)
		}
	}
}
