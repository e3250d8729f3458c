package http

import (
	"github.com/labstack/echo/v4"
)

func v1Endpoint(
	AuthHandler *AuthHandler,
	RosterHandler *RosterHandler,
	ProfileHandler *ProfileHandler,
	ProgressHandler *ProgressHandler,
	CourseHandler *CourseHandler,
	SocketHandler *ProgressSocketHandler,
	jwtMiddleware echo.MiddlewareFunc,
	refreshMiddleware echo.MiddlewareFunc,
	requestIDMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{requestIDMiddleware, traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/auth",
				routes: []*route{
					{"POST", "/telegram", AuthHandler.HandleTelegramLogin, nil},
					{"GET", "/logout", AuthHandler.HandleLogout, nil},
				},
			},
			{
				prefix:      "/roster",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"GET", "", RosterHandler.HandleGetRoster, nil},
				},
			},
			{
				prefix:      "/profiles",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"GET", "/:id", ProfileHandler.HandleGetProfile, nil},
					{"PUT", "/:id/progress", ProgressHandler.HandleRecordProgress, nil},
				},
			},
			{
				prefix:      "/course",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"GET", "", CourseHandler.HandleGetCourse, nil},
				},
			},
			{
				prefix:      "/ws",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware},
				routes: []*route{
					{"GET", "/progress", SocketHandler.HandleSubscribe, nil},
				},
			},
		},
	}
}
