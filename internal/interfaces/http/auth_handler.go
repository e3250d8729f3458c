package http

import (
	"net/http"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/auth"
	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/driver"
	"github.com/Mephistophillis/UnityCourseTracker/internal/session"
	"github.com/Mephistophillis/UnityCourseTracker/internal/telegram"
	"github.com/Mephistophillis/UnityCourseTracker/internal/tracker"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler login widget callback and logout
type AuthHandler struct {
	JWTUtil  *auth.JWTUtil
	Verifier *telegram.Verifier
	Tracker  tracker.Tracker
	Sessions session.Store
	KVStore  driver.KeyValueDB
	Logger   *zap.Logger
}

// NewAuthHandler create an auth controller instance
func NewAuthHandler(
	JWTUtil *auth.JWTUtil,
	Verifier *telegram.Verifier,
	Tracker tracker.Tracker,
	Sessions session.Store,
	KVStore driver.KeyValueDB,
	Logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		JWTUtil:  JWTUtil,
		Verifier: Verifier,
		Tracker:  Tracker,
		Sessions: Sessions,
		KVStore:  KVStore,
		Logger:   Logger,
	}
}

// HandleTelegramLogin widget callback: verify, normalize, register the
// profile, open the session and issue the cookie token
func (ah *AuthHandler) HandleTelegramLogin(c echo.Context) (err error) {
	cb := new(telegram.Callback)
	if err = c.Bind(cb); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind login payload").SetDetail(internal.Error()))
	}

	if err := ah.Verifier.Verify(cb); err != nil {
		return c.JSON(http.StatusUnauthorized,
			NewRESTStandardError(http.StatusUnauthorized, "Login payload rejected"))
	}

	ident := cb.Normalize()
	if ident.ID == "" {
		return c.JSON(http.StatusBadRequest,
			NewRESTStandardError(http.StatusBadRequest, "Login payload has no id"))
	}

	ctx := c.Request().Context()
	p, err := ah.Tracker.RegisterProfile(ctx, ident)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			NewRESTStandardError(http.StatusInternalServerError, "Failed to register profile").SetDetail(err.Error()))
	}
	if err := ah.Sessions.LoginUser(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError,
			NewRESTStandardError(http.StatusInternalServerError, "Failed to open session").SetDetail(err.Error()))
	}

	tokenStr, err := ah.JWTUtil.GenerateTokenStr(p.ID, p.Username, p.Avatar)
	if err != nil {
		return err
	}
	ah.JWTUtil.SetClientToken(c, tokenStr)
	return c.JSON(http.StatusOK, p)
}

// HandleLogout blacklist the live token, drop the session slot and clear the
// cookie, safe to call repeatedly
func (ah *AuthHandler) HandleLogout(c echo.Context) (err error) {
	ju := ah.JWTUtil
	kv := ah.KVStore

	tokenStr, err := ju.ExtractToken(c)
	if err != nil {
		return c.NoContent(http.StatusOK)
	}
	token, err := ju.Validate(tokenStr)
	if err != nil {
		ju.ClearClientToken(c)
		return c.NoContent(http.StatusOK)
	}

	if err := kv.SetEX(tokenStr, "", token.TimeRemaining()); err != nil {
		ah.Logger.Warn("Failed to blacklist token", zap.Error(err))
	}
	if err := ah.Sessions.LogoutUser(c.Request().Context(), token.UID); err != nil {
		ah.Logger.Warn("Failed to clear session slot", zap.String("user.id", token.UID), zap.Error(err))
	}
	ju.ClearClientToken(c)
	return c.NoContent(http.StatusOK)
}
