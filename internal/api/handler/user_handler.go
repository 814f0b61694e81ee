package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lokesh-katari/auth-service/internal/api/middleware"
	"github.com/lokesh-katari/auth-service/internal/core/ports"
)

// UserHandler serves the public info endpoint and the authenticated profile.
type UserHandler struct {
	authService ports.AuthService
	cache       ports.ProfileCache
	log         zerolog.Logger
}

// NewUserHandler builds a UserHandler. cache may be nil, in which case every
// profile read goes straight to the store.
func NewUserHandler(authService ports.AuthService, cache ports.ProfileCache, log zerolog.Logger) *UserHandler {
	return &UserHandler{authService: authService, cache: cache, log: log}
}

// Info returns a static service description. Public: no token required.
//
// @Summary      Public service info
// @Tags         public
// @Produce      json
// @Success      200  {object}  infoResponse
// @Router       /api/public/info [get]
func (h *UserHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, infoResponse{
		Service: "auth-service",
		Message: "public endpoint, no authentication required",
	})
}

// Profile returns the caller's own identity record, resolved from the
// verified token subject. Reads go through the profile cache when present;
// cache failures degrade to a store round-trip, never to a request failure.
//
// @Summary      Caller's profile
// @Tags         user
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	username := middleware.UsernameFromContext(c)
	if username == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	ctx := c.Request().Context()

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, username)
		if err != nil {
			h.log.Warn().Err(err).Str("username", username).Msg("profile cache read failed")
		} else if cached != nil {
			return c.JSON(http.StatusOK, toUserResponse(cached))
		}
	}

	user, err := h.authService.Profile(ctx, username)
	if err != nil {
		return err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, user); err != nil {
			h.log.Warn().Err(err).Str("username", username).Msg("profile cache write failed")
		}
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
