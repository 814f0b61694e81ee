package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
	"github.com/lokesh-katari/auth-service/internal/core/ports"
)

// AdminHandler serves the admin-only endpoints. Role gating happens in the
// middleware chain; these handlers assume the caller already holds ADMIN.
type AdminHandler struct {
	authService ports.AuthService
	cache       ports.ProfileCache
	log         zerolog.Logger
}

func NewAdminHandler(authService ports.AuthService, cache ports.ProfileCache, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{authService: authService, cache: cache, log: log}
}

// CreateUser creates an account with an explicit role set. Roles default to
// [USER] when omitted.
//
// @Summary      Create a user account (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/create [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roles := make([]domain.Role, 0, len(req.Roles))
	for _, raw := range req.Roles {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return err
		}
		roles = append(roles, role)
	}

	ctx := c.Request().Context()
	user, err := h.authService.CreateUser(ctx, req.Username, req.Email, req.Password, roles)
	if err != nil {
		return err
	}

	// Evict any cached profile under this username so reads observe the store.
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, user.Username); err != nil {
			h.log.Warn().Err(err).Str("username", user.Username).Msg("profile cache invalidation failed")
		}
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Dashboard returns account totals visible only to administrators.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	total, admins, err := h.authService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		TotalUsers: total,
		AdminUsers: admins,
	})
}
