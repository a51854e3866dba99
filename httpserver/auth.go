package httpserver

import (
	"net/http"

	"watchtrack/errs"
	"watchtrack/session"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicAuthRoutes(g *echo.Group) {
	g.POST("/auth/login", s.handleLogin)
}

func (s *Server) RegisterPrivateAuthRoutes(g *echo.Group) {
	g.POST("/auth/logout", s.handleLogout)
	g.PATCH("/auth/password", s.handleChangePassword)
}

// handleLogin godoc
// @Summary User Login
// @Description Authenticate user and return a session token plus watchlist summaries
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login Credentials"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/login [post]
func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, err := s.Tokens.GenerateToken(result.Username)
	if err != nil {
		return errs.Errorf(errs.EINTERNAL, "could not issue session token")
	}

	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"token":      token,
		"username":   result.Username,
		"watchlists": result.WatchLists,
	})
}

// handleLogout godoc
// @Summary User Logout
// @Description End the active session
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/logout [post]
func (s *Server) handleLogout(c echo.Context) error {
	result := s.AuthService.Logout(c.Request().Context())
	return writeSuccess(c, http.StatusOK, result)
}

// handleChangePassword godoc
// @Summary Change Password
// @Description Set a new password for the active user
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body ChangePasswordRequest true "New Password"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/password [patch]
func (s *Server) handleChangePassword(c echo.Context) error {
	var req ChangePasswordRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username := session.Username(c.Request().Context())
	if username == "" {
		return errs.Errorf(errs.EUNAUTHORIZED, "no active session")
	}

	if err := s.AuthService.ChangePassword(c.Request().Context(), username, req.NewPassword); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "password changed",
	})
}
