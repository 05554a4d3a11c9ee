package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  route.SuccessResponse{data=domain.User}
// @Failure      400   {object}  route.ErrorResponse
// @Failure      500   {object}  route.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	req.Normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, route.SuccessResponse{Data: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  route.SuccessResponse{data=loginResponse}
// @Failure      400   {object}  route.ErrorResponse
// @Failure      401   {object}  route.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, route.SuccessResponse{Data: loginResponse{Token: token, User: user}})
}

// Logout revokes the caller's token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  route.SuccessResponse{data=deletedResponse}
// @Failure      401  {object}  route.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(ctx context.Context, rc *route.Context, _ *route.NoBody) (deletedResponse, error) {
	if err := h.authService.Logout(ctx, rc.Session); err != nil {
		return deletedResponse{}, err
	}
	return deletedResponse{Success: true}, nil
}
