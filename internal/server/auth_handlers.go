package server

import (
	"strings"
	"time"

	"elfatih/internal/auth"
	"elfatih/internal/middleware"
	"elfatih/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest accepts either a JSON body or an
// application/x-www-form-urlencoded password form.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// CurrentUserResponse is the identity carried by the caller's token.
type CurrentUserResponse struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	UserType models.Role `json:"user_type"`
	IsActive bool        `json:"is_active"`
}

func currentUser(claims *auth.Claims) CurrentUserResponse {
	return CurrentUserResponse{
		UserID:   claims.UserID,
		Username: claims.Username(),
		UserType: claims.UserType,
		IsActive: claims.IsActive,
	}
}

func (s *Server) issueToken(c *fiber.Ctx, user *models.User) error {
	token, claims, err := s.tokens.Issue(auth.SubjectFromUser(user))
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}
	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(claims.TTL(time.Now()).Round(time.Second).Seconds()),
		User:        user,
	})
}

// Login handles POST /api/v1/auth/login
// @Summary User login
// @Description Authenticate with username and password and receive a bearer token
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if models.StatusFor(err) == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return respondServiceError(c, err)
	}
	return s.issueToken(c, user)
}

// TestToken handles POST /api/v1/auth/test-token
// @Summary Validate token
// @Description Returns the identity embedded in the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CurrentUserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/test-token [post]
func (s *Server) TestToken(c *fiber.Ctx) error {
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(currentUser(claims))
}

// AuthMe handles GET /api/v1/auth/me. It answers from the token alone.
// @Summary Current token identity
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CurrentUserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) AuthMe(c *fiber.Ctx) error {
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(currentUser(claims))
}

// Refresh handles POST /api/v1/auth/refresh. The user is re-read so role
// and status changes since the last token take effect.
// @Summary Refresh access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	claims, _ := middleware.ClaimsFrom(c)
	user, err := s.userService.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if models.StatusFor(err) == fiber.StatusNotFound {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User no longer exists"))
		}
		return respondServiceError(c, err)
	}
	return s.issueToken(c, user)
}

// Logout handles POST /api/v1/auth/logout
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, _ := middleware.ClaimsFrom(c)
	if s.revocations != nil && claims.ID != "" {
		if ttl := claims.TTL(time.Now()); ttl > 0 {
			if err := s.revocations.Revoke(c.UserContext(), claims.ID, ttl); err != nil {
				return respondServiceError(c, models.NewInternalError(err))
			}
		}
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}
