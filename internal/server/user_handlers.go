package server

import (
	"net/url"

	"elfatih/internal/models"
	"elfatih/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/v1/users
// @Summary Register user
// @Description Public sign-up. New accounts always get the USER role.
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "New account"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Username, email or phone already registered (duplicates are 409, not 400)"
// @Router /users [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	user, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetMe handles GET /api/v1/users/me
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /users/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.UserContext(), actorFrom(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMe handles PUT /api/v1/users/me
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Username, email or phone already registered (duplicates are 409, not 400)"
// @Router /users/me [put]
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	actor := actorFrom(c)
	return s.updateUser(c, actor, actor.UserID)
}

// DeleteMe handles DELETE /api/v1/users/me
// @Summary Delete own account
// @Description Admins must be removed by another admin.
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [delete]
func (s *Server) DeleteMe(c *fiber.Ctx) error {
	if err := s.userService.DeleteSelf(c.UserContext(), actorFrom(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers handles GET /api/v1/users
// @Summary List users
// @Description Non-admin callers only see active users.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Param active_only query bool false "Only active users"
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	users, err := s.userService.List(c.UserContext(), actorFrom(c), page.Skip, page.Limit, queryBool(c, "active_only", false))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUserByPhone handles GET /api/v1/users/phone/:phone
// @Summary Find user by phone
// @Tags users
// @Produce json
// @Param phone path string true "Phone number, any formatting"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/phone/{phone} [get]
func (s *Server) GetUserByPhone(c *fiber.Ctx) error {
	phone, err := url.PathUnescape(c.Params("phone"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid phone number format"))
	}
	user, err := s.userService.GetByPhone(c.UserContext(), phone)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUser handles GET /api/v1/users/:id
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	user, err := s.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/v1/users/:id
// @Summary Update user
// @Description Allowed for the user themselves or an admin. Only admins may change user_type or is_active.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body service.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	return s.updateUser(c, actorFrom(c), id)
}

func (s *Server) updateUser(c *fiber.Ctx, actor service.Actor, id uint) error {
	var in service.UpdateUserInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	user, err := s.userService.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/v1/users/:id
// @Summary Delete user (admin)
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := s.userService.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
