package server

import (
	"elfatih/internal/models"
	"elfatih/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers handles GET /api/v1/admin/users
// @Summary List all users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Param active_only query bool false "Only active users"
// @Success 200 {object} object{users=[]models.User,count=int,skip=int,limit=int}
// @Router /admin/users [get]
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	users, err := s.userService.List(c.UserContext(), actorFrom(c), page.Skip, page.Limit, queryBool(c, "active_only", false))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
		"skip":  page.Skip,
		"limit": page.Limit,
	})
}

// AdminCreateUser handles POST /api/v1/admin/users
// @Summary Create user with any role (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateUserInput true "New account"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Username, email or phone already registered (duplicates are 409, not 400)"
// @Router /admin/users [post]
func (s *Server) AdminCreateUser(c *fiber.Ctx) error {
	var in service.CreateUserInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	user, err := s.userService.AdminCreate(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// AdminUpdateUser handles PUT /api/v1/admin/users/:id
// @Summary Update any user (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body service.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Router /admin/users/{id} [put]
func (s *Server) AdminUpdateUser(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	return s.updateUser(c, actorFrom(c), id)
}

func (s *Server) setRole(c *fiber.Ctx, role models.Role) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	user, err := s.userService.SetRole(c.UserContext(), actorFrom(c), id, role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// MakeAdmin handles POST /api/v1/admin/users/:id/make-admin
// @Summary Grant ADMIN role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Router /admin/users/{id}/make-admin [post]
func (s *Server) MakeAdmin(c *fiber.Ctx) error {
	return s.setRole(c, models.RoleAdmin)
}

// RemoveAdmin handles POST /api/v1/admin/users/:id/remove-admin
// @Summary Revoke ADMIN role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id}/remove-admin [post]
func (s *Server) RemoveAdmin(c *fiber.Ctx) error {
	return s.setRole(c, models.RoleUser)
}

func (s *Server) setActive(c *fiber.Ctx, active bool) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	user, err := s.userService.SetActive(c.UserContext(), actorFrom(c), id, active)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// ActivateUser handles POST /api/v1/admin/users/:id/activate
// @Summary Activate user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Router /admin/users/{id}/activate [post]
func (s *Server) ActivateUser(c *fiber.Ctx) error {
	return s.setActive(c, true)
}

// DeactivateUser handles POST /api/v1/admin/users/:id/deactivate
// @Summary Deactivate user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id}/deactivate [post]
func (s *Server) DeactivateUser(c *fiber.Ctx) error {
	return s.setActive(c, false)
}

// AdminStats handles GET /api/v1/admin/stats
// @Summary User statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserStats
// @Router /admin/stats [get]
func (s *Server) AdminStats(c *fiber.Ctx) error {
	stats, err := s.userService.Stats(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// ReconcileFeedback handles POST /api/v1/admin/posts/:id/reconcile-feedback
// @Summary Recompute feedback counters from feedback rows
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.FeedbackCounters
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/posts/{id}/reconcile-feedback [post]
func (s *Server) ReconcileFeedback(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	counters, err := s.feedbackService.Reconcile(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counters)
}
