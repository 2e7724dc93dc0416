package server

import (
	"time"

	"chirp/internal/authz"
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users (staff only)
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessUser(actor, authz.ActionList, 0); denied != nil {
		return s.fail(c, denied)
	}

	p := parsePagination(c, 20)
	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id (owner or staff)
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessUser(actor, authz.ActionRead, id); denied != nil {
		return s.fail(c, denied)
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/users/:id (owner or staff).
// Username and password cannot be changed through this endpoint.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessUser(actor, authz.ActionUpdate, id); denied != nil {
		return s.fail(c, denied)
	}

	var req struct {
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    id,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id (owner or staff, cascades)
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessUser(actor, authz.ActionDelete, id); denied != nil {
		return s.fail(c, denied)
	}

	if err := s.userService.DeleteUser(c.Context(), id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserActivity handles GET /api/users/:id/activity (staff only)
func (s *Server) GetUserActivity(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanReadActivity(actor); denied != nil {
		return s.fail(c, denied)
	}

	activity, err := s.userService.GetActivity(c.Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(activity)
}

// GetUserAnalytics handles GET /api/users/:id/analytics?date_from&date_to:
// the user's like counts bucketed by UTC day, most recent day first.
func (s *Server) GetUserAnalytics(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanReadAnalytics(actor); denied != nil {
		return s.fail(c, denied)
	}

	// The target user must exist even when they have no likes.
	if _, err := s.userService.GetUserByID(c.Context(), id); err != nil {
		return s.fail(c, err)
	}

	from, perr := parseDateParam(c, "date_from", false)
	if perr != nil {
		return s.fail(c, perr)
	}
	to, perr := parseDateParam(c, "date_to", true)
	if perr != nil {
		return s.fail(c, perr)
	}

	buckets, err := s.likeService.AggregateLikesByDay(c.Context(), id, from, to)
	if err != nil {
		return s.fail(c, err)
	}

	analytics := make([]fiber.Map, 0, len(buckets))
	for _, b := range buckets {
		analytics = append(analytics, fiber.Map{
			"day":   b.Day.Format("2006-01-02"),
			"count": b.Count,
		})
	}

	return c.JSON(fiber.Map{
		"user_id":   id,
		"analytics": analytics,
	})
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.ListUserPosts(c.Context(), id, p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// parseDateParam reads an optional date query parameter, accepting either a
// bare date or a full RFC3339 timestamp. A bare date means midnight UTC; for
// an upper bound (endOfDay) it is widened to the last instant of that day so
// the bound stays inclusive. Exact timestamps pass through unchanged.
func parseDateParam(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, *models.AppError) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		t = t.UTC()
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	return nil, models.NewValidationError(
		"Invalid " + name + ": expected YYYY-MM-DD or RFC3339 timestamp")
}
