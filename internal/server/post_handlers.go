package server

import (
	"chirp/internal/authz"
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts (newest first, paginated)
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.Context(), p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), currentUserID(c), req.Text)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id, currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id (author only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.GetPost(c.Context(), id, currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessPost(actor, authz.ActionUpdate, post.AuthorID); denied != nil {
		return s.fail(c, denied)
	}

	updated, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:        id,
		Text:          req.Text,
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(updated)
}

// DeletePost handles DELETE /api/posts/:id (author only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id, 0)
	if err != nil {
		return s.fail(c, err)
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessPost(actor, authz.ActionDelete, post.AuthorID); denied != nil {
		return s.fail(c, denied)
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
