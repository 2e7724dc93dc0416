package server

import (
	"chirp/internal/authz"

	"github.com/gofiber/fiber/v2"
)

const (
	likeStateLiked    = "Liked"
	likeStateNotLiked = "Not liked"
)

// GetLikeState handles GET /api/posts/:id/like
func (s *Server) GetLikeState(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessLike(actor, currentUserID(c)); denied != nil {
		return s.fail(c, denied)
	}

	liked, err := s.likeService.GetLikeState(c.Context(), currentUserID(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	state := likeStateNotLiked
	if liked {
		state = likeStateLiked
	}
	return c.JSON(fiber.Map{"status": state})
}

// LikePost handles PUT /api/posts/:id/like. Liking twice is not an error.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessLike(actor, currentUserID(c)); denied != nil {
		return s.fail(c, denied)
	}

	if err := s.likeService.SetLiked(c.Context(), currentUserID(c), id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": likeStateLiked})
}

// UnlikePost handles DELETE /api/posts/:id/like. Removing an absent like
// still returns 200.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	actor, err := s.currentActor(c)
	if err != nil {
		return s.fail(c, err)
	}
	if denied := authz.CanAccessLike(actor, currentUserID(c)); denied != nil {
		return s.fail(c, denied)
	}

	if err := s.likeService.UnsetLiked(c.Context(), currentUserID(c), id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": likeStateNotLiked})
}
