package server

import (
	"github.com/gofiber/fiber/v2"
)

// Follow handles /profile/:username/follow/. Creates the follow edge unless
// the target is the actor themselves or already followed — both no-ops. The
// actor lands back on the target's profile either way.
func (s *Server) Follow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	author, err := s.followService.Follow(ctx, userID, c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusSeeOther)
}

// Unfollow handles /profile/:username/unfollow/. Removing an edge that does
// not exist is Not-Found.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	author, err := s.followService.Unfollow(ctx, userID, c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusSeeOther)
}
