package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ProfilePage is the result of an author's profile view. Following is only
// meaningful when the viewer is authenticated.
type ProfilePage struct {
	Author    *models.User   `json:"author"`
	Posts     []*models.Post `json:"posts"`
	PostCount int64          `json:"post_count"`
	Following bool           `json:"following"`
	Meta      PageMeta       `json:"meta"`
}

// Profile handles GET /profile/:username/.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.Context()

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	pageNum := parsePage(c)
	limit, offset := s.pageWindow(pageNum)

	posts, err := s.postRepo.ListByAuthorID(ctx, author.ID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	total, err := s.postRepo.CountByAuthorID(ctx, author.ID)
	if err != nil {
		return respondError(c, err)
	}

	following := false
	if viewerID := currentUserID(c); viewerID != 0 {
		following, err = s.followService.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return respondError(c, err)
		}
	}

	return c.JSON(ProfilePage{
		Author:    author,
		Posts:     posts,
		PostCount: total,
		Following: following,
		Meta:      s.pageMeta(pageNum, total),
	})
}
