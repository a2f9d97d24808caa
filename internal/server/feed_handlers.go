package server

import (
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FeedPage is the result of the index feed: the most recent posts across all
// authors, newest first.
type FeedPage struct {
	Posts []*models.Post `json:"posts"`
	Meta  PageMeta       `json:"meta"`
}

// GroupFeedPage is the result of a group's feed.
type GroupFeedPage struct {
	Group *models.Group  `json:"group"`
	Posts []*models.Post `json:"posts"`
	Meta  PageMeta       `json:"meta"`
}

// Feed handles GET /. The whole result is cached per route+query with a
// bounded TTL; within that window readers may observe stale content, which
// is the accepted trade-off for the hottest page.
func (s *Server) Feed(c *fiber.Ctx) error {
	ctx := c.Context()
	rawQuery := string(c.Request().URI().QueryString())

	var page FeedPage
	if cache.GetPage(ctx, c.Path(), rawQuery, &page) {
		return c.JSON(page)
	}

	pageNum := parsePage(c)
	limit, offset := s.pageWindow(pageNum)

	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return respondError(c, err)
	}

	page = FeedPage{Posts: posts, Meta: s.pageMeta(pageNum, total)}
	cache.SetPage(ctx, c.Path(), rawQuery, page, time.Duration(s.config.FeedCacheTTLSeconds)*time.Second)

	return c.JSON(page)
}

// GroupFeed handles GET /group/:slug/.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	ctx := c.Context()

	group, err := s.groupRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	pageNum := parsePage(c)
	limit, offset := s.pageWindow(pageNum)

	posts, err := s.postRepo.ListByGroupID(ctx, group.ID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	total, err := s.postRepo.CountByGroupID(ctx, group.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(GroupFeedPage{
		Group: group,
		Posts: posts,
		Meta:  s.pageMeta(pageNum, total),
	})
}

// FollowFeed handles GET /follow/: posts authored by anyone the actor
// follows, newest first.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	authorIDs, err := s.followRepo.ListAuthorIDs(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	pageNum := parsePage(c)
	limit, offset := s.pageWindow(pageNum)

	posts, err := s.postRepo.ListByAuthorIDs(ctx, authorIDs, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	total, err := s.postRepo.CountByAuthorIDs(ctx, authorIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(FeedPage{Posts: posts, Meta: s.pageMeta(pageNum, total)})
}
