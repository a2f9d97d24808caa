package server

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followCount(t *testing.T, h *harness) int64 {
	t.Helper()
	var count int64
	require.NoError(t, h.db.Model(&models.Follow{}).Count(&count).Error)
	return count
}

func TestFollowAndUnfollow(t *testing.T) {
	h := newHarness(t)

	reader := h.user("reader")
	h.user("writer")
	token := h.token(reader.ID)

	resp := h.postForm("/profile/writer/follow/", token, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/writer/", resp.Header.Get("Location"))
	assert.Equal(t, int64(1), followCount(t, h))

	// Following again is a no-op, same redirect.
	resp = h.postForm("/profile/writer/follow/", token, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, int64(1), followCount(t, h))

	resp = h.postForm("/profile/writer/unfollow/", token, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/writer/", resp.Header.Get("Location"))
	assert.Zero(t, followCount(t, h))

	// The edge is gone; unfollowing again is Not-Found.
	resp = h.postForm("/profile/writer/unfollow/", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFollowSelfIsNoOp(t *testing.T) {
	h := newHarness(t)

	reader := h.user("reader")
	resp := h.postForm("/profile/reader/follow/", h.token(reader.ID), nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Zero(t, followCount(t, h))
}

func TestFollowUnknownUsername(t *testing.T) {
	h := newHarness(t)

	reader := h.user("reader")
	resp := h.postForm("/profile/ghost/follow/", h.token(reader.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFollowRequiresLogin(t *testing.T) {
	h := newHarness(t)

	h.user("writer")
	resp := h.postForm("/profile/writer/follow/", "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login/", resp.Header.Get("Location"))
}

func TestProfile(t *testing.T) {
	h := newHarness(t)

	author := h.user("writer")
	reader := h.user("reader")
	now := time.Now()
	h.post(author.ID, "one", now)
	h.post(author.ID, "two", now.Add(time.Minute))

	resp := h.get("/profile/writer/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page ProfilePage
	decodeBody(t, resp, &page)
	assert.Equal(t, "writer", page.Author.Username)
	assert.Equal(t, int64(2), page.PostCount)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "two", page.Posts[0].Text)
	assert.False(t, page.Following)

	token := h.token(reader.ID)
	resp = h.postForm("/profile/writer/follow/", token, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = h.get("/profile/writer/", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.True(t, page.Following)
}

func TestProfileUnknownUsername(t *testing.T) {
	h := newHarness(t)

	resp := h.get("/profile/ghost/", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
