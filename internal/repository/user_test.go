package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryGetByEmail(t *testing.T) {
	t.Parallel()
	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "pushkin")

	user, err := repo.GetByEmail(ctx, "pushkin@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "pushkin", user.Username)

	// A miss is not an error; signup uses this as an existence probe.
	user, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryGetByUsername(t *testing.T) {
	t.Parallel()
	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "pushkin")

	user, err := repo.GetByUsername(ctx, "pushkin")
	require.NoError(t, err)
	assert.Equal(t, "pushkin", user.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	t.Parallel()
	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "pushkin")

	err := repo.Create(ctx, &models.User{
		Username: "pushkin",
		Email:    "other@example.com",
		Password: "not-a-real-hash",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestGroupRepositoryLookups(t *testing.T) {
	t.Parallel()
	db := testutil.OpenTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	group := seedGroup(t, db, "poetry")

	got, err := repo.GetBySlug(ctx, "poetry")
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)

	_, err = repo.GetBySlug(ctx, "missing")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	ok, err := repo.Exists(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, group.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommentRepositoryListOrder(t *testing.T) {
	t.Parallel()
	db := testutil.OpenTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "critic")
	post := &models.Post{Text: "debated", AuthorID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, comments.Create(ctx, &models.Comment{Text: text, PostID: post.ID, AuthorID: author.ID}))
	}

	list, err := comments.ListByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "third", list[2].Text)
	assert.Equal(t, "critic", list[0].Author.Username)

	n, err := comments.CountByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
