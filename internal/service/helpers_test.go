package service

import (
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	posts    repository.PostRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	images   *ImageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.OpenTestDB(t)
	cfg := &config.Config{
		ImageUploadDir:       t.TempDir(),
		ImageMaxUploadSizeMB: 1,
	}
	return &testEnv{
		db:       db,
		posts:    repository.NewPostRepository(db),
		groups:   repository.NewGroupRepository(db),
		comments: repository.NewCommentRepository(db),
		users:    repository.NewUserRepository(db),
		follows:  repository.NewFollowRepository(db),
		images:   NewImageService(cfg),
	}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, e.db.Create(group).Error)
	return group
}
