package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts. Every listing is
// newest-first; callers supply limit/offset from the shared page size.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	ListByGroupID(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroupID(ctx context.Context, groupID uint) (int64, error)
	ListByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthorID(ctx context.Context, authorID uint) (int64, error)
	ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
	CountByAuthorIDs(ctx context.Context, authorIDs []uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// Select forces group_id to be written even when cleared back to NULL.
	if err := r.db.WithContext(ctx).
		Model(post).
		Select("text", "group_id").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a post and its comments. Administrative use only; the
// comment delete is explicit so drivers without FK cascade behave the same.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, r.db.WithContext(ctx), limit, offset)
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, r.db.WithContext(ctx))
}

func (r *postRepository) ListByGroupID(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, r.db.WithContext(ctx).Where("group_id = ?", groupID), limit, offset)
}

func (r *postRepository) CountByGroupID(ctx context.Context, groupID uint) (int64, error) {
	return r.countWhere(ctx, r.db.WithContext(ctx).Where("group_id = ?", groupID))
}

func (r *postRepository) ListByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, r.db.WithContext(ctx).Where("author_id = ?", authorID), limit, offset)
}

func (r *postRepository) CountByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	return r.countWhere(ctx, r.db.WithContext(ctx).Where("author_id = ?", authorID))
}

func (r *postRepository) ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}
	return r.listWhere(ctx, r.db.WithContext(ctx).Where("author_id IN ?", authorIDs), limit, offset)
}

func (r *postRepository) CountByAuthorIDs(ctx context.Context, authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	return r.countWhere(ctx, r.db.WithContext(ctx).Where("author_id IN ?", authorIDs))
}

func (r *postRepository) listWhere(_ context.Context, tx *gorm.DB, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := tx.
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) countWhere(_ context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
