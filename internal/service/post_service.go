package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService orchestrates post creation and editing: validate first, then
// persist, never the other way around.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	images    *ImageService
}

// CreatePostInput carries the fields of a submitted post form.
type CreatePostInput struct {
	AuthorID uint
	Text     string
	GroupID  *uint
	Image    []byte
}

// UpdatePostInput carries the fields of a submitted edit form. The image is
// not part of the edit flow.
type UpdatePostInput struct {
	ActorID uint
	PostID  uint
	Text    string
	GroupID *uint
}

// NewPostService creates a PostService.
func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	images *ImageService,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		images:    images,
	}
}

func (s *PostService) groupExists(ctx context.Context) func(id uint) bool {
	return func(id uint) bool {
		ok, err := s.groupRepo.Exists(ctx, id)
		return err == nil && ok
	}
}

// CreatePost validates the input and persists a new post owned by the actor.
// On validation failure nothing is persisted, including the image attachment.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	input := validation.PostInput{
		Text:    in.Text,
		GroupID: in.GroupID,
		Image:   in.Image,
	}
	if errs := input.Validate(s.groupExists(ctx)); len(errs) > 0 {
		return nil, models.NewFieldValidationError(errs)
	}

	imagePath := ""
	if len(in.Image) > 0 {
		path, err := s.images.Save(in.Image)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	post := &models.Post{
		Text:     input.Text,
		AuthorID: in.AuthorID,
		GroupID:  input.GroupID,
		Image:    imagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost validates the input and updates the post's text and group.
// Only the author may edit their post.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.ActorID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	input := validation.PostInput{
		Text:    in.Text,
		GroupID: in.GroupID,
	}
	if errs := input.Validate(s.groupExists(ctx)); len(errs) > 0 {
		return nil, models.NewFieldValidationError(errs)
	}

	post.Text = input.Text
	post.GroupID = input.GroupID
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}
