package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// CommentService orchestrates comment creation.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// AddCommentInput carries a submitted comment form.
type AddCommentInput struct {
	ActorID uint
	PostID  uint
	Text    string
}

// NewCommentService creates a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment validates the input and persists a comment on an existing post
// with author = actor. A missing post is Not-Found; invalid text is a
// validation failure with no state change.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	input := validation.CommentInput{Text: in.Text}
	if errs := input.Validate(); len(errs) > 0 {
		return nil, models.NewFieldValidationError(errs)
	}

	comment := &models.Comment{
		Text:     input.Text,
		PostID:   in.PostID,
		AuthorID: in.ActorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.CommentsCreated.Inc()
	return comment, nil
}
