package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FollowService manages follow edges between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from the actor to the named author. Following
// yourself or an author you already follow is a no-op, not an error. An
// unknown username is Not-Found.
func (s *FollowService) Follow(ctx context.Context, followerID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.ID == followerID {
		return author, nil
	}

	exists, err := s.followRepo.Exists(ctx, followerID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return author, nil
	}

	if err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID: followerID,
		AuthorID:   author.ID,
	}); err != nil {
		return nil, err
	}
	return author, nil
}

// Unfollow removes the actor's follow edge to the named author. A missing
// edge or unknown username is Not-Found.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, followerID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// IsFollowing reports whether follower currently follows the author.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, authorID)
}
