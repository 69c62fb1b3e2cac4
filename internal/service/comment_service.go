package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// CreateCommentInput carries a new comment.
type CreateCommentInput struct {
	UserID  uuid.UUID
	PostID  uuid.UUID
	Content string
}

// CommentService handles comment operations.
type CommentService interface {
	Create(ctx context.Context, in CreateCommentInput) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// Create stores a comment after checking that its post and author exist.
func (s *commentService) Create(ctx context.Context, in CreateCommentInput) (*model.Comment, error) {
	if in.UserID == uuid.Nil || in.PostID == uuid.Nil || strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.Invalid("Missing required fields")
	}

	if _, err := s.postRepo.FindByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	comment := &model.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}
