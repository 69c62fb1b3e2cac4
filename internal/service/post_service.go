package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// CreatePostInput carries the fields of a new post. The author and category
// are referenced by name.
type CreatePostInput struct {
	Title        string
	Content      string
	ImageURL     string
	Username     string
	CategoryName string
}

// UpdatePostInput lists the fields to overwrite. Nil fields are left alone.
type UpdatePostInput struct {
	Title      *string
	Content    *string
	ImageURL   *string
	CategoryID *uuid.UUID
}

// ListPostsInput carries the raw listing query.
type ListPostsInput struct {
	Category  string
	Search    string
	StartDate string
	EndDate   string
}

// PostService handles post operations.
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*model.Post, error)
	List(ctx context.Context, in ListPostsInput) ([]model.PostSummary, error)
	View(ctx context.Context, id uuid.UUID) (*model.PostDetail, error)
	Update(ctx context.Context, id uuid.UUID, in UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Owner(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type postService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
) PostService {
	return &postService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

// Create resolves the author and category by name and stores the post.
func (s *postService) Create(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return nil, apperrors.Invalid("Username is required")
	case strings.TrimSpace(in.CategoryName) == "":
		return nil, apperrors.Invalid("Category name is required")
	case strings.TrimSpace(in.Title) == "":
		return nil, apperrors.Invalid("Title is required")
	case strings.TrimSpace(in.Content) == "":
		return nil, apperrors.Invalid("Content is required")
	}

	user, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	category, err := s.categoryRepo.FindByName(ctx, in.CategoryName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	post := &model.Post{
		Title:      in.Title,
		Slug:       model.Slugify(in.Title),
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		UserID:     user.ID,
		CategoryID: category.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// List filters posts. An unknown category matches nothing.
func (s *postService) List(ctx context.Context, in ListPostsInput) ([]model.PostSummary, error) {
	var filter repository.PostFilter

	if in.Category != "" {
		category, err := s.categoryRepo.FindByName(ctx, in.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []model.PostSummary{}, nil
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		filter.CategoryID = &category.ID
	}

	from, to, err := ParseDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	filter.From, filter.To = from, to
	filter.Search = strings.TrimSpace(in.Search)

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	summaries := make([]model.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, model.NewPostSummary(p))
	}
	return summaries, nil
}

// View counts one view and returns the post with its relations.
func (s *postService) View(ctx context.Context, id uuid.UUID) (*model.PostDetail, error) {
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("increment views: %w", err)
	}

	post, err := s.postRepo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	detail := model.NewPostDetail(*post)
	return &detail, nil
}

// Update overwrites the provided fields. Ownership is checked by the caller.
func (s *postService) Update(ctx context.Context, id uuid.UUID, in UpdatePostInput) (*model.Post, error) {
	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperrors.Invalid("Title cannot be empty")
		}
		fields["title"] = *in.Title
		fields["slug"] = model.Slugify(*in.Title)
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		fields["category_id"] = *in.CategoryID
	}

	if err := s.postRepo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload post: %w", err)
	}
	return post, nil
}

// Delete removes a post and its comments.
func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Owner returns the id of the user who wrote the post.
func (s *postService) Owner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	owner, err := s.postRepo.FindOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.ErrPostNotFound
		}
		return uuid.Nil, fmt.Errorf("find post owner: %w", err)
	}
	return owner, nil
}

const dateOnly = "2006-01-02"

// ParseDateRange parses the optional bounds of a createdAt filter. Both ends
// are inclusive; a date-only end covers that whole day.
func ParseDateRange(start, end string) (from, to *time.Time, err error) {
	if start != "" {
		t, _, err := parseDate(start)
		if err != nil {
			return nil, nil, apperrors.Invalid("Invalid startDate")
		}
		from = &t
	}
	if end != "" {
		t, isDateOnly, err := parseDate(end)
		if err != nil {
			return nil, nil, apperrors.Invalid("Invalid endDate")
		}
		if isDateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, apperrors.Invalid("endDate is before startDate")
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}
