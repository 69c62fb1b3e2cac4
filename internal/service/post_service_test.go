package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

type postMocks struct {
	posts      *MockPostRepository
	users      *MockUserRepository
	categories *MockCategoryRepository
}

func newPostService() (PostService, postMocks) {
	m := postMocks{
		posts:      new(MockPostRepository),
		users:      new(MockUserRepository),
		categories: new(MockCategoryRepository),
	}
	return NewPostService(m.posts, m.users, m.categories), m
}

func (m postMocks) assert(t *testing.T) {
	m.posts.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.categories.AssertExpectations(t)
}

func TestPostService_Create(t *testing.T) {
	author := &model.User{ID: uuid.New(), Username: "a"}
	tech := &model.Category{ID: uuid.New(), Name: "Technology"}
	valid := CreatePostInput{Title: "Hello  World Go", Content: "c", Username: "a", CategoryName: "Technology"}

	tests := []struct {
		name          string
		input         CreatePostInput
		setupMock     func(postMocks)
		expectedError error
	}{
		{
			name:  "successful creation",
			input: valid,
			setupMock: func(m postMocks) {
				m.users.On("FindByUsername", mock.Anything, "a").Return(author, nil)
				m.categories.On("FindByName", mock.Anything, "Technology").Return(tech, nil)
				m.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
					return p.Slug == "hello-world-go" && p.UserID == author.ID && p.CategoryID == tech.ID
				})).Return(nil)
			},
		},
		{
			name:          "missing username",
			input:         CreatePostInput{Title: "t", Content: "c", CategoryName: "Technology"},
			setupMock:     func(postMocks) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "missing title",
			input:         CreatePostInput{Content: "c", Username: "a", CategoryName: "Technology"},
			setupMock:     func(postMocks) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:  "unknown user",
			input: valid,
			setupMock: func(m postMocks) {
				m.users.On("FindByUsername", mock.Anything, "a").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:  "unknown category",
			input: valid,
			setupMock: func(m postMocks) {
				m.users.On("FindByUsername", mock.Anything, "a").Return(author, nil)
				m.categories.On("FindByName", mock.Anything, "Technology").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPostService()
			tt.setupMock(m)

			post, err := svc.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input.Title, post.Title)
			}
			m.assert(t)
		})
	}
}

func TestPostService_ListUnknownCategoryIsEmpty(t *testing.T) {
	svc, m := newPostService()
	m.categories.On("FindByName", mock.Anything, "Technology").Return(nil, gorm.ErrRecordNotFound)

	posts, err := svc.List(context.Background(), ListPostsInput{Category: "Technology"})

	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	m.posts.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestPostService_ListBuildsFilter(t *testing.T) {
	svc, m := newPostService()
	tech := &model.Category{ID: uuid.New(), Name: "Technology"}
	author := model.User{ID: uuid.New(), Username: "a", PasswordHash: "secret"}
	m.categories.On("FindByName", mock.Anything, "Technology").Return(tech, nil)
	m.posts.On("List", mock.Anything, mock.MatchedBy(func(f repository.PostFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == tech.ID &&
			f.Search == "go" &&
			f.From != nil && f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To != nil && f.To.Equal(time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC))
	})).Return([]model.Post{{ID: uuid.New(), Title: "Go", UserID: author.ID, User: author, CategoryID: tech.ID, Category: *tech}}, nil)

	posts, err := svc.List(context.Background(), ListPostsInput{
		Category:  "Technology",
		Search:    " go ",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})

	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].User)
	assert.Equal(t, "a", posts[0].User.Username)
	assert.Equal(t, "Technology", posts[0].Category.Name)
	m.assert(t)
}

func TestPostService_ListInvalidDate(t *testing.T) {
	svc, m := newPostService()

	_, err := svc.List(context.Background(), ListPostsInput{StartDate: "yesterday"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	m.assert(t)
}

func TestPostService_View(t *testing.T) {
	id := uuid.New()

	t.Run("increments before reading", func(t *testing.T) {
		svc, m := newPostService()
		m.posts.On("IncrementViews", mock.Anything, id).Return(nil).Once()
		m.posts.On("FindDetail", mock.Anything, id).Return(&model.Post{ID: id, Views: 1}, nil).Once()

		detail, err := svc.View(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, int64(1), detail.Views)
		assert.NotNil(t, detail.Comments)
		m.assert(t)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, m := newPostService()
		m.posts.On("IncrementViews", mock.Anything, id).Return(gorm.ErrRecordNotFound)

		_, err := svc.View(context.Background(), id)

		assert.Equal(t, apperrors.ErrPostNotFound, err)
		m.posts.AssertNotCalled(t, "FindDetail", mock.Anything, mock.Anything)
	})
}

func TestPostService_Update(t *testing.T) {
	id := uuid.New()
	title := "Brand New Title"
	empty := " "
	missingCategory := uuid.New()

	t.Run("title recomputes slug", func(t *testing.T) {
		svc, m := newPostService()
		m.posts.On("FindByID", mock.Anything, id).Return(&model.Post{ID: id, Title: title, Slug: "brand-new-title"}, nil).Twice()
		m.posts.On("Update", mock.Anything, id, map[string]interface{}{
			"title": title,
			"slug":  "brand-new-title",
		}).Return(nil)

		post, err := svc.Update(context.Background(), id, UpdatePostInput{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, title, post.Title)
		m.assert(t)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, m := newPostService()
		m.posts.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(context.Background(), id, UpdatePostInput{Title: &title})

		assert.Equal(t, apperrors.ErrPostNotFound, err)
	})

	t.Run("blank title", func(t *testing.T) {
		svc, m := newPostService()
		m.posts.On("FindByID", mock.Anything, id).Return(&model.Post{ID: id}, nil)

		_, err := svc.Update(context.Background(), id, UpdatePostInput{Title: &empty})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		m.posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, m := newPostService()
		m.posts.On("FindByID", mock.Anything, id).Return(&model.Post{ID: id}, nil)
		m.categories.On("FindByID", mock.Anything, missingCategory).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(context.Background(), id, UpdatePostInput{CategoryID: &missingCategory})

		assert.Equal(t, apperrors.ErrCategoryNotFound, err)
	})
}

func TestPostService_DeleteAndOwner(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	svc, m := newPostService()
	m.posts.On("Delete", mock.Anything, id).Return(nil).Once()
	m.posts.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound).Once()
	m.posts.On("FindOwner", mock.Anything, id).Return(owner, nil).Once()
	m.posts.On("FindOwner", mock.Anything, id).Return(uuid.Nil, errors.New("boom")).Once()

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, apperrors.ErrPostNotFound, svc.Delete(context.Background(), id))

	got, err := svc.Owner(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	_, err = svc.Owner(context.Background(), id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrPostNotFound)
	m.assert(t)
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		from    *time.Time
		to      *time.Time
		wantErr bool
	}{
		{name: "empty"},
		{
			name:  "date only end covers the day",
			start: "2024-02-01",
			end:   "2024-02-01",
			from:  ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
			to:    ptr(time.Date(2024, 2, 1, 23, 59, 59, 999999999, time.UTC)),
		},
		{
			name:  "timestamps are normalized to UTC",
			start: "2024-02-01T10:00:00+02:00",
			from:  ptr(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)),
		},
		{name: "unparseable", end: "02/01/2024", wantErr: true},
		{name: "inverted", start: "2024-03-01", end: "2024-02-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseDateRange(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }
