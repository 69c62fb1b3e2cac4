package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
	"blogapi/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
	log         *zap.Logger
	// enforce takes the author from the session instead of the request body.
	enforce bool
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService, log *zap.Logger, enforceOwnership bool) *PostHandler {
	return &PostHandler{postService: postService, log: log, enforce: enforceOwnership}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title        string `json:"title" validate:"required"`
	Content      string `json:"content" validate:"required"`
	ImageURL     string `json:"imageUrl"`
	Username     string `json:"username"`
	CategoryName string `json:"categoryName" validate:"required"`
}

// UpdatePostRequest represents a partial post update. Omitted fields are kept.
type UpdatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"imageUrl"`
	CategoryID *string `json:"categoryId"`
}

// CreatePost godoc
// @Summary Create a post
// @Description The author is the session user when ownership is enforced, otherwise the given username.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := bindAndValidate(c, &req, "Missing required fields"); err != nil {
		return err
	}

	username, err := h.actingUsername(c, req.Username)
	if err != nil {
		return respondError(c, h.log, err)
	}

	post, err := h.postService.Create(c.Request().Context(), service.CreatePostInput{
		Title:        req.Title,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		Username:     username,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param category query string false "Category name"
// @Param search query string false "Substring of title or content"
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} model.PostSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context(), service.ListPostsInput{
		Category:  c.QueryParam("category"),
		Search:    c.QueryParam("search"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get a post
// @Description Counts one view and returns the post with author, category and comments.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.PostDetail
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := PostIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	post, err := h.postService.View(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to overwrite"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := PostIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	in := service.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return respondError(c, h.log, errors.ErrCategoryNotFound)
		}
		in.CategoryID = &categoryID
	}

	post, err := h.postService.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post and its comments
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := PostIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.postService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}

// OwnerOf resolves the author of the post named by :id for the owner policy.
func (h *PostHandler) OwnerOf(ctx context.Context, c echo.Context) (uuid.UUID, error) {
	id, err := PostIDParam(c)
	if err != nil {
		return uuid.Nil, err
	}
	return h.postService.Owner(ctx, id)
}

func (h *PostHandler) actingUsername(c echo.Context, declared string) (string, error) {
	if !h.enforce {
		return declared, nil
	}
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return "", errors.ErrUnauthorized
	}
	if declared != "" && declared != claims.Username {
		return "", errors.ErrForbidden
	}
	return claims.Username, nil
}
