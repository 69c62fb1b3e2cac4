package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
	"blogapi/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
	log            *zap.Logger
	enforce        bool
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService, log *zap.Logger, enforceOwnership bool) *CommentHandler {
	return &CommentHandler{commentService: commentService, log: log, enforce: enforceOwnership}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	PostID  string `json:"postId" validate:"required"`
	UserID  string `json:"userId"`
	Content string `json:"content" validate:"required"`
}

// CreateComment godoc
// @Summary Comment on a post
// @Description The author is the session user when ownership is enforced, otherwise the given userId.
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req CreateCommentRequest
	if err := bindAndValidate(c, &req, "Missing required fields"); err != nil {
		return err
	}

	userID, err := h.actingUserID(c, req.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return respondError(c, h.log, errors.ErrPostNotFound)
	}

	comment, err := h.commentService.Create(c.Request().Context(), service.CreateCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) actingUserID(c echo.Context, declared string) (uuid.UUID, error) {
	if !h.enforce {
		if declared == "" {
			return uuid.Nil, errors.Invalid("Missing required fields")
		}
		id, err := uuid.Parse(declared)
		if err != nil {
			return uuid.Nil, errors.ErrUserNotFound
		}
		return id, nil
	}

	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return uuid.Nil, errors.ErrUnauthorized
	}
	if declared != "" && declared != claims.UserID.String() {
		return uuid.Nil, errors.ErrForbidden
	}
	return claims.UserID, nil
}
