package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"blogapi/internal/errors"
	"blogapi/internal/service"
)

// UploadHandler accepts image uploads.
type UploadHandler struct {
	uploadService service.UploadService
	log           *zap.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, log: log}
}

// UploadResponse carries the public URL of an uploaded file.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload godoc
// @Summary Upload an image to the media host
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "No file uploaded",
			Code:  "VALIDATION_ERROR",
		})
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer file.Close()

	url, err := h.uploadService.Upload(c.Request().Context(), header.Filename, file)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, UploadResponse{URL: url})
}
