package files

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studyshare/internal/domain/auth"
	"studyshare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List all shared files, newest first
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /files [get]
func (h *Handler) List(c *gin.Context) {
	assets, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch files")
		return
	}
	response.Success(c, http.StatusOK, assets)
}

// Upload godoc
// @Summary Upload a study-material file
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string true "Category"
// @Success 201 {object} map[string]interface{}
// @Failure 400,413,500 {object} map[string]interface{}
// @Router /files/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	actor, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to read upload")
		return
	}
	defer file.Close()

	asset, err := h.service.Upload(c.Request.Context(), actor, fileHeader.Filename, fileHeader.Size, file, UploadInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTitleCategoryMissing), errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to upload file")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"file_id": asset.ID})
}

// Download godoc
// @Summary Download a file by id
// @Tags Files
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /files/download/{id} [get]
func (h *Handler) Download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		return
	}

	asset, blob, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to download file")
		}
		return
	}
	defer blob.Close()

	// FormatMediaType escapes quotes and encodes non-ASCII names per
	// RFC 2231, so stored filenames cannot break the header
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": asset.FileName})
	c.DataFromReader(http.StatusOK, asset.FileSize, "application/octet-stream", blob, map[string]string{
		"Content-Disposition": disposition,
	})
}

// Delete godoc
// @Summary Delete a file (owner or admin)
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /files/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		case errors.Is(err, ErrNotFileOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete file")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "File deleted successfully"})
}
