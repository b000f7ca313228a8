package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyshare/internal/config"
	"studyshare/internal/domain/auth"
	"studyshare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get godoc
// @Summary Get the acting user's profile with stats and badges
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/profile [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	overview, err := h.service.Get(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch profile")
		return
	}

	response.Success(c, http.StatusOK, overview)
}

// SetImage godoc
// @Summary Upload a profile image (max 5MB, image types only)
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param profileImage formData file true "Profile image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /users/profile-image [post]
func (h *Handler) SetImage(c *gin.Context) {
	actor, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("profileImage")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No image uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to read upload")
		return
	}
	defer file.Close()

	filename, err := h.service.SetImage(
		c.Request.Context(),
		actor,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		config.ProfileImageMaxSize,
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoImage), errors.Is(err, ErrNotAnImage), errors.Is(err, ErrImageTooLarge):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to upload profile image")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Profile image updated successfully",
		"filename": filename,
	})
}
