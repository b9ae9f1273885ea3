package handlers

import (
	"errors"
	"net/http"

	"stockmaster_backend/internal/services"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const profilePictureField = "profile_picture"

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService    services.AuthService
	maxUploadBytes int64
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService, maxUploadBytes int64) *AuthHandler {
	return &AuthHandler{authService: as, maxUploadBytes: maxUploadBytes}
}

// RegisterUser handles user registration.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.RegisterUser(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondServiceError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginUser(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondServiceError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetUserProfile(c.Request.Context(), currentActor(c).UserID)
	if err != nil {
		respondServiceError(c, err, "Error fetching profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), req, currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Profile update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// UploadProfilePicture accepts a multipart image in the profile_picture field.
func (h *AuthHandler) UploadProfilePicture(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		// leave room for the multipart envelope; the service checks the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}

	fileHeader, err := c.FormFile(profilePictureField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondServiceError(c, services.ErrImageTooLarge, "")
			return
		}
		utils.RespondValidationFailed(c, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondServiceError(c, err, "Error uploading profile picture")
		return
	}
	defer file.Close()

	user, err := h.authService.UploadProfilePicture(c.Request.Context(), services.PictureUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}, currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Error uploading profile picture")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile picture uploaded successfully", "user": user})
}

func (h *AuthHandler) RemoveProfilePicture(c *gin.Context) {
	user, err := h.authService.RemoveProfilePicture(c.Request.Context(), currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Error removing profile picture")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile picture removed successfully", "user": user})
}
