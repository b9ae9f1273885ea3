package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"
	"stockmaster_backend/pkg/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CompanyName string `json:"company_name"`
}

// UpdateProfileRequest DTO
type UpdateProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	CompanyName *string `json:"company_name"`
}

// AuthResponse DTO
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// PictureUpload is an incoming profile picture.
type PictureUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// PictureStore persists uploaded pictures and returns their public path.
type PictureStore interface {
	Save(prefix, ext string, r io.Reader) (string, error)
	Remove(publicPath string) error
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID int64, email, role string) (string, error)
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest, ip string) (*AuthResponse, error)
	LoginUser(ctx context.Context, req LoginRequest, ip string) (*AuthResponse, error)
	GetUserProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest, actor models.Actor) (*models.User, error)
	UploadProfilePicture(ctx context.Context, upload PictureUpload, actor models.Actor) (*models.User, error)
	RemoveProfilePicture(ctx context.Context, actor models.Actor) (*models.User, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo       repositories.AuthRepository
	tokens         TokenIssuer
	pictures       PictureStore
	maxUploadBytes int64
	audit          AuditRecorder
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, tokens TokenIssuer, pictures PictureStore, maxUploadBytes int64, audit AuditRecorder) AuthService {
	return &authService{
		authRepo:       authRepo,
		tokens:         tokens,
		pictures:       pictures,
		maxUploadBytes: maxUploadBytes,
		audit:          audit,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser handles the business logic for user registration.
func (s *authService) RegisterUser(ctx context.Context, req RegisterUserRequest, ip string) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, validationError("name, email, and password are required")
	}
	if !utils.IsValidEmail(email) {
		return nil, validationError("email is not valid")
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return nil, validationError("password must be at least %d characters", minPasswordLength)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
		CompanyName:  strings.TrimSpace(req.CompanyName),
	}
	if _, err := s.authRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	// Fetch the user again to get all details, including the ones set by DB
	registered, err := s.authRepo.FindUserByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("user registered but failed to retrieve full details: %w", err)
	}
	registered.PasswordHash = "" // Ensure hash is not returned

	token, err := s.tokens.GenerateAccessToken(registered.ID, registered.Email, registered.Role)
	if err != nil {
		return nil, err
	}

	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityUserRegistered,
		Description: fmt.Sprintf("New user registered: %s (%s)", registered.Name, registered.Email),
		Actor:       models.Actor{UserID: registered.ID, IPAddress: ip},
	})

	return &AuthResponse{Message: "User created successfully", Token: token, User: registered}, nil
}

// LoginUser handles user login and token generation.
func (s *authService) LoginUser(ctx context.Context, req LoginRequest, ip string) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, validationError("email and password are required")
	}

	user, err := s.authRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	// err is bcrypt.ErrMismatchedHashAndPassword for wrong password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityUserLogin,
		Description: "User logged in successfully",
		Actor:       models.Actor{UserID: user.ID, IPAddress: ip},
	})

	user.PasswordHash = "" // Ensure hash is not returned
	return &AuthResponse{Message: "Login successful", Token: token, User: user}, nil
}

// GetUserProfile retrieves a user's profile.
func (s *authService) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, req UpdateProfileRequest, actor models.Actor) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, validationError("name and email are required")
	}
	if !utils.IsValidEmail(email) {
		return nil, validationError("email is not valid")
	}

	if err := s.authRepo.UpdateProfile(ctx, actor.UserID, name, email, strings.TrimSpace(utils.Deref(req.CompanyName))); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrEmailExists
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityProfileUpdated,
		Description: "Updated profile information",
		Actor:       actor,
	})
	return s.GetUserProfile(ctx, actor.UserID)
}

func (s *authService) UploadProfilePicture(ctx context.Context, upload PictureUpload, actor models.Actor) (*models.User, error) {
	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return nil, ErrInvalidImage
	}
	if s.maxUploadBytes > 0 && upload.Size > s.maxUploadBytes {
		return nil, ErrImageTooLarge
	}

	current, err := s.GetUserProfile(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	publicPath, err := s.pictures.Save("profile", filepath.Ext(upload.Filename), upload.Content)
	if err != nil {
		return nil, err
	}
	if err := s.authRepo.SetProfilePicture(ctx, actor.UserID, &publicPath); err != nil {
		s.removePicture(publicPath)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save profile picture: %w", err)
	}
	if current.ProfilePicture != nil {
		s.removePicture(*current.ProfilePicture)
	}

	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityProfileUpdated,
		Description: "Updated profile picture",
		Actor:       actor,
	})
	return s.GetUserProfile(ctx, actor.UserID)
}

func (s *authService) RemoveProfilePicture(ctx context.Context, actor models.Actor) (*models.User, error) {
	current, err := s.GetUserProfile(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.authRepo.SetProfilePicture(ctx, actor.UserID, nil); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to remove profile picture: %w", err)
	}
	if current.ProfilePicture != nil {
		s.removePicture(*current.ProfilePicture)
	}

	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityProfileUpdated,
		Description: "Removed profile picture",
		Actor:       actor,
	})
	return s.GetUserProfile(ctx, actor.UserID)
}

func (s *authService) removePicture(publicPath string) {
	if err := s.pictures.Remove(publicPath); err != nil {
		log.Warn().Err(err).Str("path", publicPath).Msg("Failed to remove profile picture file")
	}
}
