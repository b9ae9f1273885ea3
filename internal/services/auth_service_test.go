package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	users    *fakeAuthRepo
	pictures *fakePictureStore
	audit    *fakeAudit
	tokens   *utils.TokenManager
	svc      AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeAuthRepo(),
		pictures: &fakePictureStore{},
		audit:    &fakeAudit{},
		tokens:   utils.NewTokenManager("test-secret", time.Hour),
	}
	f.svc = NewAuthService(f.users, f.tokens, f.pictures, 1024, f.audit)
	return f
}

func (f *authFixture) register(t *testing.T) *AuthResponse {
	t.Helper()
	res, err := f.svc.RegisterUser(context.Background(), RegisterUserRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret1",
	}, "10.0.0.2")
	require.NoError(t, err)
	return res
}

func TestRegisterUser(t *testing.T) {
	f := newAuthFixture()
	res := f.register(t)

	assert.Equal(t, "User created successfully", res.Message)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.Empty(t, res.User.PasswordHash)
	assert.NotEqual(t, "secret1", f.users.users[res.User.ID].PasswordHash)

	claims, err := f.tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	act := f.audit.activities()[0]
	assert.Equal(t, models.ActivityUserRegistered, act.Type)
	assert.Equal(t, "New user registered: Ada (ada@example.com)", act.Description)
	assert.Equal(t, models.Actor{UserID: res.User.ID, IPAddress: "10.0.0.2"}, act.Actor)
}

func TestRegisterUser_Rejections(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.svc.RegisterUser(context.Background(), RegisterUserRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, "")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = f.svc.RegisterUser(context.Background(), RegisterUserRequest{Name: "Bob", Email: "bob@example.com", Password: "123"}, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.RegisterUser(context.Background(), RegisterUserRequest{Name: "Bob", Email: "not-an-email", Password: "secret1"}, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginUser(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	res, err := f.svc.LoginUser(context.Background(), LoginRequest{Email: " ADA@example.com", Password: "secret1"}, "10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", res.Message)
	assert.Empty(t, res.User.PasswordHash)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.ActivityUserLogin, f.audit.activities()[1].Type)

	_, err = f.svc.LoginUser(context.Background(), LoginRequest{Email: "ada@example.com", Password: "wrong-pass"}, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.LoginUser(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret1"}, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture()
	ada := f.register(t).User
	_, err := f.svc.RegisterUser(context.Background(), RegisterUserRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"}, "")
	require.NoError(t, err)

	actor := models.Actor{UserID: ada.ID}
	got, err := f.svc.UpdateProfile(context.Background(), UpdateProfileRequest{Name: "Ada L", Email: "ada@example.com", CompanyName: ptr("Engines")}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Ada L", got.Name)
	assert.Equal(t, "Engines", got.CompanyName)

	_, err = f.svc.UpdateProfile(context.Background(), UpdateProfileRequest{Name: "Ada", Email: "bob@example.com"}, actor)
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = f.svc.UpdateProfile(context.Background(), UpdateProfileRequest{Name: "Ghost", Email: "ghost@example.com"}, models.Actor{UserID: 999})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfilePicture_UploadReplaceRemove(t *testing.T) {
	f := newAuthFixture()
	actor := models.Actor{UserID: f.register(t).User.ID}

	upload := func(name string) (*models.User, error) {
		return f.svc.UploadProfilePicture(context.Background(), PictureUpload{
			Filename:    name,
			ContentType: "image/png",
			Size:        4,
			Content:     strings.NewReader("data"),
		}, actor)
	}

	first, err := upload("me.PNG")
	require.NoError(t, err)
	require.NotNil(t, first.ProfilePicture)
	assert.True(t, strings.HasSuffix(*first.ProfilePicture, ".PNG"))

	second, err := upload("me2.png")
	require.NoError(t, err)
	assert.NotEqual(t, *first.ProfilePicture, *second.ProfilePicture)
	assert.Equal(t, []string{*first.ProfilePicture}, f.pictures.removed)

	cleared, err := f.svc.RemoveProfilePicture(context.Background(), actor)
	require.NoError(t, err)
	assert.Nil(t, cleared.ProfilePicture)
	assert.Equal(t, *second.ProfilePicture, f.pictures.removed[1])
}

func TestProfilePicture_Rejections(t *testing.T) {
	f := newAuthFixture()
	actor := models.Actor{UserID: f.register(t).User.ID}

	_, err := f.svc.UploadProfilePicture(context.Background(), PictureUpload{
		Filename: "notes.txt", ContentType: "text/plain", Size: 4, Content: strings.NewReader("data"),
	}, actor)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = f.svc.UploadProfilePicture(context.Background(), PictureUpload{
		Filename: "big.jpg", ContentType: "image/jpeg", Size: 4096, Content: strings.NewReader("data"),
	}, actor)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	assert.Empty(t, f.pictures.saved)
}
