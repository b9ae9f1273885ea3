package services

import (
	"context"
	"testing"

	"stockmaster_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettings_CreatesDefaultsOnce(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo, &fakeAudit{})

	first, err := svc.GetSettings(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, first.Theme)
	assert.Equal(t, 10, first.ItemsPerPage)

	_, err = svc.GetSettings(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates)
}

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	repo := newFakeSettingsRepo()
	audit := &fakeAudit{}
	svc := NewSettingsService(repo, audit)
	actor := models.Actor{UserID: 9}

	got, err := svc.UpdateSettings(context.Background(), UpdateSettingsRequest{
		Theme:        ptr("Dark"),
		ItemsPerPage: ptr(25),
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, got.Theme)
	assert.Equal(t, 25, got.ItemsPerPage)
	assert.Equal(t, "en", got.Language, "untouched fields keep their value")
	assert.Equal(t, 30, repo.rows[9].RefreshInterval)

	act := audit.activities()[0]
	assert.Equal(t, models.ActivitySettingsUpdated, act.Type)
	assert.Equal(t, models.Metadata{"theme": "dark", "items_per_page": 25}, act.Metadata)
}

func TestUpdateSettings_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  UpdateSettingsRequest
	}{
		{"theme", UpdateSettingsRequest{Theme: ptr("neon")}},
		{"view", UpdateSettingsRequest{DefaultView: ptr("kanban")}},
		{"language", UpdateSettingsRequest{Language: ptr(" ")}},
		{"items per page", UpdateSettingsRequest{ItemsPerPage: ptr(0)}},
		{"threshold", UpdateSettingsRequest{LowStockThreshold: ptr(-1)}},
		{"refresh interval", UpdateSettingsRequest{RefreshInterval: ptr(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSettingsRepo()
			audit := &fakeAudit{}
			svc := NewSettingsService(repo, audit)

			_, err := svc.UpdateSettings(context.Background(), tt.req, models.Actor{UserID: 1})
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, audit.events)
			assert.Equal(t, models.DefaultUserSettings(1).Theme, repo.rows[1].Theme)
		})
	}
}
