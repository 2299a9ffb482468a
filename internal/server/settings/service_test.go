package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

type fakeRepo struct {
	byUser map[string]*models.Settings
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUser: map[string]*models.Settings{}}
}

func (f *fakeRepo) Get(_ context.Context, userID string) (*models.Settings, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

func (f *fakeRepo) Upsert(_ context.Context, settings *models.Settings) (*models.Settings, error) {
	cp := *settings
	cp.UpdatedAt = time.Now()
	f.byUser[cp.UserID] = &cp
	return &cp, nil
}

func decode(t *testing.T, raw json.RawMessage) map[string]map[string]any {
	t.Helper()
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestGet_DefaultsForNewUser(t *testing.T) {
	service := NewService(newFakeRepo())

	raw, err := service.Get(context.Background(), "u-1")
	require.NoError(t, err)

	got := decode(t, raw)
	assert.Equal(t, "light", got["display"]["theme"])
	assert.Equal(t, "EUR", got["general"]["currency"])
	assert.Equal(t, true, got["notifications"]["email_notifications"])
}

func TestPatch_MergesOverDefaults(t *testing.T) {
	service := NewService(newFakeRepo())

	raw, err := service.Patch(context.Background(), "u-1",
		json.RawMessage(`{"display": {"theme": "dark"}}`))
	require.NoError(t, err)

	got := decode(t, raw)
	assert.Equal(t, "dark", got["display"]["theme"])
	// Untouched keys in the same section keep their defaults.
	assert.Equal(t, true, got["display"]["show_sidebar"])
	assert.Equal(t, "en", got["general"]["language"])
}

func TestPatch_SurvivesReload(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	_, err := service.Patch(context.Background(), "u-1",
		json.RawMessage(`{"general": {"currency": "USD"}}`))
	require.NoError(t, err)
	_, err = service.Patch(context.Background(), "u-1",
		json.RawMessage(`{"display": {"compact_view": true}}`))
	require.NoError(t, err)

	raw, err := service.Get(context.Background(), "u-1")
	require.NoError(t, err)

	got := decode(t, raw)
	assert.Equal(t, "USD", got["general"]["currency"])
	assert.Equal(t, true, got["display"]["compact_view"])
}

func TestPatch_RejectsUnknownSection(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Patch(context.Background(), "u-1",
		json.RawMessage(`{"experiments": {"beta": true}}`))
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestPatch_RejectsMalformedPayload(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Patch(context.Background(), "u-1", json.RawMessage(`"dark"`))
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestSettings_IsolatedPerUser(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Patch(context.Background(), "u-1",
		json.RawMessage(`{"display": {"theme": "dark"}}`))
	require.NoError(t, err)

	raw, err := service.Get(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Equal(t, "light", decode(t, raw)["display"]["theme"])
}
