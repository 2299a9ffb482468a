package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

// defaultSettings is what a user sees before saving anything.
var defaultSettings = json.RawMessage(`{
	"general": {
		"language": "en",
		"timezone": "UTC",
		"date_format": "YYYY-MM-DD",
		"currency": "EUR"
	},
	"notifications": {
		"email_notifications": true,
		"push_notifications": false,
		"sms_notifications": false,
		"weekly_reports": true,
		"inventory_alerts": true,
		"sales_alerts": true,
		"system_updates": false
	},
	"security": {
		"two_factor_auth": false,
		"session_timeout": "30",
		"password_expiry": "90"
	},
	"display": {
		"theme": "light",
		"compact_view": false,
		"show_sidebar": true,
		"items_per_page": "20"
	}
}`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's settings with defaults filling any section the
// user never saved.
func (s *Service) Get(ctx context.Context, userID string) (json.RawMessage, error) {
	stored, err := s.repo.Get(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return defaultSettings, nil
	}
	if err != nil {
		return nil, err
	}
	return mergeSections(defaultSettings, stored.Data)
}

// Patch merges the incoming sections over the current settings and stores
// the result. Unknown top-level sections are rejected.
func (s *Service) Patch(ctx context.Context, userID string, patch json.RawMessage) (json.RawMessage, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(patch, &sections); err != nil {
		return nil, fmt.Errorf("%w: malformed settings payload", common.ErrorValidation)
	}
	for name := range sections {
		switch name {
		case "general", "notifications", "security", "display":
		default:
			return nil, fmt.Errorf("%w: unknown settings section %q", common.ErrorValidation, name)
		}
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged, err := mergeSections(current, patch)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, &models.Settings{UserID: userID, Data: merged})
	if err != nil {
		return nil, err
	}
	return mergeSections(defaultSettings, saved.Data)
}

// mergeSections overlays the top-level sections of overlay onto base.
// Within a section, keys present in overlay replace the base keys.
func mergeSections(base, overlay json.RawMessage) (json.RawMessage, error) {
	merged := map[string]map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}

	var top map[string]map[string]json.RawMessage
	if err := json.Unmarshal(overlay, &top); err != nil {
		return nil, fmt.Errorf("%w: malformed settings payload", common.ErrorValidation)
	}
	for section, keys := range top {
		if merged[section] == nil {
			merged[section] = map[string]json.RawMessage{}
		}
		for key, value := range keys {
			merged[section][key] = value
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}
	return out, nil
}
