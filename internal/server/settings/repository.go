package settings

import (
	"context"

	"github.com/olivecrm/olivecrm/internal/server/models"
)

// Repository stores per-user settings blobs.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) (*models.Settings, error)
}
