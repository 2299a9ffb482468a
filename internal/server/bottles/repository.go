// Package bottles manages the bottled-product inventory.
package bottles

import (
	"context"

	"github.com/olivecrm/olivecrm/internal/server/barrels"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

// ListParams reuses the common pagination shape.
type ListParams = barrels.ListParams

type Repository interface {
	Create(ctx context.Context, bottle *models.Bottle) (*models.Bottle, error)
	GetByID(ctx context.Context, id int64) (*models.Bottle, error)
	List(ctx context.Context, params ListParams) ([]models.Bottle, int, error)
	Update(ctx context.Context, bottle *models.Bottle) (*models.Bottle, error)
	Delete(ctx context.Context, id int64) error
}
