// Package sales manages customer orders and the revenue summary.
package sales

import (
	"context"

	"github.com/olivecrm/olivecrm/internal/server/barrels"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

// ListParams reuses the common pagination shape.
type ListParams = barrels.ListParams

type Repository interface {
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	GetByID(ctx context.Context, id string) (*models.Sale, error)
	List(ctx context.Context, params ListParams) ([]models.Sale, int, error)
	ListAll(ctx context.Context) ([]models.Sale, error)
	Update(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	Delete(ctx context.Context, id string) error
}
