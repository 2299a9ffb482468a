// Package barrels manages the cellar: CRUD over storage barrels plus the
// statistics the dashboard shows.
package barrels

import (
	"context"

	"github.com/olivecrm/olivecrm/internal/server/models"
)

// ListParams are the common pagination and filter knobs.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
}

// Normalize clamps the paging values to sane bounds.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset is the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Repository interface {
	Create(ctx context.Context, barrel *models.Barrel) (*models.Barrel, error)
	GetByID(ctx context.Context, id int64) (*models.Barrel, error)
	List(ctx context.Context, params ListParams) ([]models.Barrel, int, error)
	ListAll(ctx context.Context) ([]models.Barrel, error)
	Update(ctx context.Context, barrel *models.Barrel) (*models.Barrel, error)
	Delete(ctx context.Context, id int64) error
}
