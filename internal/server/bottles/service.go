package bottles

import (
	"context"
	"fmt"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(bottle *models.Bottle) error {
	if bottle.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if bottle.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", common.ErrorValidation)
	}
	if bottle.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", common.ErrorValidation)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, bottle *models.Bottle) (*models.Bottle, error) {
	if err := validate(bottle); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, bottle)
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Bottle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]models.Bottle, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Update(ctx context.Context, bottle *models.Bottle) (*models.Bottle, error) {
	if err := validate(bottle); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, bottle)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
