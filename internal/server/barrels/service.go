package barrels

import (
	"context"
	"fmt"
	"sort"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

// Statistics is the aggregate view of the cellar.
type Statistics struct {
	TotalBarrels       int            `json:"total_barrels"`
	TotalCapacity      float64        `json:"total_capacity"`
	TotalCurrentVolume float64        `json:"total_current_volume"`
	TopLocations       []LocationStat `json:"top_locations"`
}

type LocationStat struct {
	Location    string  `json:"location"`
	Count       int     `json:"count"`
	TotalVolume float64 `json:"total_volume"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// validate enforces the volume invariant: the stored volume can never be
// negative or exceed the barrel's capacity.
func validate(barrel *models.Barrel) error {
	if barrel.BarrelNumber == "" {
		return fmt.Errorf("%w: barrel_number is required", common.ErrorValidation)
	}
	if barrel.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", common.ErrorValidation)
	}
	if barrel.CurrentVolume < 0 || barrel.CurrentVolume > barrel.Capacity {
		return fmt.Errorf("%w: current_volume must be between 0 and capacity", common.ErrorValidation)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, barrel *models.Barrel) (*models.Barrel, error) {
	if err := validate(barrel); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, barrel)
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Barrel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]models.Barrel, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Update(ctx context.Context, barrel *models.Barrel) (*models.Barrel, error) {
	if err := validate(barrel); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, barrel)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Statistics aggregates the whole cellar: totals plus the locations holding
// the most barrels, largest first.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	barrels, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{TotalBarrels: len(barrels)}
	byLocation := map[string]*LocationStat{}
	for _, b := range barrels {
		stats.TotalCapacity += b.Capacity
		stats.TotalCurrentVolume += b.CurrentVolume

		loc, ok := byLocation[b.Location]
		if !ok {
			loc = &LocationStat{Location: b.Location}
			byLocation[b.Location] = loc
		}
		loc.Count++
		loc.TotalVolume += b.CurrentVolume
	}

	for _, loc := range byLocation {
		stats.TopLocations = append(stats.TopLocations, *loc)
	}
	sort.Slice(stats.TopLocations, func(i, j int) bool {
		a, b := stats.TopLocations[i], stats.TopLocations[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Location < b.Location
	})

	return stats, nil
}

// All returns every barrel, for exports.
func (s *Service) All(ctx context.Context) ([]models.Barrel, error) {
	return s.repo.ListAll(ctx)
}
