package bottles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

type fakeRepo struct {
	byID   map[int64]*models.Bottle
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[int64]*models.Bottle{}}
}

func (f *fakeRepo) Create(_ context.Context, bottle *models.Bottle) (*models.Bottle, error) {
	f.nextID++
	cp := *bottle
	cp.ID = f.nextID
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*models.Bottle, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ ListParams) ([]models.Bottle, int, error) {
	var all []models.Bottle
	for i := int64(1); i <= f.nextID; i++ {
		if b, ok := f.byID[i]; ok {
			all = append(all, *b)
		}
	}
	return all, len(all), nil
}

func (f *fakeRepo) Update(_ context.Context, bottle *models.Bottle) (*models.Bottle, error) {
	if _, ok := f.byID[bottle.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *bottle
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCreate(t *testing.T) {
	service := NewService(newFakeRepo())

	bottle, err := service.Create(context.Background(), &models.Bottle{
		Name:   "Extra Virgin 750ml",
		Type:   "extra_virgin",
		Volume: "750ml",
		Price:  12.90,
		Stock:  240,
		SKU:    "EV-750",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), bottle.ID)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		bottle models.Bottle
	}{
		{"missing name", models.Bottle{Price: 10, Stock: 1}},
		{"negative price", models.Bottle{Name: "Oil", Price: -1}},
		{"negative stock", models.Bottle{Name: "Oil", Price: 10, Stock: -5}},
	}

	service := NewService(newFakeRepo())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), &tt.bottle)
			assert.True(t, errors.Is(err, common.ErrorValidation))
		})
	}
}

func TestUpdate_UnknownBottle(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Update(context.Background(), &models.Bottle{ID: 42, Name: "Oil", Price: 10})
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
