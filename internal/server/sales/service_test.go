package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

type fakeRepo struct {
	byID  map[string]*models.Sale
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*models.Sale{}}
}

func (f *fakeRepo) Create(_ context.Context, sale *models.Sale) (*models.Sale, error) {
	cp := *sale
	f.byID[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	return &cp, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*models.Sale, error) {
	sale, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *sale
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ ListParams) ([]models.Sale, int, error) {
	all, err := f.ListAll(context.Background())
	return all, len(all), err
}

func (f *fakeRepo) ListAll(_ context.Context) ([]models.Sale, error) {
	result := make([]models.Sale, 0, len(f.order))
	for _, id := range f.order {
		if sale, ok := f.byID[id]; ok {
			result = append(result, *sale)
		}
	}
	return result, nil
}

func (f *fakeRepo) Update(_ context.Context, sale *models.Sale) (*models.Sale, error) {
	if _, ok := f.byID[sale.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *sale
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCreate_ComputesTotalAndDefaults(t *testing.T) {
	service := NewService(newFakeRepo())

	sale, err := service.Create(context.Background(), &models.Sale{
		CustomerName: "Bodega Aurora",
		Product:      "Extra Virgin 5L",
		Quantity:     10,
		Price:        42.50,
		Discount:     25,
		Tax:          40,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, models.SalePending, sale.Status)
	assert.False(t, sale.OrderDate.IsZero())
	assert.InDelta(t, 10*42.50-25+40, sale.Total, 0.001)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		sale models.Sale
	}{
		{"missing customer", models.Sale{Product: "Olive Oil", Quantity: 1, Price: 10}},
		{"missing product", models.Sale{CustomerName: "Acme", Quantity: 1, Price: 10}},
		{"zero quantity", models.Sale{CustomerName: "Acme", Product: "Olive Oil", Quantity: 0, Price: 10}},
		{"negative price", models.Sale{CustomerName: "Acme", Product: "Olive Oil", Quantity: 1, Price: -1}},
		{"unknown status", models.Sale{CustomerName: "Acme", Product: "Olive Oil", Quantity: 1, Price: 10, Status: "archived"}},
	}

	service := NewService(newFakeRepo())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), &tt.sale)
			assert.True(t, errors.Is(err, common.ErrorValidation))
		})
	}
}

func TestPatch_RecomputesTotal(t *testing.T) {
	service := NewService(newFakeRepo())

	created, err := service.Create(context.Background(), &models.Sale{
		CustomerName: "Acme",
		Product:      "Olive Oil",
		Quantity:     2,
		Price:        30,
	})
	require.NoError(t, err)
	require.InDelta(t, 60, created.Total, 0.001)

	updated, err := service.Patch(context.Background(), created.ID, &models.Sale{Quantity: 5})
	require.NoError(t, err)
	assert.InDelta(t, 150, updated.Total, 0.001)
	assert.Equal(t, "Acme", updated.CustomerName)
}

func TestPatch_RejectsUnknownStatus(t *testing.T) {
	service := NewService(newFakeRepo())

	created, err := service.Create(context.Background(), &models.Sale{
		CustomerName: "Acme",
		Product:      "Olive Oil",
		Quantity:     1,
		Price:        10,
	})
	require.NoError(t, err)

	_, err = service.Patch(context.Background(), created.ID, &models.Sale{Status: "bogus"})
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestSummary(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	seed := []models.Sale{
		{CustomerName: "A", Product: "Extra Virgin", Quantity: 10, Price: 10, Status: models.SaleCompleted, OrderDate: date(2026, time.January, 5)},
		{CustomerName: "B", Product: "Extra Virgin", Quantity: 5, Price: 10, Status: models.SaleCompleted, OrderDate: date(2026, time.February, 2)},
		{CustomerName: "C", Product: "Infused Lemon", Quantity: 20, Price: 20, Status: models.SaleShipped, OrderDate: date(2026, time.February, 10)},
		{CustomerName: "D", Product: "Infused Lemon", Quantity: 100, Price: 20, Status: models.SaleCancelled, OrderDate: date(2026, time.March, 1)},
	}
	for i := range seed {
		_, err := service.Create(context.Background(), &seed[i])
		require.NoError(t, err)
	}

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	// The cancelled sale does not count.
	assert.Equal(t, 3, summary.TotalSales)
	assert.InDelta(t, 100+50+400, summary.TotalRevenue, 0.001)
	assert.InDelta(t, 550.0/3, summary.AverageOrderValue, 0.001)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "Infused Lemon", summary.TopProducts[0].ProductName)
	assert.InDelta(t, 400, summary.TopProducts[0].Revenue, 0.001)
	assert.Equal(t, "Extra Virgin", summary.TopProducts[1].ProductName)
	assert.InDelta(t, 150, summary.TopProducts[1].Revenue, 0.001)

	require.Len(t, summary.MonthlySales, 2)
	assert.Equal(t, "January", summary.MonthlySales[0].Month)
	assert.Equal(t, 2026, summary.MonthlySales[0].Year)
	assert.Equal(t, 1, summary.MonthlySales[0].TotalSales)
	assert.Equal(t, "February", summary.MonthlySales[1].Month)
	assert.Equal(t, 2, summary.MonthlySales[1].TotalSales)
	assert.InDelta(t, 450, summary.MonthlySales[1].TotalRevenue, 0.001)
}

func TestSummary_Empty(t *testing.T) {
	service := NewService(newFakeRepo())

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSales)
	assert.Zero(t, summary.AverageOrderValue)
	assert.Empty(t, summary.TopProducts)
	assert.Empty(t, summary.MonthlySales)
}

func TestDelete_Unknown(t *testing.T) {
	service := NewService(newFakeRepo())
	err := service.Delete(context.Background(), fmt.Sprintf("s-%d", 1))
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
