package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

// Summary is the aggregate revenue view.
type Summary struct {
	TotalSales        int            `json:"total_sales"`
	TotalRevenue      float64        `json:"total_revenue"`
	AverageOrderValue float64        `json:"average_order_value"`
	TopProducts       []ProductSales `json:"top_products"`
	MonthlySales      []MonthlySales `json:"monthly_sales"`
}

type ProductSales struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type MonthlySales struct {
	Month        string  `json:"month"`
	Year         int     `json:"year"`
	TotalSales   int     `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
}

// topProductsLimit caps how many products the summary lists.
const topProductsLimit = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(sale *models.Sale) error {
	if sale.CustomerName == "" {
		return fmt.Errorf("%w: customer_name is required", common.ErrorValidation)
	}
	if sale.Product == "" {
		return fmt.Errorf("%w: product is required", common.ErrorValidation)
	}
	if sale.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", common.ErrorValidation)
	}
	if sale.Price < 0 || sale.Discount < 0 || sale.Tax < 0 {
		return fmt.Errorf("%w: amounts cannot be negative", common.ErrorValidation)
	}
	if !models.ValidStatus(sale.Status) {
		return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, sale.Status)
	}
	return nil
}

// Create assigns an id, recomputes the total and stores the sale. A zero
// order date defaults to now.
func (s *Service) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if sale.Status == "" {
		sale.Status = models.SalePending
	}
	if sale.OrderDate.IsZero() {
		sale.OrderDate = time.Now().UTC()
	}
	if err := validate(sale); err != nil {
		return nil, err
	}
	sale.ID = uuid.NewString()
	sale.ComputeTotal()
	return s.repo.Create(ctx, sale)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]models.Sale, int, error) {
	return s.repo.List(ctx, params)
}

// Patch applies the non-zero fields of patch to an existing sale and
// recomputes the total.
func (s *Service) Patch(ctx context.Context, id string, patch *models.Sale) (*models.Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.CustomerName != "" {
		sale.CustomerName = patch.CustomerName
	}
	if patch.Product != "" {
		sale.Product = patch.Product
	}
	if patch.Quantity != 0 {
		sale.Quantity = patch.Quantity
	}
	if patch.Price != 0 {
		sale.Price = patch.Price
	}
	if patch.Discount != 0 {
		sale.Discount = patch.Discount
	}
	if patch.Tax != 0 {
		sale.Tax = patch.Tax
	}
	if patch.Status != "" {
		sale.Status = patch.Status
	}
	if patch.PaymentMethod != "" {
		sale.PaymentMethod = patch.PaymentMethod
	}
	if patch.DeliveryDate != nil {
		sale.DeliveryDate = patch.DeliveryDate
	}
	if patch.Notes != "" {
		sale.Notes = patch.Notes
	}

	if err := validate(sale); err != nil {
		return nil, err
	}
	sale.ComputeTotal()
	return s.repo.Update(ctx, sale)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Summary aggregates all non-cancelled sales: totals, the best selling
// products by revenue and a month-by-month breakdown in chronological order.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	sales, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	byProduct := map[string]*ProductSales{}
	byMonth := map[string]*MonthlySales{}
	var monthKeys []string

	for _, sale := range sales {
		if sale.Status == models.SaleCancelled {
			continue
		}
		summary.TotalSales++
		summary.TotalRevenue += sale.Total

		p, ok := byProduct[sale.Product]
		if !ok {
			p = &ProductSales{ProductName: sale.Product}
			byProduct[sale.Product] = p
		}
		p.Quantity += sale.Quantity
		p.Revenue += sale.Total

		key := sale.OrderDate.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &MonthlySales{
				Month: sale.OrderDate.Format("January"),
				Year:  sale.OrderDate.Year(),
			}
			byMonth[key] = m
			monthKeys = append(monthKeys, key)
		}
		m.TotalSales++
		m.TotalRevenue += sale.Total
	}

	if summary.TotalSales > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalSales)
	}

	for _, p := range byProduct {
		summary.TopProducts = append(summary.TopProducts, *p)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		return summary.TopProducts[i].Revenue > summary.TopProducts[j].Revenue
	})
	if len(summary.TopProducts) > topProductsLimit {
		summary.TopProducts = summary.TopProducts[:topProductsLimit]
	}

	sort.Strings(monthKeys)
	for _, key := range monthKeys {
		summary.MonthlySales = append(summary.MonthlySales, *byMonth[key])
	}

	return summary, nil
}

// All returns every sale, for exports.
func (s *Service) All(ctx context.Context) ([]models.Sale, error) {
	return s.repo.ListAll(ctx)
}
