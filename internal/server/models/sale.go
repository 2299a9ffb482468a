package models

import "time"

// Sale statuses and payment methods accepted on the wire.
const (
	SalePending   = "pending"
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
	SaleShipped   = "shipped"
)

const (
	PaymentCash     = "cash"
	PaymentCredit   = "credit"
	PaymentTransfer = "transfer"
	PaymentCheck    = "check"
)

type Sale struct {
	ID            string
	CustomerName  string
	Product       string
	Quantity      float64
	Price         float64
	Discount      float64
	Tax           float64
	Total         float64
	Status        string
	PaymentMethod string
	OrderDate     time.Time
	DeliveryDate  *time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComputeTotal recalculates the order total from its parts.
func (s *Sale) ComputeTotal() {
	s.Total = s.Quantity*s.Price - s.Discount + s.Tax
}

// ValidStatus reports whether status is one of the accepted values.
func ValidStatus(status string) bool {
	switch status {
	case SalePending, SaleCompleted, SaleCancelled, SaleShipped:
		return true
	}
	return false
}
