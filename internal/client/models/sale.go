package models

import "time"

type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
	SaleShipped   SaleStatus = "shipped"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCredit   PaymentMethod = "credit"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCheck    PaymentMethod = "check"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Sale is a customer order. Total = quantity*price − discount + tax.
type Sale struct {
	ID              string        `json:"id,omitempty"`
	CustomerName    string        `json:"customer_name"`
	Product         string        `json:"product"`
	Quantity        float64       `json:"quantity"`
	Price           float64       `json:"price"`
	Total           float64       `json:"total"`
	Status          SaleStatus    `json:"status"`
	OrderDate       time.Time     `json:"order_date"`
	DeliveryDate    *time.Time    `json:"delivery_date,omitempty"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Discount        float64       `json:"discount,omitempty"`
	Tax             float64       `json:"tax,omitempty"`
	ShippingAddress *Address      `json:"shipping_address,omitempty"`
	BillingAddress  *Address      `json:"billing_address,omitempty"`
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

type SalesSummary struct {
	TotalSales        int            `json:"total_sales"`
	TotalRevenue      float64        `json:"total_revenue"`
	AverageOrderValue float64        `json:"average_order_value"`
	TopProducts       []ProductSales `json:"top_products"`
	MonthlySales      []MonthlySales `json:"monthly_sales"`
}
