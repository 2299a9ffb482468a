package models

import "time"

type Bottle struct {
	ID          int64
	Name        string
	Type        string
	Volume      string
	Price       float64
	Stock       int
	SKU         string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
