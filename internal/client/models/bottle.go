package models

// Bottle is a finished product line (bottled oil) tracked in inventory.
type Bottle struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Volume      string  `json:"volume"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	SKU         string  `json:"sku"`
	Description string  `json:"description,omitempty"`
}
