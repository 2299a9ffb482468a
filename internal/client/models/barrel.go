package models

import "time"

// Barrel is a storage barrel in the cellar. Volumes are litres.
type Barrel struct {
	ID                int64      `json:"id,omitempty"`
	BarrelNumber      string     `json:"barrel_number"`
	Capacity          float64    `json:"capacity"`
	CurrentVolume     float64    `json:"current_volume"`
	AvailableCapacity float64    `json:"available_capacity,omitempty"`
	FillingDate       *time.Time `json:"filling_date,omitempty"`
	EmptyingDate      *time.Time `json:"emptying_date,omitempty"`
	Location          string     `json:"location"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// LocationStat is one entry of BarrelStatistics.TopLocations.
type LocationStat struct {
	Location    string  `json:"location"`
	Count       int     `json:"count"`
	TotalVolume float64 `json:"total_volume"`
}

type BarrelStatistics struct {
	TotalBarrels       int            `json:"total_barrels"`
	TotalCapacity      float64        `json:"total_capacity"`
	TotalCurrentVolume float64        `json:"total_current_volume"`
	TopLocations       []LocationStat `json:"top_locations"`
}
