package models

import "time"

type Barrel struct {
	ID            int64
	BarrelNumber  string
	Capacity      float64
	CurrentVolume float64
	FillingDate   *time.Time
	EmptyingDate  *time.Time
	Location      string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AvailableCapacity is the free volume left in the barrel.
func (b *Barrel) AvailableCapacity() float64 {
	return b.Capacity - b.CurrentVolume
}
