package models

import "time"

// Settings is one user's preference document, stored as a JSON blob.
type Settings struct {
	UserID    string
	Data      []byte
	UpdatedAt time.Time
}
