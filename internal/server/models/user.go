// Package models holds the server-side records as stored in Postgres.
package models

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	Role         string
	PasswordHash []byte
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role values. Admins pass every check; viewers are read-only.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
	RoleViewer  = "viewer"
)
