// Package users implements accounts: registration, login, token refresh with
// rotation, profile management and password flows.
package users

import (
	"context"
	"time"

	"github.com/olivecrm/olivecrm/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, hash []byte) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error
}
