// Package refreshtokens stores opaque one-time tokens (refresh tokens,
// password reset tokens) with a TTL.
package refreshtokens

import (
	"context"
	"time"
)

type Repository interface {
	// Create stores token for userID with the given validity.
	Create(ctx context.Context, token, userID string, validity time.Duration) error
	// UserID resolves a token to its user. Missing or expired tokens return
	// common.ErrorNotFound.
	UserID(ctx context.Context, token string) (string, error)
	// Delete revokes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	// DeleteAllForUser revokes every token of one user.
	DeleteAllForUser(ctx context.Context, userID string) error
}
