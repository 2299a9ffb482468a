// Package storage implements the two credential scopes of the client:
// a durable sqlite-backed store that survives restarts ("remember me")
// and an in-memory store that vanishes with the process. Only the session
// manager writes credentials; everything else reads through it.
package storage

import "context"

// Well-known keys. Credential keys are cleared on logout; the theme key is a
// UI preference and survives it.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyCurrentUser  = "current_user"
	KeyTheme        = "theme"
)

// CredentialKeys lists the keys that make up one scope's credential record.
var CredentialKeys = []string{KeyAccessToken, KeyRefreshToken, KeyCurrentUser}

// Store is a small key/value scope. Get returns (nil, nil) for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
