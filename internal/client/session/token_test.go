package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/olivecrm/olivecrm/internal/common"
)

func mintToken(t *testing.T, userID, username string, exp time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(exp.Add(-15 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	token := mintToken(t, "u-1", "alice", exp)

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "access", claims.TokenType)
	require.True(t, claims.ExpiresAt.Time.Equal(exp))
}

func TestDecodeClaims_Garbage(t *testing.T) {
	_, err := DecodeClaims("not-a-jwt")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	valid := mintToken(t, "u", "u", now.Add(5*time.Minute))
	expired := mintToken(t, "u", "u", now.Add(-5*time.Minute))

	require.False(t, IsExpired(valid, now))
	require.True(t, IsExpired(expired, now))
	require.True(t, IsExpired("garbage", now))
}

func TestExpiresAt_Garbage(t *testing.T) {
	require.True(t, ExpiresAt("garbage").IsZero())
}
