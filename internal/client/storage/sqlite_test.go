package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_SetAndGet(t *testing.T) {
	s := NewSQLite(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAccessToken, []byte("tok-a1")))

	v, err := s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok-a1"), v)
}

func TestSQLite_GetAbsent_ReturnsNilNil(t *testing.T) {
	s := NewSQLite(setupDB(t))

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLite_SetOverwrites(t *testing.T) {
	s := NewSQLite(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyRefreshToken, []byte("old")))
	require.NoError(t, s.Set(ctx, KeyRefreshToken, []byte("new")))

	v, err := s.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSQLite_Delete(t *testing.T) {
	s := NewSQLite(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyCurrentUser, []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, KeyCurrentUser))

	v, err := s.Get(ctx, KeyCurrentUser)
	require.NoError(t, err)
	require.Nil(t, v)

	// deleting a missing key is not an error
	require.NoError(t, s.Delete(ctx, KeyCurrentUser))
}

func TestSQLite_Clear(t *testing.T) {
	s := NewSQLite(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAccessToken, []byte("a")))
	require.NoError(t, s.Set(ctx, KeyTheme, []byte("dark")))
	require.NoError(t, s.Clear(ctx))

	for _, key := range []string{KeyAccessToken, KeyTheme} {
		v, err := s.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestMemory_Roundtrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, KeyAccessToken, []byte("tok")))

	v, err := m.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok"), v)

	// the stored copy must not alias the caller's slice
	v[0] = 'X'
	v2, err := m.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok"), v2)

	require.NoError(t, m.Delete(ctx, KeyAccessToken))
	v, err = m.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestMemory_Clear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, KeyAccessToken, []byte("a")))
	require.NoError(t, m.Set(ctx, KeyRefreshToken, []byte("r")))
	require.NoError(t, m.Clear(ctx))

	v, err := m.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Nil(t, v)
}
