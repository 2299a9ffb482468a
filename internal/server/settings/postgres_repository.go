package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/dbx"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Settings, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT user_id, data, updated_at FROM settings WHERE user_id = $1", userID)

	s := &models.Settings{}
	err := row.Scan(&s.UserID, &s.Data, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO settings (user_id, data, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET data = excluded.data, updated_at = now()
		 RETURNING user_id, data, updated_at`,
		settings.UserID, settings.Data)

	s := &models.Settings{}
	if err := row.Scan(&s.UserID, &s.Data, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return s, nil
}
