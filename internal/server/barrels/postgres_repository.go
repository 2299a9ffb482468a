package barrels

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

const barrelColumns = `id, barrel_number, capacity, current_volume, filling_date, emptying_date, location, notes, created_at, updated_at`

// orderings whitelists the sortable columns. A leading '-' flips direction.
var orderings = map[string]string{
	"barrel_number":  "barrel_number",
	"capacity":       "capacity",
	"current_volume": "current_volume",
	"location":       "location",
	"created_at":     "created_at",
}

func orderClause(ordering, fallback string) string {
	direction := "ASC"
	if len(ordering) > 0 && ordering[0] == '-' {
		direction = "DESC"
		ordering = ordering[1:]
	}
	column, ok := orderings[ordering]
	if !ok {
		return fallback
	}
	return column + " " + direction
}

func (r *PostgresRepository) Create(ctx context.Context, barrel *models.Barrel) (*models.Barrel, error) {
	query := `
		INSERT INTO barrels (barrel_number, capacity, current_volume, filling_date, emptying_date, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		barrel.BarrelNumber, barrel.Capacity, barrel.CurrentVolume,
		barrel.FillingDate, barrel.EmptyingDate, barrel.Location, barrel.Notes,
	).Scan(&barrel.ID, &barrel.CreatedAt, &barrel.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return barrel, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Barrel, error) {
	barrel := &models.Barrel{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+barrelColumns+` FROM barrels WHERE id = $1`, id,
	).Scan(
		&barrel.ID, &barrel.BarrelNumber, &barrel.Capacity, &barrel.CurrentVolume,
		&barrel.FillingDate, &barrel.EmptyingDate, &barrel.Location, &barrel.Notes,
		&barrel.CreatedAt, &barrel.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return barrel, nil
}

func (r *PostgresRepository) List(ctx context.Context, params ListParams) ([]models.Barrel, int, error) {
	params.Normalize()

	where := ""
	args := []any{}
	if params.Search != "" {
		where = ` WHERE barrel_number ILIKE $1 OR location ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM barrels`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM barrels%s ORDER BY %s LIMIT %d OFFSET %d`,
		barrelColumns, where, orderClause(params.Ordering, "barrel_number ASC"), params.PageSize, params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	barrels, err := scanBarrels(rows)
	if err != nil {
		return nil, 0, err
	}
	return barrels, total, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Barrel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+barrelColumns+` FROM barrels ORDER BY barrel_number`)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()
	return scanBarrels(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, barrel *models.Barrel) (*models.Barrel, error) {
	query := `
		UPDATE barrels
		SET barrel_number = $2, capacity = $3, current_volume = $4,
		    filling_date = $5, emptying_date = $6, location = $7, notes = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		barrel.ID, barrel.BarrelNumber, barrel.Capacity, barrel.CurrentVolume,
		barrel.FillingDate, barrel.EmptyingDate, barrel.Location, barrel.Notes,
	).Scan(&barrel.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return barrel, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM barrels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func scanBarrels(rows *sql.Rows) ([]models.Barrel, error) {
	var barrels []models.Barrel
	for rows.Next() {
		var b models.Barrel
		if err := rows.Scan(
			&b.ID, &b.BarrelNumber, &b.Capacity, &b.CurrentVolume,
			&b.FillingDate, &b.EmptyingDate, &b.Location, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		barrels = append(barrels, b)
	}
	return barrels, rows.Err()
}
