package bottles

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

const bottleColumns = `id, name, type, volume, price, stock, sku, description, created_at, updated_at`

var orderings = map[string]string{
	"name":  "name",
	"type":  "type",
	"price": "price",
	"stock": "stock",
	"sku":   "sku",
}

func orderClause(ordering string) string {
	direction := "ASC"
	if len(ordering) > 0 && ordering[0] == '-' {
		direction = "DESC"
		ordering = ordering[1:]
	}
	column, ok := orderings[ordering]
	if !ok {
		return "name ASC"
	}
	return column + " " + direction
}

func (r *PostgresRepository) Create(ctx context.Context, bottle *models.Bottle) (*models.Bottle, error) {
	query := `
		INSERT INTO bottles (name, type, volume, price, stock, sku, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		bottle.Name, bottle.Type, bottle.Volume, bottle.Price,
		bottle.Stock, bottle.SKU, bottle.Description,
	).Scan(&bottle.ID, &bottle.CreatedAt, &bottle.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return bottle, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Bottle, error) {
	bottle := &models.Bottle{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+bottleColumns+` FROM bottles WHERE id = $1`, id,
	).Scan(
		&bottle.ID, &bottle.Name, &bottle.Type, &bottle.Volume, &bottle.Price,
		&bottle.Stock, &bottle.SKU, &bottle.Description,
		&bottle.CreatedAt, &bottle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return bottle, nil
}

func (r *PostgresRepository) List(ctx context.Context, params ListParams) ([]models.Bottle, int, error) {
	params.Normalize()

	where := ""
	args := []any{}
	if params.Search != "" {
		where = ` WHERE name ILIKE $1 OR sku ILIKE $1 OR type ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bottles`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM bottles%s ORDER BY %s LIMIT %d OFFSET %d`,
		bottleColumns, where, orderClause(params.Ordering), params.PageSize, params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var bottles []models.Bottle
	for rows.Next() {
		var b models.Bottle
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Type, &b.Volume, &b.Price,
			&b.Stock, &b.SKU, &b.Description,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		bottles = append(bottles, b)
	}
	return bottles, total, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, bottle *models.Bottle) (*models.Bottle, error) {
	query := `
		UPDATE bottles
		SET name = $2, type = $3, volume = $4, price = $5, stock = $6, sku = $7, description = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		bottle.ID, bottle.Name, bottle.Type, bottle.Volume, bottle.Price,
		bottle.Stock, bottle.SKU, bottle.Description,
	).Scan(&bottle.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return bottle, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bottles WHERE id = $1`, id)
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
