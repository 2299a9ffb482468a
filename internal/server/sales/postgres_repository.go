package sales

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

const saleColumns = `id, customer_name, product, quantity, price, discount, tax, total, status, payment_method, order_date, delivery_date, notes, created_at, updated_at`

var orderings = map[string]string{
	"customer_name": "customer_name",
	"product":       "product",
	"total":         "total",
	"status":        "status",
	"order_date":    "order_date",
}

func orderClause(ordering string) string {
	direction := "ASC"
	if len(ordering) > 0 && ordering[0] == '-' {
		direction = "DESC"
		ordering = ordering[1:]
	}
	column, ok := orderings[ordering]
	if !ok {
		return "order_date DESC"
	}
	return column + " " + direction
}

func (r *PostgresRepository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	query := `
		INSERT INTO sales (id, customer_name, product, quantity, price, discount, tax, total, status, payment_method, order_date, delivery_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		sale.ID, sale.CustomerName, sale.Product, sale.Quantity, sale.Price,
		sale.Discount, sale.Tax, sale.Total, sale.Status, sale.PaymentMethod,
		sale.OrderDate, sale.DeliveryDate, sale.Notes,
	).Scan(&sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return sale, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	sale := &models.Sale{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id,
	).Scan(
		&sale.ID, &sale.CustomerName, &sale.Product, &sale.Quantity, &sale.Price,
		&sale.Discount, &sale.Tax, &sale.Total, &sale.Status, &sale.PaymentMethod,
		&sale.OrderDate, &sale.DeliveryDate, &sale.Notes,
		&sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return sale, nil
}

func (r *PostgresRepository) List(ctx context.Context, params ListParams) ([]models.Sale, int, error) {
	params.Normalize()

	where := ""
	args := []any{}
	if params.Search != "" {
		where = ` WHERE customer_name ILIKE $1 OR product ILIKE $1 OR status ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM sales`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM sales%s ORDER BY %s LIMIT %d OFFSET %d`,
		saleColumns, where, orderClause(params.Ordering), params.PageSize, params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY order_date`)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	query := `
		UPDATE sales
		SET customer_name = $2, product = $3, quantity = $4, price = $5,
		    discount = $6, tax = $7, total = $8, status = $9, payment_method = $10,
		    order_date = $11, delivery_date = $12, notes = $13, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		sale.ID, sale.CustomerName, sale.Product, sale.Quantity, sale.Price,
		sale.Discount, sale.Tax, sale.Total, sale.Status, sale.PaymentMethod,
		sale.OrderDate, sale.DeliveryDate, sale.Notes,
	).Scan(&sale.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return sale, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
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

func scanSales(rows *sql.Rows) ([]models.Sale, error) {
	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(
			&s.ID, &s.CustomerName, &s.Product, &s.Quantity, &s.Price,
			&s.Discount, &s.Tax, &s.Total, &s.Status, &s.PaymentMethod,
			&s.OrderDate, &s.DeliveryDate, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
