// Package warehouse supplies customer records for batch classification. The
// production source is a Postgres reporting warehouse; a CSV source covers
// offline extracts of the same rows.
package warehouse

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/salesops/segmatrix/internal/config"
	"github.com/salesops/segmatrix/internal/domain"
)

// RowSource yields pages of classification inputs. Fetch returns an empty
// page when the source is exhausted.
type RowSource interface {
	Fetch(ctx context.Context, offset, limit int) ([]domain.ClassificationInput, error)
}

type customerRow struct {
	CustomerID    string  `db:"customer_id"`
	EmployeeCount int     `db:"employee_count"`
	GMV           float64 `db:"trailing_gmv"`
}

// PostgresSource reads customer metrics from the warehouse, paged by
// offset so a batch run never holds the full table in memory.
type PostgresSource struct {
	db    *sqlx.DB
	table string
}

// Connect opens the warehouse connection described by the config.
func Connect(cfg *config.Config) (*PostgresSource, error) {
	db, err := sqlx.Connect("postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.WarehouseHost, cfg.WarehousePort, cfg.WarehouseUser, cfg.WarehousePassword, cfg.WarehouseName))
	if err != nil {
		return nil, fmt.Errorf("connecting to warehouse: %w", err)
	}
	return &PostgresSource{db: db, table: cfg.WarehouseTable}, nil
}

func (s *PostgresSource) Fetch(ctx context.Context, offset, limit int) ([]domain.ClassificationInput, error) {
	query := fmt.Sprintf(
		`SELECT customer_id, employee_count, trailing_gmv FROM %s ORDER BY customer_id LIMIT $1 OFFSET $2`,
		s.table)

	var rows []customerRow
	if err := s.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("fetching customer rows: %w", err)
	}

	inputs := make([]domain.ClassificationInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, domain.ClassificationInput{
			CustomerID:    row.CustomerID,
			EmployeeCount: row.EmployeeCount,
			GMV:           row.GMV,
		})
	}
	return inputs, nil
}

// Close releases the warehouse connection.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
