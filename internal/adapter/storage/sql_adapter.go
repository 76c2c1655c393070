package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
)

// The same statements run on MySQL and SQLite. Cost is kept as text so the
// decimal survives the round trip unchanged.
const createShoesTable = `
	CREATE TABLE IF NOT EXISTS shoes (
		seq      INTEGER      NOT NULL PRIMARY KEY,
		country  VARCHAR(255) NOT NULL,
		code     VARCHAR(64)  NOT NULL,
		product  VARCHAR(255) NOT NULL,
		cost     VARCHAR(64)  NOT NULL,
		quantity INTEGER      NOT NULL
	)`

type SQLAdapter struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLAdapter(db *sql.DB, logger *zap.Logger) *SQLAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLAdapter{db: db, logger: logger}
}

func (m *SQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createShoesTable); err != nil {
		return fmt.Errorf("%w: create shoes table: %w", domain.ErrFileIO, err)
	}
	return nil
}

func (m *SQLAdapter) Load(ctx context.Context) ([]domain.Shoe, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT country, code, product, cost, quantity
		FROM shoes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: query shoes: %w", domain.ErrFileIO, err)
	}
	defer rows.Close()

	var shoes []domain.Shoe
	for row := 1; rows.Next(); row++ {
		var shoe domain.Shoe
		var cost string
		if err := rows.Scan(&shoe.Country, &shoe.Code, &shoe.Product, &cost, &shoe.Quantity); err != nil {
			return shoes, fmt.Errorf("%w: scan shoe: %w", domain.ErrFileIO, err)
		}

		shoe.Cost, err = domain.ParseCost(cost)
		if err != nil {
			return shoes, &domain.LineError{Line: row, Err: err}
		}
		shoes = append(shoes, shoe)
	}
	if err := rows.Err(); err != nil {
		return shoes, fmt.Errorf("%w: iterate shoes: %w", domain.ErrFileIO, err)
	}

	return shoes, nil
}

func (m *SQLAdapter) Append(ctx context.Context, shoe domain.Shoe) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO shoes (seq, country, code, product, cost, quantity)
		SELECT COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ? FROM shoes`,
		shoe.Country, shoe.Code, shoe.Product, shoe.Cost.String(), shoe.Quantity,
	)
	if err != nil {
		return fmt.Errorf("%w: insert shoe: %w", domain.ErrFileIO, err)
	}
	return nil
}

func (m *SQLAdapter) Save(ctx context.Context, shoes []domain.Shoe) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", domain.ErrFileIO, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shoes`); err != nil {
		return fmt.Errorf("%w: clear shoes: %w", domain.ErrFileIO, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shoes (seq, country, code, product, cost, quantity)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", domain.ErrFileIO, err)
	}
	defer stmt.Close()

	for i, shoe := range shoes {
		_, err := stmt.ExecContext(ctx, i+1, shoe.Country, shoe.Code, shoe.Product, shoe.Cost.String(), shoe.Quantity)
		if err != nil {
			return fmt.Errorf("%w: insert shoe %s: %w", domain.ErrFileIO, shoe.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrFileIO, err)
	}

	m.logger.Debug("rewrote shoes table", zap.Int("records", len(shoes)))
	return nil
}
