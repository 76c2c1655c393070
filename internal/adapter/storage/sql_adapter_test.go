package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
)

func getSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/shoes?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("MySQL not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleShoes() []domain.Shoe {
	return []domain.Shoe{
		{Country: "South Africa", Code: "SKU44386", Product: "Air Max 90", Cost: decimal.RequireFromString("2300"), Quantity: 20},
		{Country: "Korea, South", Code: "SKU90000", Product: "Jordan 1", Cost: decimal.RequireFromString("19.99"), Quantity: 3},
	}
}

func exerciseSQLAdapter(t *testing.T, db *sql.DB) {
	ctx := context.Background()
	adapter := NewSQLAdapter(db, nil)
	require.NoError(t, adapter.EnsureSchema(ctx))
	require.NoError(t, adapter.Save(ctx, nil))

	shoes, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, shoes)

	for _, shoe := range sampleShoes() {
		require.NoError(t, adapter.Append(ctx, shoe))
	}

	shoes, err = adapter.Load(ctx)
	require.NoError(t, err)
	sameShoes(t, sampleShoes(), shoes)

	shoes[1].Quantity += 10
	require.NoError(t, adapter.Save(ctx, shoes))

	reloaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	sameShoes(t, shoes, reloaded)
	assert.Equal(t, 13, reloaded[1].Quantity)
}

func TestSQLAdapter_SQLite(t *testing.T) {
	exerciseSQLAdapter(t, getSQLiteDB(t))
}

func TestSQLAdapter_MySQL(t *testing.T) {
	exerciseSQLAdapter(t, getMySQLDB(t))
}

func TestSQLAdapter_MalformedCost(t *testing.T) {
	ctx := context.Background()
	db := getSQLiteDB(t)
	adapter := NewSQLAdapter(db, nil)
	require.NoError(t, adapter.EnsureSchema(ctx))

	require.NoError(t, adapter.Append(ctx, sampleShoes()[0]))
	_, err := db.ExecContext(ctx, `INSERT INTO shoes (seq, country, code, product, cost, quantity) VALUES (2, 'X', 'Y', 'Z', 'oops', 1)`)
	require.NoError(t, err)
	require.NoError(t, adapter.Append(ctx, sampleShoes()[1]))

	shoes, err := adapter.Load(ctx)
	require.ErrorIs(t, err, domain.ErrMalformedField)

	var lineErr *domain.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Len(t, shoes, 1)
}

func TestSQLAdapter_MissingTable(t *testing.T) {
	adapter := NewSQLAdapter(getSQLiteDB(t), nil)

	_, err := adapter.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrFileIO)
}
