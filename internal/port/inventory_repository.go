package port

import (
	"context"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
)

type InventoryRepository interface {
	// Load returns every record in store order. When a row is malformed it
	// returns the records parsed before that row together with the error.
	Load(ctx context.Context) ([]domain.Shoe, error)

	// Append adds one record after the last one
	Append(ctx context.Context, shoe domain.Shoe) error

	// Save replaces the whole store, header included
	Save(ctx context.Context, shoes []domain.Shoe) error
}
