package service

import (
	"context"
	"fmt"
	"iter"
	"math"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
	"github.com/rl1809/shoe-inventory/internal/port"
)

// InventoryService owns the in-memory shoe sequence and keeps it in step
// with the backing store. Records keep load order followed by append order.
type InventoryService struct {
	repo   port.InventoryRepository
	logger *zap.Logger

	mu     sync.Mutex
	shoes  []domain.Shoe
	loaded bool
}

func NewInventoryService(repo port.InventoryRepository, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		repo:   repo,
		logger: logger,
	}
}

// Load replaces the in-memory inventory with the backing store contents.
// The service counts as loaded even when an error is returned; whatever
// was parsed before the failure stays available.
func (s *InventoryService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shoes, err := s.repo.Load(ctx)
	s.shoes = shoes
	s.loaded = true

	if err != nil {
		s.logger.Warn("inventory loaded with errors", zap.Int("records", len(shoes)), zap.Error(err))
		return fmt.Errorf("load inventory: %w", err)
	}

	s.logger.Info("inventory loaded", zap.Int("records", len(shoes)))
	return nil
}

func (s *InventoryService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// All yields every record in current order.
func (s *InventoryService) All() iter.Seq[domain.Shoe] {
	s.mu.Lock()
	snapshot := slices.Clone(s.shoes)
	s.mu.Unlock()

	return slices.Values(snapshot)
}

func (s *InventoryService) Add(ctx context.Context, shoe domain.Shoe) error {
	if err := shoe.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return domain.ErrNotLoaded
	}

	if err := s.repo.Append(ctx, shoe); err != nil {
		return fmt.Errorf("append shoe %s: %w", shoe.Code, err)
	}
	s.shoes = append(s.shoes, shoe)

	s.logger.Info("shoe added", zap.String("code", shoe.Code), zap.Int("quantity", shoe.Quantity))
	return nil
}

// Lowest returns the record that RestockLowest would pick right now.
func (s *InventoryService) Lowest() (domain.Shoe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := lowestIndex(s.shoes)
	if i < 0 {
		return domain.Shoe{}, domain.ErrEmptyInventory
	}
	return s.shoes[i], nil
}

// RestockLowest adds quantity to the lowest-stocked record and rewrites the
// backing store. If the rewrite fails the increment is reverted.
func (s *InventoryService) RestockLowest(ctx context.Context, quantity int) (domain.Shoe, error) {
	if quantity < 0 {
		return domain.Shoe{}, domain.ErrNegativeValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return domain.Shoe{}, domain.ErrNotLoaded
	}

	i := lowestIndex(s.shoes)
	if i < 0 {
		return domain.Shoe{}, domain.ErrEmptyInventory
	}

	if current := s.shoes[i].Quantity; current > 0 && quantity > math.MaxInt-current {
		return domain.Shoe{}, fmt.Errorf("restock %s by %d: %w", s.shoes[i].Code, quantity, domain.ErrQuantityLimit)
	}

	s.shoes[i].Quantity += quantity
	if err := s.repo.Save(ctx, slices.Clone(s.shoes)); err != nil {
		s.shoes[i].Quantity -= quantity
		return domain.Shoe{}, fmt.Errorf("restock %s: %w", s.shoes[i].Code, err)
	}

	s.logger.Info("shoe restocked",
		zap.String("code", s.shoes[i].Code),
		zap.Int("added", quantity),
		zap.Int("quantity", s.shoes[i].Quantity),
	)
	return s.shoes[i], nil
}

// Search returns the first record whose code matches exactly.
func (s *InventoryService) Search(code string) (domain.Shoe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shoe := range s.shoes {
		if shoe.Code == code {
			return shoe, nil
		}
	}
	return domain.Shoe{}, domain.ErrNotFound
}

func (s *InventoryService) ValuePerItem() []domain.ItemValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([]domain.ItemValue, 0, len(s.shoes))
	for _, shoe := range s.shoes {
		values = append(values, domain.ItemValue{
			Product: shoe.Product,
			Code:    shoe.Code,
			Value:   shoe.Value(),
		})
	}
	return values
}

func (s *InventoryService) Highest() (domain.Shoe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	highest := -1
	for i, shoe := range s.shoes {
		if highest < 0 || shoe.Quantity > s.shoes[highest].Quantity {
			highest = i
		}
	}
	if highest < 0 {
		return domain.Shoe{}, domain.ErrEmptyInventory
	}
	return s.shoes[highest], nil
}

// lowestIndex returns -1 for an empty slice; ties go to the first record.
func lowestIndex(shoes []domain.Shoe) int {
	lowest := -1
	for i, shoe := range shoes {
		if lowest < 0 || shoe.Quantity < shoes[lowest].Quantity {
			lowest = i
		}
	}
	return lowest
}
