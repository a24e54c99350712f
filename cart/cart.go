package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/codedevify/Urbansolz/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrVariantRequired = errors.New("a size must be selected for this product")
	ErrBadIndex        = errors.New("no cart line at that index")
)

// Item is one line of a session cart. Lines with the same product but a
// different variant are distinct lines.
type Item struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	Variant         string  `json:"variant,omitempty"`
	RequiresVariant bool    `json:"requires_variant,omitempty"`
}

// DisplayName is the buyer-facing label, carrying the variant when present.
func (i Item) DisplayName() string {
	if i.Variant != "" {
		return fmt.Sprintf("%s (Size %s)", i.Name, i.Variant)
	}
	return i.Name
}

// Store keeps the full line slice per cart session.
type Store interface {
	Get(ctx context.Context, sessionID string) ([]Item, error)
	Save(ctx context.Context, sessionID string, items []Item) error
	Delete(ctx context.Context, sessionID string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add puts a product into the session cart. Lines are merged only when both
// the product and the variant match exactly; otherwise a new line is appended.
func (s *Service) Add(ctx context.Context, sessionID string, p models.Product, quantity int, variant string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	requiresVariant := p.Category.HasVariantDimension()
	if requiresVariant && variant == "" {
		return ErrVariantRequired
	}
	if !requiresVariant {
		variant = ""
	}

	items, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	productID := p.ID.Hex()
	merged := false
	for i := range items {
		if items[i].ProductID == productID && items[i].Variant == variant {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{
			ProductID:       productID,
			Name:            p.Name,
			UnitPrice:       p.Price,
			Quantity:        quantity,
			Variant:         variant,
			RequiresVariant: requiresVariant,
		})
	}

	return s.store.Save(ctx, sessionID, items)
}

// UpdateVariant changes the variant of an existing line. Clearing the variant
// is rejected when the product's category requires one.
func (s *Service) UpdateVariant(ctx context.Context, sessionID string, index int, variant string) error {
	items, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return ErrBadIndex
	}
	if items[index].RequiresVariant && variant == "" {
		return ErrVariantRequired
	}
	if !items[index].RequiresVariant {
		variant = ""
	}
	items[index].Variant = variant
	return s.store.Save(ctx, sessionID, items)
}

// Remove drops the line at index.
func (s *Service) Remove(ctx context.Context, sessionID string, index int) error {
	items, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return ErrBadIndex
	}
	items = append(items[:index], items[index+1:]...)
	return s.store.Save(ctx, sessionID, items)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) Items(ctx context.Context, sessionID string) ([]Item, error) {
	return s.store.Get(ctx, sessionID)
}

// Total sums unit price times quantity in major currency units.
func (s *Service) Total(ctx context.Context, sessionID string) (float64, error) {
	items, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	total, _ := sum.Float64()
	return total, nil
}
