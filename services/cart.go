package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bistro/apperrors"
	"bistro/models"
	"bistro/store"
)

// Cart manages a single user's cart lines. Every operation is implicitly
// scoped to the calling user, so no guard check is needed here.
type Cart struct {
	Menu  store.MenuStore
	Store store.CartStore
}

func NewCart(menu store.MenuStore, carts store.CartStore) *Cart {
	return &Cart{Menu: menu, Store: carts}
}

func (s *Cart) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	lines, err := s.Store.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].LinePrice = lines[i].UnitPrice * float64(lines[i].Quantity)
	}
	if lines == nil {
		lines = []models.CartItem{}
	}
	return lines, nil
}

func (s *Cart) Add(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) (models.CartItem, error) {
	if menuItemID == uuid.Nil {
		return models.CartItem{}, apperrors.Validationf("menuitem_id is required")
	}
	if quantity <= 0 {
		return models.CartItem{}, apperrors.Validationf("quantity must be a positive integer")
	}

	item, err := s.Menu.MenuItemByID(ctx, menuItemID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.CartItem{}, apperrors.Validationf("unknown menu item")
	}
	if err != nil {
		return models.CartItem{}, err
	}

	line, err := s.Store.Upsert(ctx, models.CartItem{
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
	})
	if err != nil {
		return models.CartItem{}, err
	}
	line.Title = item.Title
	line.UnitPrice = item.Price
	line.LinePrice = line.UnitPrice * float64(line.Quantity)
	return line, nil
}

// Clear empties the user's cart. Clearing an already empty cart is a no-op.
func (s *Cart) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Store.Clear(ctx, userID)
}
