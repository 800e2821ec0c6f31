package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending        = "pending"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
)

func ValidOrderStatus(s string) bool {
	return s == StatusPending || s == StatusOutForDelivery || s == StatusDelivered
}

// CartItem is one pending line of a user's cart. UnitPrice and LinePrice are
// derived from the referenced menu item, never stored.
type CartItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menuitem_id"`
	Title      string    `db:"title" json:"title"`
	Quantity   int       `db:"quantity" json:"quantity"`
	UnitPrice  float64   `db:"unit_price" json:"unit_price"`
	LinePrice  float64   `db:"-" json:"price"`
}

type Order struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	UserID       uuid.UUID   `db:"user_id" json:"user_id"`
	DeliveryCrew *uuid.UUID  `db:"delivery_crew_id" json:"delivery_crew,omitempty"`
	Status       string      `db:"status" json:"status"`
	Total        float64     `db:"total" json:"total"`
	PlacedAt     time.Time   `db:"placed_at" json:"date"`
	Items        []OrderItem `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrderID    uuid.UUID `db:"order_id" json:"order_id"`
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menuitem_id"`
	Title      string    `db:"title" json:"title"`
	Quantity   int       `db:"quantity" json:"quantity"`
	UnitPrice  float64   `db:"unit_price" json:"unit_price"`
	LinePrice  float64   `db:"-" json:"price"`
}

// CartTotal sums unit price times quantity over the given cart lines. The
// result becomes an order's total at placement time.
func CartTotal(lines []CartItem) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}
