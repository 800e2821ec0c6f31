// Package store declares the data-access interfaces consumed by the service
// layer. Implementations take and return plain entity values; the Postgres
// implementation lives in database/dbhelper.
package store

import (
	"context"

	"github.com/google/uuid"

	"bistro/models"
)

type MenuStore interface {
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)

	MenuItems(ctx context.Context) ([]models.MenuItem, error)
	MenuItemByID(ctx context.Context, id uuid.UUID) (models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

type CartStore interface {
	// Lines returns the user's cart with unit prices resolved from the menu.
	Lines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	// Upsert creates the line or, if one exists for the same menu item,
	// increments its quantity. The returned line carries the summed quantity.
	Upsert(ctx context.Context, line models.CartItem) (models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// OrderTx is the set of operations available inside an order-placement
// transaction. Either all of them take effect or none do.
type OrderTx interface {
	CartLines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	InsertOrder(ctx context.Context, order models.Order) (models.Order, error)
	InsertOrderItem(ctx context.Context, item models.OrderItem) (models.OrderItem, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type OrderStore interface {
	InTx(ctx context.Context, fn func(tx OrderTx) error) error
	Get(ctx context.Context, id uuid.UUID) (models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)

	GroupMembers(ctx context.Context, group models.Group) ([]models.User, error)
	AddToGroup(ctx context.Context, userID uuid.UUID, group models.Group) error
	RemoveFromGroup(ctx context.Context, userID uuid.UUID, group models.Group) error
	InGroup(ctx context.Context, userID uuid.UUID, group models.Group) (bool, error)
}
