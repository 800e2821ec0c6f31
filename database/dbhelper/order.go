package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"bistro/apperrors"
	"bistro/database"
	"bistro/models"
	"bistro/store"
)

type Orders struct {
	db *sql.DB
}

func NewOrders(db *sql.DB) *Orders {
	return &Orders{db: db}
}

var _ store.OrderStore = (*Orders)(nil)

// InTx runs fn against a transactional view of the order tables. The cart
// read, order insert and cart clear commit together or not at all.
func (s *Orders) InTx(ctx context.Context, fn func(tx store.OrderTx) error) error {
	return database.Tx(s.db, func(tx *sql.Tx) error {
		return fn(&orderTx{tx: tx})
	})
}

func (s *Orders) Get(ctx context.Context, id uuid.UUID) (models.Order, error) {
	var order models.Order
	var crew uuid.NullUUID
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, delivery_crew_id, status, total, placed_at
		FROM orders
		WHERE id = $1`, id).
		Scan(&order.ID, &order.UserID, &crew,
			&order.Status, &order.Total, &order.PlacedAt)
	if err == sql.ErrNoRows {
		return models.Order{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	if crew.Valid {
		order.DeliveryCrew = &crew.UUID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, mi.title, oi.quantity, mi.price
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY mi.title`, id)
	if err != nil {
		return models.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID,
			&item.Title, &item.Quantity, &item.UnitPrice); err != nil {
			return models.Order{}, err
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (s *Orders) List(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, delivery_crew_id, status, total, placed_at
		FROM orders
		ORDER BY placed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var crew uuid.NullUUID
		if err := rows.Scan(&order.ID, &order.UserID, &crew,
			&order.Status, &order.Total, &order.PlacedAt); err != nil {
			return nil, err
		}
		if crew.Valid {
			order.DeliveryCrew = &crew.UUID
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (s *Orders) Update(ctx context.Context, order models.Order) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, delivery_crew_id = $2
		WHERE id = $3`,
		order.Status, nullableUUID(order.DeliveryCrew), order.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Orders) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type orderTx struct {
	tx *sql.Tx
}

var _ store.OrderTx = (*orderTx)(nil)

func (t *orderTx) CartLines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT ci.id, ci.user_id, ci.menu_item_id, mi.title, ci.quantity, mi.price
		FROM cart_items ci
		JOIN menu_items mi ON mi.id = ci.menu_item_id
		WHERE ci.user_id = $1
		ORDER BY mi.title
		FOR UPDATE OF ci`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCartLines(rows)
}

func (t *orderTx) InsertOrder(ctx context.Context, order models.Order) (models.Order, error) {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, delivery_crew_id, status, total, placed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		order.UserID, nullableUUID(order.DeliveryCrew), order.Status, order.Total, order.PlacedAt).
		Scan(&order.ID)
	return order, err
}

func (t *orderTx) InsertOrderItem(ctx context.Context, item models.OrderItem) (models.OrderItem, error) {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`,
		item.OrderID, item.MenuItemID, item.Quantity).
		Scan(&item.ID)
	return item, err
}

func (t *orderTx) ClearCart(ctx context.Context, userID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
