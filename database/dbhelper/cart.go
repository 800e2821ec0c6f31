package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"bistro/models"
	"bistro/store"
)

type Cart struct {
	db *sql.DB
}

func NewCart(db *sql.DB) *Cart {
	return &Cart{db: db}
}

var _ store.CartStore = (*Cart)(nil)

func (s *Cart) Lines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ci.id, ci.user_id, ci.menu_item_id, mi.title, ci.quantity, mi.price
		FROM cart_items ci
		JOIN menu_items mi ON mi.id = ci.menu_item_id
		WHERE ci.user_id = $1
		ORDER BY mi.title`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCartLines(rows)
}

func (s *Cart) Upsert(ctx context.Context, line models.CartItem) (models.CartItem, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, menu_item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, menu_item_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity`,
		line.UserID, line.MenuItemID, line.Quantity).
		Scan(&line.ID, &line.Quantity)
	return line, err
}

func (s *Cart) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func scanCartLines(rows *sql.Rows) ([]models.CartItem, error) {
	var lines []models.CartItem
	for rows.Next() {
		var line models.CartItem
		if err := rows.Scan(&line.ID, &line.UserID, &line.MenuItemID,
			&line.Title, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
