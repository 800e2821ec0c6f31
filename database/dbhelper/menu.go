package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"bistro/apperrors"
	"bistro/models"
	"bistro/store"
)

type Menu struct {
	db *sql.DB
}

func NewMenu(db *sql.DB) *Menu {
	return &Menu{db: db}
}

var _ store.MenuStore = (*Menu)(nil)

func (s *Menu) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, title
		FROM categories
		ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Menu) CategoryByID(ctx context.Context, id uuid.UUID) (models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, slug, title
		FROM categories
		WHERE id = $1`, id).
		Scan(&c.ID, &c.Slug, &c.Title)
	if err == sql.ErrNoRows {
		return models.Category{}, apperrors.ErrNotFound
	}
	return c, err
}

func (s *Menu) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (slug, title)
		VALUES ($1, $2)
		RETURNING id`, c.Slug, c.Title).
		Scan(&c.ID)
	return c, err
}

const menuItemColumns = `
	mi.id, mi.title, mi.price, mi.featured, mi.category_id, c.slug, c.title`

func scanMenuItem(row interface{ Scan(dest ...interface{}) error }) (models.MenuItem, error) {
	var item models.MenuItem
	err := row.Scan(&item.ID, &item.Title, &item.Price, &item.Featured,
		&item.CategoryID, &item.Category.Slug, &item.Category.Title)
	item.Category.ID = item.CategoryID
	return item, err
}

func (s *Menu) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		ORDER BY mi.title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Menu) MenuItemByID(ctx context.Context, id uuid.UUID) (models.MenuItem, error) {
	item, err := scanMenuItem(s.db.QueryRowContext(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE mi.id = $1`, id))
	if err == sql.ErrNoRows {
		return models.MenuItem{}, apperrors.ErrNotFound
	}
	return item, err
}

func (s *Menu) CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (title, price, featured, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, item.Title, item.Price, item.Featured, item.CategoryID).
		Scan(&item.ID)
	if err != nil {
		return models.MenuItem{}, err
	}
	return s.MenuItemByID(ctx, item.ID)
}

func (s *Menu) UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE menu_items
		SET title = $1, price = $2, featured = $3, category_id = $4
		WHERE id = $5`,
		item.Title, item.Price, item.Featured, item.CategoryID, item.ID)
	if err != nil {
		return models.MenuItem{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.MenuItem{}, err
	}
	if affected == 0 {
		return models.MenuItem{}, apperrors.ErrNotFound
	}
	return s.MenuItemByID(ctx, item.ID)
}

func (s *Menu) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
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
