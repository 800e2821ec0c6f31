package models

import (
	"github.com/google/uuid"
)

type Category struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Slug  string    `db:"slug" json:"slug"`
	Title string    `db:"title" json:"title"`
}

type MenuItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Price      float64   `db:"price" json:"price"`
	Featured   bool      `db:"featured" json:"featured"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Category   Category  `db:"-" json:"category"`
}
