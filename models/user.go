package models

import (
	"time"

	"github.com/google/uuid"
)

type Group string

const (
	GroupManager  Group = "manager"
	GroupDelivery Group = "delivery"
)

func (g Group) IsValid() bool {
	return g == GroupManager || g == GroupDelivery
}

type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	IsStaff   bool      `db:"is_staff" json:"is_staff"`
	Groups    []Group   `db:"-" json:"groups,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (u User) InGroup(g Group) bool {
	for _, member := range u.Groups {
		if member == g {
			return true
		}
	}
	return false
}
