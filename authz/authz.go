// Package authz is the single authorization guard consulted by every
// privileged operation. Role membership and, for orders, resource ownership
// are the only signals it evaluates.
package authz

import (
	"github.com/google/uuid"

	"bistro/models"
)

type Action int

const (
	ManageMenu Action = iota
	ManageGroups
	ViewOrder
	UpdateOrder
	DeleteOrder
	ListAllOrders
)

// Actor is the acting identity extracted from the request's claims.
type Actor struct {
	ID      uuid.UUID
	IsStaff bool
	Groups  []models.Group
}

func (a Actor) InGroup(g models.Group) bool {
	for _, member := range a.Groups {
		if member == g {
			return true
		}
	}
	return false
}

// Elevated reports whether the actor holds administrative rights, either via
// the staff flag or manager group membership.
func (a Actor) Elevated() bool {
	return a.IsStaff || a.InGroup(models.GroupManager)
}

// Can reports whether the actor may perform action. ownerID is the owning
// user of the resource and is only consulted for ViewOrder; pass uuid.Nil
// for actions without an ownership component.
func Can(actor Actor, action Action, ownerID uuid.UUID) bool {
	switch action {
	case ManageMenu, ManageGroups, UpdateOrder, DeleteOrder, ListAllOrders:
		return actor.Elevated()
	case ViewOrder:
		return actor.ID == ownerID || actor.Elevated()
	}
	return false
}
