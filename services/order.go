package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bistro/apperrors"
	"bistro/authz"
	"bistro/events"
	"bistro/listing"
	"bistro/models"
	"bistro/store"
)

// Orders is the order placement engine and lifecycle manager.
type Orders struct {
	Store  store.OrderStore
	Users  store.UserStore
	Events events.Publisher
}

func NewOrders(orders store.OrderStore, users store.UserStore, publisher events.Publisher) *Orders {
	return &Orders{Store: orders, Users: users, Events: publisher}
}

// Place converts the user's cart into an order: the cart is read, the order
// and its items written, and the cart cleared inside a single transaction.
// An empty cart is rejected before anything is written.
func (s *Orders) Place(ctx context.Context, userID uuid.UUID) (models.Order, error) {
	var placed models.Order
	err := s.Store.InTx(ctx, func(tx store.OrderTx) error {
		lines, err := tx.CartLines(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperrors.Business("cart is empty")
		}

		order, err := tx.InsertOrder(ctx, models.Order{
			UserID:   userID,
			Status:   models.StatusPending,
			Total:    models.CartTotal(lines),
			PlacedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		for _, line := range lines {
			item, err := tx.InsertOrderItem(ctx, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
			})
			if err != nil {
				return err
			}
			item.Title = line.Title
			item.UnitPrice = line.UnitPrice
			item.LinePrice = item.UnitPrice * float64(item.Quantity)
			order.Items = append(order.Items, item)
		}

		if err := tx.ClearCart(ctx, userID); err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	s.publish(ctx, events.OrderPlaced, placed)
	return placed, nil
}

// Get returns the order with its itemized lines. Only the owner or an
// elevated actor may read it.
func (s *Orders) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (models.Order, error) {
	order, err := s.Store.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !authz.Can(actor, authz.ViewOrder, order.UserID) {
		return models.Order{}, apperrors.ErrForbidden
	}
	for i := range order.Items {
		order.Items[i].LinePrice = order.Items[i].UnitPrice * float64(order.Items[i].Quantity)
	}
	return order, nil
}

type OrderPatch struct {
	Status       *string    `json:"status"`
	DeliveryCrew *uuid.UUID `json:"delivery_crew"`
}

func (s *Orders) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, patch OrderPatch) (models.Order, error) {
	if !authz.Can(actor, authz.UpdateOrder, uuid.Nil) {
		return models.Order{}, apperrors.ErrForbidden
	}

	order, err := s.Store.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	statusChanged := false
	if patch.Status != nil {
		if !models.ValidOrderStatus(*patch.Status) {
			return models.Order{}, apperrors.Validationf("invalid status %q", *patch.Status)
		}
		statusChanged = order.Status != *patch.Status
		order.Status = *patch.Status
	}
	if patch.DeliveryCrew != nil {
		onCrew, err := s.Users.InGroup(ctx, *patch.DeliveryCrew, models.GroupDelivery)
		if err != nil {
			return models.Order{}, err
		}
		if !onCrew {
			return models.Order{}, apperrors.Validationf("user is not on the delivery crew")
		}
		order.DeliveryCrew = patch.DeliveryCrew
	}

	if err := s.Store.Update(ctx, order); err != nil {
		return models.Order{}, err
	}
	if statusChanged {
		s.publish(ctx, events.OrderStatusChanged, order)
	}
	return order, nil
}

// Delete removes an order and, by cascade, its items. Ownership alone is not
// enough; only managers and staff may delete.
func (s *Orders) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !authz.Can(actor, authz.DeleteOrder, uuid.Nil) {
		return apperrors.ErrForbidden
	}
	return s.Store.Delete(ctx, id)
}

var orderSortFields = map[string]func(a, b models.Order) int{
	"date":   func(a, b models.Order) int { return a.PlacedAt.Compare(b.PlacedAt) },
	"total":  func(a, b models.Order) int { return cmpFloat(a.Total, b.Total) },
	"status": func(a, b models.Order) int { return strings.Compare(a.Status, b.Status) },
}

// List returns the filtered, sorted, paginated collection of all orders.
// The search parameter matches order status, mirroring the menu search knob.
func (s *Orders) List(ctx context.Context, actor authz.Actor, p listing.Params) ([]models.Order, error) {
	if !authz.Can(actor, authz.ListAllOrders, uuid.Nil) {
		return nil, apperrors.ErrForbidden
	}

	orders, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if p.ToTotal != nil && order.Total > *p.ToTotal {
			continue
		}
		if p.Search != "" && !strings.EqualFold(order.Status, p.Search) {
			continue
		}
		filtered = append(filtered, order)
	}

	if err := listing.Sort(filtered, p.Ordering, orderSortFields); err != nil {
		return nil, err
	}
	return listing.Paginate(filtered, p.Page, p.PerPage), nil
}

func (s *Orders) publish(ctx context.Context, typ events.Type, order models.Order) {
	if s.Events == nil {
		return
	}
	ev := events.OrderEvent{
		Type:       typ,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishOrderEvent(ctx, ev); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
	}
}
