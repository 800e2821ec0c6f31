package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"bistro/apperrors"
	"bistro/events"
	"bistro/models"
	"bistro/store"
)

type fakeMenuStore struct {
	categories []models.Category
	items      []models.MenuItem
}

var _ store.MenuStore = (*fakeMenuStore)(nil)

func (s *fakeMenuStore) addCategory(title string) models.Category {
	c := models.Category{ID: uuid.New(), Slug: title, Title: title}
	s.categories = append(s.categories, c)
	return c
}

func (s *fakeMenuStore) addItem(title string, price float64, category models.Category) models.MenuItem {
	item := models.MenuItem{
		ID:         uuid.New(),
		Title:      title,
		Price:      price,
		CategoryID: category.ID,
		Category:   category,
	}
	s.items = append(s.items, item)
	return item
}

func (s *fakeMenuStore) Categories(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), s.categories...), nil
}

func (s *fakeMenuStore) CategoryByID(_ context.Context, id uuid.UUID) (models.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, apperrors.ErrNotFound
}

func (s *fakeMenuStore) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	c.ID = uuid.New()
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *fakeMenuStore) MenuItems(context.Context) ([]models.MenuItem, error) {
	return append([]models.MenuItem(nil), s.items...), nil
}

func (s *fakeMenuStore) MenuItemByID(_ context.Context, id uuid.UUID) (models.MenuItem, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, apperrors.ErrNotFound
}

func (s *fakeMenuStore) CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	category, err := s.CategoryByID(ctx, item.CategoryID)
	if err != nil {
		return models.MenuItem{}, err
	}
	item.ID = uuid.New()
	item.Category = category
	s.items = append(s.items, item)
	return item, nil
}

func (s *fakeMenuStore) UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			category, err := s.CategoryByID(ctx, item.CategoryID)
			if err != nil {
				return models.MenuItem{}, err
			}
			item.Category = category
			s.items[i] = item
			return item, nil
		}
	}
	return models.MenuItem{}, apperrors.ErrNotFound
}

func (s *fakeMenuStore) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeCartStore struct {
	menu  *fakeMenuStore
	lines map[uuid.UUID][]models.CartItem
}

var _ store.CartStore = (*fakeCartStore)(nil)

func newFakeCartStore(menu *fakeMenuStore) *fakeCartStore {
	return &fakeCartStore{menu: menu, lines: make(map[uuid.UUID][]models.CartItem)}
}

func (s *fakeCartStore) resolve(line models.CartItem) models.CartItem {
	for _, item := range s.menu.items {
		if item.ID == line.MenuItemID {
			line.Title = item.Title
			line.UnitPrice = item.Price
		}
	}
	return line
}

func (s *fakeCartStore) Lines(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var resolved []models.CartItem
	for _, line := range s.lines[userID] {
		resolved = append(resolved, s.resolve(line))
	}
	return resolved, nil
}

func (s *fakeCartStore) Upsert(_ context.Context, line models.CartItem) (models.CartItem, error) {
	existing := s.lines[line.UserID]
	for i := range existing {
		if existing[i].MenuItemID == line.MenuItemID {
			existing[i].Quantity += line.Quantity
			return existing[i], nil
		}
	}
	line.ID = uuid.New()
	s.lines[line.UserID] = append(existing, line)
	return line, nil
}

func (s *fakeCartStore) Clear(_ context.Context, userID uuid.UUID) error {
	delete(s.lines, userID)
	return nil
}

// fakeOrderStore implements store.OrderStore over the fake cart so that
// placement transactions behave like the real thing: mutations inside a
// failed transaction are discarded.
type fakeOrderStore struct {
	cart   *fakeCartStore
	orders []models.Order

	failAfterItems int // fail InsertOrderItem once this many items inserted; 0 disables
}

var _ store.OrderStore = (*fakeOrderStore)(nil)

func newFakeOrderStore(cart *fakeCartStore) *fakeOrderStore {
	return &fakeOrderStore{cart: cart}
}

func (s *fakeOrderStore) InTx(_ context.Context, fn func(tx store.OrderTx) error) error {
	tx := &fakeOrderTx{store: s, cartLines: make(map[uuid.UUID][]models.CartItem)}
	for userID, lines := range s.cart.lines {
		tx.cartLines[userID] = append([]models.CartItem(nil), lines...)
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.orders = append(s.orders, tx.orders...)
	s.cart.lines = tx.cartLines
	return nil
}

func (s *fakeOrderStore) Get(_ context.Context, id uuid.UUID) (models.Order, error) {
	for _, order := range s.orders {
		if order.ID == id {
			// Like the real store's Get, item titles and unit prices come
			// from the menu, not from the stored rows.
			items := append([]models.OrderItem(nil), order.Items...)
			for i := range items {
				for _, mi := range s.cart.menu.items {
					if mi.ID == items[i].MenuItemID {
						items[i].Title = mi.Title
						items[i].UnitPrice = mi.Price
					}
				}
			}
			order.Items = items
			return order, nil
		}
	}
	return models.Order{}, apperrors.ErrNotFound
}

func (s *fakeOrderStore) List(context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), s.orders...), nil
}

func (s *fakeOrderStore) Update(_ context.Context, order models.Order) error {
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = order
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *fakeOrderStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeOrderTx struct {
	store     *fakeOrderStore
	cartLines map[uuid.UUID][]models.CartItem
	orders    []models.Order
	inserted  int
}

var _ store.OrderTx = (*fakeOrderTx)(nil)

func (t *fakeOrderTx) CartLines(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var resolved []models.CartItem
	for _, line := range t.cartLines[userID] {
		resolved = append(resolved, t.store.cart.resolve(line))
	}
	return resolved, nil
}

func (t *fakeOrderTx) InsertOrder(_ context.Context, order models.Order) (models.Order, error) {
	order.ID = uuid.New()
	t.orders = append(t.orders, order)
	return order, nil
}

func (t *fakeOrderTx) InsertOrderItem(_ context.Context, item models.OrderItem) (models.OrderItem, error) {
	if t.store.failAfterItems > 0 && t.inserted >= t.store.failAfterItems {
		return models.OrderItem{}, errors.New("insert order item: connection reset")
	}
	t.inserted++
	item.ID = uuid.New()
	for i := range t.orders {
		if t.orders[i].ID == item.OrderID {
			t.orders[i].Items = append(t.orders[i].Items, item)
		}
	}
	return item, nil
}

func (t *fakeOrderTx) ClearCart(_ context.Context, userID uuid.UUID) error {
	delete(t.cartLines, userID)
	return nil
}

type fakeUserStore struct {
	users []models.User
}

var _ store.UserStore = (*fakeUserStore)(nil)

func (s *fakeUserStore) addUser(username string, groups ...models.Group) models.User {
	user := models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Groups:   groups,
	}
	s.users = append(s.users, user)
	return user
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) (models.User, error) {
	user.ID = uuid.New()
	s.users = append(s.users, user)
	return user, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrNotFound
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrNotFound
}

func (s *fakeUserStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) GroupMembers(_ context.Context, group models.Group) ([]models.User, error) {
	var members []models.User
	for _, u := range s.users {
		if u.InGroup(group) {
			members = append(members, u)
		}
	}
	return members, nil
}

func (s *fakeUserStore) AddToGroup(_ context.Context, userID uuid.UUID, group models.Group) error {
	for i := range s.users {
		if s.users[i].ID == userID {
			if !s.users[i].InGroup(group) {
				s.users[i].Groups = append(s.users[i].Groups, group)
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *fakeUserStore) RemoveFromGroup(_ context.Context, userID uuid.UUID, group models.Group) error {
	for i := range s.users {
		if s.users[i].ID != userID {
			continue
		}
		for j, g := range s.users[i].Groups {
			if g == group {
				s.users[i].Groups = append(s.users[i].Groups[:j], s.users[i].Groups[j+1:]...)
				return nil
			}
		}
		return apperrors.ErrNotFound
	}
	return apperrors.ErrNotFound
}

func (s *fakeUserStore) InGroup(_ context.Context, userID uuid.UUID, group models.Group) (bool, error) {
	for _, u := range s.users {
		if u.ID == userID {
			return u.InGroup(group), nil
		}
	}
	return false, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

var _ events.Publisher = (*fakePublisher)(nil)

func (p *fakePublisher) PublishOrderEvent(_ context.Context, ev events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) Close() error { return nil }
