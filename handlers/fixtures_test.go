package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bistro/apperrors"
	"bistro/config"
	"bistro/events"
	"bistro/handlers"
	"bistro/models"
	"bistro/server"
	"bistro/services"
	"bistro/store"
	"bistro/utils"
)

func init() {
	config.SecretKey = []byte("test-secret")
}

// memDB is a single in-memory backing store implementing every repository
// interface the handlers reach.
type memDB struct {
	categories []models.Category
	items      []models.MenuItem
	carts      map[uuid.UUID][]models.CartItem
	orders     []models.Order
	users      []models.User
}

var (
	_ store.MenuStore  = (*memDB)(nil)
	_ store.CartStore  = (*memDB)(nil)
	_ store.OrderStore = (*memDB)(nil)
	_ store.UserStore  = (*memDB)(nil)
)

func newMemDB() *memDB {
	return &memDB{carts: make(map[uuid.UUID][]models.CartItem)}
}

func (db *memDB) Categories(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), db.categories...), nil
}

func (db *memDB) CategoryByID(_ context.Context, id uuid.UUID) (models.Category, error) {
	for _, c := range db.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, apperrors.ErrNotFound
}

func (db *memDB) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	c.ID = uuid.New()
	db.categories = append(db.categories, c)
	return c, nil
}

func (db *memDB) MenuItems(context.Context) ([]models.MenuItem, error) {
	return append([]models.MenuItem(nil), db.items...), nil
}

func (db *memDB) MenuItemByID(_ context.Context, id uuid.UUID) (models.MenuItem, error) {
	for _, item := range db.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, apperrors.ErrNotFound
}

func (db *memDB) CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	category, err := db.CategoryByID(ctx, item.CategoryID)
	if err != nil {
		return models.MenuItem{}, err
	}
	item.ID = uuid.New()
	item.Category = category
	db.items = append(db.items, item)
	return item, nil
}

func (db *memDB) UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	for i := range db.items {
		if db.items[i].ID == item.ID {
			category, err := db.CategoryByID(ctx, item.CategoryID)
			if err != nil {
				return models.MenuItem{}, err
			}
			item.Category = category
			db.items[i] = item
			return item, nil
		}
	}
	return models.MenuItem{}, apperrors.ErrNotFound
}

func (db *memDB) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	for i := range db.items {
		if db.items[i].ID == id {
			db.items = append(db.items[:i], db.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (db *memDB) Lines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var lines []models.CartItem
	for _, line := range db.carts[userID] {
		if item, err := db.MenuItemByID(ctx, line.MenuItemID); err == nil {
			line.Title = item.Title
			line.UnitPrice = item.Price
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (db *memDB) Upsert(_ context.Context, line models.CartItem) (models.CartItem, error) {
	existing := db.carts[line.UserID]
	for i := range existing {
		if existing[i].MenuItemID == line.MenuItemID {
			existing[i].Quantity += line.Quantity
			return existing[i], nil
		}
	}
	line.ID = uuid.New()
	db.carts[line.UserID] = append(existing, line)
	return line, nil
}

func (db *memDB) Clear(_ context.Context, userID uuid.UUID) error {
	delete(db.carts, userID)
	return nil
}

// InTx snapshots cart and order state and restores it if fn fails, so the
// handler tests observe real commit-or-discard behavior.
func (db *memDB) InTx(_ context.Context, fn func(tx store.OrderTx) error) error {
	carts := make(map[uuid.UUID][]models.CartItem, len(db.carts))
	for userID, lines := range db.carts {
		carts[userID] = append([]models.CartItem(nil), lines...)
	}
	orders := append([]models.Order(nil), db.orders...)

	if err := fn((*memTx)(db)); err != nil {
		db.carts = carts
		db.orders = orders
		return err
	}
	return nil
}

type memTx memDB

func (tx *memTx) CartLines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return (*memDB)(tx).Lines(ctx, userID)
}

func (tx *memTx) InsertOrder(_ context.Context, order models.Order) (models.Order, error) {
	order.ID = uuid.New()
	tx.orders = append(tx.orders, order)
	return order, nil
}

func (tx *memTx) InsertOrderItem(_ context.Context, item models.OrderItem) (models.OrderItem, error) {
	item.ID = uuid.New()
	for i := range tx.orders {
		if tx.orders[i].ID == item.OrderID {
			tx.orders[i].Items = append(tx.orders[i].Items, item)
		}
	}
	return item, nil
}

func (tx *memTx) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return (*memDB)(tx).Clear(ctx, userID)
}

func (db *memDB) Get(_ context.Context, id uuid.UUID) (models.Order, error) {
	for _, order := range db.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return models.Order{}, apperrors.ErrNotFound
}

func (db *memDB) List(context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), db.orders...), nil
}

func (db *memDB) Update(_ context.Context, order models.Order) error {
	for i := range db.orders {
		if db.orders[i].ID == order.ID {
			db.orders[i] = order
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (db *memDB) Delete(_ context.Context, id uuid.UUID) error {
	for i := range db.orders {
		if db.orders[i].ID == id {
			db.orders = append(db.orders[:i], db.orders[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (db *memDB) Create(_ context.Context, user models.User) (models.User, error) {
	user.ID = uuid.New()
	db.users = append(db.users, user)
	return user, nil
}

func (db *memDB) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrNotFound
}

func (db *memDB) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrNotFound
}

func (db *memDB) UsernameTaken(_ context.Context, username string) (bool, error) {
	_, err := db.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (db *memDB) GroupMembers(_ context.Context, group models.Group) ([]models.User, error) {
	var members []models.User
	for _, u := range db.users {
		if u.InGroup(group) {
			members = append(members, u)
		}
	}
	return members, nil
}

func (db *memDB) AddToGroup(_ context.Context, userID uuid.UUID, group models.Group) error {
	for i := range db.users {
		if db.users[i].ID == userID {
			if !db.users[i].InGroup(group) {
				db.users[i].Groups = append(db.users[i].Groups, group)
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (db *memDB) RemoveFromGroup(_ context.Context, userID uuid.UUID, group models.Group) error {
	for i := range db.users {
		if db.users[i].ID != userID {
			continue
		}
		for j, g := range db.users[i].Groups {
			if g == group {
				db.users[i].Groups = append(db.users[i].Groups[:j], db.users[i].Groups[j+1:]...)
				return nil
			}
		}
		return apperrors.ErrNotFound
	}
	return apperrors.ErrNotFound
}

func (db *memDB) SetPassword(userID uuid.UUID, hashed string) {
	for i := range db.users {
		if db.users[i].ID == userID {
			db.users[i].Password = hashed
		}
	}
}

func (db *memDB) InGroup(_ context.Context, userID uuid.UUID, group models.Group) (bool, error) {
	for _, u := range db.users {
		if u.ID == userID {
			return u.InGroup(group), nil
		}
	}
	return false, nil
}

type testServer struct {
	db     *memDB
	router http.Handler
}

func newTestServer() *testServer {
	db := newMemDB()
	api := handlers.New(
		services.NewMenu(db),
		services.NewCart(db, db),
		services.NewOrders(db, db, events.NopPublisher{}),
		services.NewGroups(db),
		db,
	)
	return &testServer{db: db, router: server.SetupRoutes(api).Router}
}

func (ts *testServer) seedUser(username string, staff bool, groups ...models.Group) models.User {
	user := models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		IsStaff:  staff,
		Groups:   groups,
	}
	ts.db.users = append(ts.db.users, user)
	return user
}

func (ts *testServer) seedMenu(t *testing.T) (models.Category, []models.MenuItem) {
	t.Helper()
	category := models.Category{ID: uuid.New(), Slug: "mains", Title: "Mains"}
	ts.db.categories = append(ts.db.categories, category)
	burger := models.MenuItem{ID: uuid.New(), Title: "Burger", Price: 10, CategoryID: category.ID, Category: category}
	pasta := models.MenuItem{ID: uuid.New(), Title: "Pasta", Price: 12, CategoryID: category.ID, Category: category}
	ts.db.items = append(ts.db.items, burger, pasta)
	return category, []models.MenuItem{burger, pasta}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, as *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if as != nil {
		token, err := utils.GenerateAccessToken(*as)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}
