package handlers

import (
	"bistro/services"
	"bistro/store"
)

// API bundles the services the HTTP handlers dispatch to.
type API struct {
	Menu   *services.Menu
	Cart   *services.Cart
	Orders *services.Orders
	Groups *services.Groups
	Users  store.UserStore
}

func New(menu *services.Menu, cart *services.Cart, orders *services.Orders, groups *services.Groups, users store.UserStore) *API {
	return &API{
		Menu:   menu,
		Cart:   cart,
		Orders: orders,
		Groups: groups,
		Users:  users,
	}
}
