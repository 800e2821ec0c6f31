package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bistro/handlers"
	"bistro/middlewares"
	"bistro/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(api *handlers.API) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.HandleFunc("/register", api.Register).Methods("POST")
	router.HandleFunc("/login", api.Login).Methods("POST")
	router.HandleFunc("/refresh", api.RefreshToken).Methods("POST")

	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)
	authRoutes.HandleFunc("/logout", api.Logout).Methods("POST")

	authRoutes.HandleFunc("/menu-items", api.ListMenuItems).Methods("GET")
	authRoutes.HandleFunc("/menu-items", api.CreateMenuItem).Methods("POST")
	authRoutes.HandleFunc("/menu-items/{id}", api.GetMenuItem).Methods("GET")
	authRoutes.HandleFunc("/menu-items/{id}", api.ReplaceMenuItem).Methods("PUT")
	authRoutes.HandleFunc("/menu-items/{id}", api.PatchMenuItem).Methods("PATCH")
	authRoutes.HandleFunc("/menu-items/{id}", api.DeleteMenuItem).Methods("DELETE")

	authRoutes.HandleFunc("/categories", api.ListCategories).Methods("GET")
	authRoutes.HandleFunc("/categories", api.CreateCategory).Methods("POST")

	authRoutes.HandleFunc("/groups/manager/users", api.ListGroupMembers(models.GroupManager)).Methods("GET")
	authRoutes.HandleFunc("/groups/manager/users", api.AddGroupMember(models.GroupManager)).Methods("POST")
	authRoutes.HandleFunc("/groups/manager/users/{id}", api.RemoveGroupMember(models.GroupManager)).Methods("DELETE")
	authRoutes.HandleFunc("/groups/delivery-crew/users", api.ListGroupMembers(models.GroupDelivery)).Methods("GET")
	authRoutes.HandleFunc("/groups/delivery-crew/users", api.AddGroupMember(models.GroupDelivery)).Methods("POST")
	authRoutes.HandleFunc("/groups/delivery-crew/users/{id}", api.RemoveGroupMember(models.GroupDelivery)).Methods("DELETE")

	authRoutes.HandleFunc("/cart/menu-items", api.GetCart).Methods("GET")
	authRoutes.HandleFunc("/cart/menu-items", api.AddToCart).Methods("POST")
	authRoutes.HandleFunc("/cart/menu-items", api.ClearCart).Methods("DELETE")

	authRoutes.HandleFunc("/orders", api.ListOrders).Methods("GET")
	authRoutes.HandleFunc("/orders", api.PlaceOrder).Methods("POST")
	authRoutes.HandleFunc("/orders/{id}", api.GetOrder).Methods("GET")
	authRoutes.HandleFunc("/orders/{id}", api.UpdateOrder).Methods("PUT", "PATCH")
	authRoutes.HandleFunc("/orders/{id}", api.DeleteOrder).Methods("DELETE")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(addr string) error {
	svr.server = &http.Server{
		Addr:              addr,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
