package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"bistro/authz"
	"bistro/middlewares"
)

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// pathID extracts the {id} route variable as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

// actor pulls the authenticated actor out of the request, writing a 401 and
// returning false when no valid claims are present.
func actor(w http.ResponseWriter, r *http.Request) (authz.Actor, bool) {
	a, err := middlewares.Actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return authz.Actor{}, false
	}
	return a, true
}
