package handlers

import (
	"encoding/json"
	"net/http"

	"bistro/apperrors"
	"bistro/listing"
	"bistro/services"
	"bistro/utils"
)

func (api *API) ListOrders(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	params, err := listing.Parse(r.URL.Query())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	orders, err := api.Orders.List(r.Context(), act, params)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

func (api *API) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	order, err := api.Orders.Place(r.Context(), act.ID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, order)
}

func (api *API) GetOrder(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	order, err := api.Orders.Get(r.Context(), act, id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrder serves both PUT and PATCH; either may carry a partial patch of
// status and delivery crew assignment.
func (api *API) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	var patch services.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	order, err := api.Orders.Update(r.Context(), act, id, patch)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (api *API) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	if err := api.Orders.Delete(r.Context(), act, id); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
