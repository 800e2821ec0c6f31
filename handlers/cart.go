package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"bistro/apperrors"
	"bistro/utils"
)

func (api *API) GetCart(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	lines, err := api.Cart.List(r.Context(), act.ID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, lines)
}

func (api *API) AddToCart(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	type request struct {
		MenuItemID uuid.UUID `json:"menuitem_id"`
		Quantity   int       `json:"quantity"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	line, err := api.Cart.Add(r.Context(), act.ID, req.MenuItemID, req.Quantity)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, line)
}

func (api *API) ClearCart(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	if err := api.Cart.Clear(r.Context(), act.ID); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
