package handlers

import (
	"encoding/json"
	"net/http"

	"bistro/apperrors"
	"bistro/listing"
	"bistro/services"
	"bistro/utils"
)

func (api *API) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	params, err := listing.Parse(r.URL.Query())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	items, err := api.Menu.List(r.Context(), params)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (api *API) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	var in services.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	item, err := api.Menu.Create(r.Context(), act, in)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, item)
}

func (api *API) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	item, err := api.Menu.Get(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (api *API) ReplaceMenuItem(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	var in services.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	item, err := api.Menu.Replace(r.Context(), act, id, in)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (api *API) PatchMenuItem(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	var patch services.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	item, err := api.Menu.Patch(r.Context(), act, id, patch)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (api *API) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	if err := api.Menu.Delete(r.Context(), act, id); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"})
}

func (api *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := api.Menu.Categories(r.Context())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, categories)
}

func (api *API) CreateCategory(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	var in services.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	category, err := api.Menu.CreateCategory(r.Context(), act, in)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, category)
}
