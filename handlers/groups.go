package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bistro/apperrors"
	"bistro/models"
	"bistro/utils"
)

func (api *API) ListGroupMembers(group models.Group) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		act, ok := actor(w, r)
		if !ok {
			return
		}
		members, err := api.Groups.Members(r.Context(), act, group)
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, members)
	}
}

func (api *API) AddGroupMember(group models.Group) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		act, ok := actor(w, r)
		if !ok {
			return
		}
		type request struct {
			Username string `json:"username"`
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, apperrors.Validationf("invalid request body"))
			return
		}
		user, err := api.Groups.Add(r.Context(), act, group, req.Username)
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusCreated, map[string]string{
			"message": fmt.Sprintf("%s added to %s group", user.Username, group),
		})
	}
}

func (api *API) RemoveGroupMember(group models.Group) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		act, ok := actor(w, r)
		if !ok {
			return
		}
		id, err := pathID(r)
		if err != nil {
			utils.RespondError(w, apperrors.ErrNotFound)
			return
		}
		if err := api.Groups.Remove(r.Context(), act, group, id); err != nil {
			utils.RespondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("user removed from %s group", group),
		})
	}
}
