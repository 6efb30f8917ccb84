package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/app"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

func (h *Handler) getTaskLists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getTaskLists").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	lists, err := h.services.TaskService.Lists(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getTaskLists").Msg("error getting task lists")
		http.Error(w, app.MsgGettingTaskListsFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ListsResponse{Lists: lists}, http.StatusOK)
}

func (h *Handler) executeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.executeBatch").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.executeBatch").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if req.ClientVersion == 0 {
		log.Error().Str("func", "*Handler.executeBatch").Msg("client version is not specified")
		http.Error(w, service.ErrVersionIsNotSpecified.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.services.TaskService.ExecuteBatch(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.executeBatch").Int("actions", len(req.Actions)).Msg("error executing batch")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
