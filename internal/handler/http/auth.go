package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/app"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// login authenticates an account and returns the session token in the
// Authorization header. The body carries the protocol version the client
// has to send with every batch.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		case errors.Is(err, service.ErrWrongSecret):
			log.Err(err).Str("user", account.Name).Msg("wrong secret")
			http.Error(w, app.MsgInvalidUserSecret, http.StatusUnauthorized)
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		}
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		User:          user.Login,
		ClientVersion: h.services.AppInfoService.ClientVersion(ctx),
	}, http.StatusOK)
}
