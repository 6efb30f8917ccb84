// Package http is the HTTP transport of the task service: routing,
// bearer authentication, batch integrity checks, gzip, request logging
// and trace ids. Handlers decode the wire models and forward them to the
// service layer.
package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

// auth accepts requests carrying "Authorization: Bearer <token>" with a
// token the AuthService can parse, and puts the user id into the request
// context with [utils.WithUserID]. Everything else gets 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("token rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthorization
	}
	return utils.ParseBearerToken(header)
}
