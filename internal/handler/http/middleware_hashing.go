package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/app"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// batchHashing checks that the hash of a batch request matches its action
// list. The hash is the keyed digest of the JSON encoded action_list, see
// [utils.HashActions]. The body is restored for the next handler.
func (h *Handler) batchHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.batchHashing").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var req models.BatchRequest
		if err = json.Unmarshal(body, &req); err != nil {
			log.Err(err).Str("func", "*Handler.batchHashing").Msg("failed to decode JSON")
			http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
			return
		}

		expected, err := utils.HashActions(req.Actions)
		if err != nil {
			log.Err(err).Str("func", "*Handler.batchHashing").Msg("failed to hash action list")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		if !utils.EqualHash(expected, req.Hash) {
			log.Error().Str("func", "*Handler.batchHashing").
				Str("hash from request", req.Hash).
				Int("actions", len(req.Actions)).
				Msg("batch hash mismatch")
			http.Error(w, app.MsgIntegrityCheckFailed, statusFromError(service.ErrBatchHashMismatch))
			return
		}

		next.ServeHTTP(w, r)
	})
}
