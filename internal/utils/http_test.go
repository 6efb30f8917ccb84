package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── WriteJSON ──

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		statusCode int
		wantBody   string
	}{
		{
			name:       "lists response",
			data:       models.ListsResponse{Lists: []models.RemoteEntity{}},
			statusCode: http.StatusOK,
			wantBody:   `{"lists":[]}`,
		},
		{
			name:       "nil",
			data:       nil,
			statusCode: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name:       "custom status",
			data:       map[string]string{"error": "not found"},
			statusCode: http.StatusNotFound,
			wantBody:   `{"error":"not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.statusCode)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ── HTTPClient ──

func TestNewHTTPClient(t *testing.T) {
	var gotAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	resp, err := client.R().Get("/api/version")

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "notes-sync-client", gotAgent)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, time.Second, client.GetClient().Timeout)
}

func TestNewHTTPClient_NoTimeout(t *testing.T) {
	client := NewHTTPClient("http://localhost:8080", 0)

	assert.Equal(t, "http://localhost:8080", client.BaseURL)
	assert.Zero(t, client.GetClient().Timeout)
}

func TestNewHTTPClient_Independent(t *testing.T) {
	a := NewHTTPClient("http://a", 0)
	b := NewHTTPClient("http://b", 0)

	assert.NotSame(t, a.Client, b.Client)
}
