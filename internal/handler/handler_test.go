package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"wavelink-server/internal/hub"

	"github.com/stretchr/testify/assert"
)

func newTestHandler() *WebsocketHandler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWebsocketHandler(hub.NewHub(nil, nil, log), log)
}

func TestHandleConnectionRequiresUserID(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	h.HandleConnection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleConnectionRejectsMalformedUserID(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/ws?userId=gopher", nil)
	rec := httptest.NewRecorder()
	h.HandleConnection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleConnectionRejectsPlainHTTP(t *testing.T) {
	h := newTestHandler()

	// Well-formed user id but no upgrade headers: the handshake must fail
	// without reaching the hub.
	req := httptest.NewRequest(http.MethodGet, "/ws?userId=7d9d94b7-9d08-4c24-8a7c-0f2f6a9a3c11", nil)
	rec := httptest.NewRecorder()
	h.HandleConnection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
