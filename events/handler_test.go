package events

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evenza/globals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postEvent(t *testing.T, body []byte, withUser bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/event/one", bytes.NewReader(body))
	if withUser {
		req = req.WithContext(context.WithValue(req.Context(), globals.UserIDKey, "owner1"))
	}
	rec := httptest.NewRecorder()
	CreateEventHandler(rec, req, nil)
	return rec
}

func swapStore(t *testing.T, store Store) {
	t.Helper()
	old := DataStore
	DataStore = store
	t.Cleanup(func() { DataStore = old })
}

func TestCreateEventHandlerCreated(t *testing.T) {
	store := newFakeStore()
	swapStore(t, store)

	d := testDraft()
	// Keep the dates valid relative to the real clock the handler uses.
	d.StartDateTime = time.Now().AddDate(0, 0, 30)
	d.EndDateTime = d.StartDateTime.Add(4 * time.Hour)
	body, err := json.Marshal(d)
	require.NoError(t, err)

	rec := postEvent(t, body, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success  bool     `json:"success"`
		EventID  string   `json:"eventId"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.EventID)
	assert.Empty(t, resp.Warnings)
}

func TestCreateEventHandlerWarnings(t *testing.T) {
	store := newFakeStore()
	store.listingErr = assert.AnError
	swapStore(t, store)

	d := testDraft()
	d.StartDateTime = time.Now().AddDate(0, 0, 30)
	d.EndDateTime = d.StartDateTime.Add(4 * time.Hour)
	body, _ := json.Marshal(d)

	rec := postEvent(t, body, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	warnings, ok := resp["warnings"].([]any)
	require.True(t, ok, "warnings present when a secondary step fails")
	assert.Len(t, warnings, 1)
}

func TestCreateEventHandlerBadJSON(t *testing.T) {
	swapStore(t, newFakeStore())
	rec := postEvent(t, []byte("{not json"), true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_body", resp["error"])
}

func TestCreateEventHandlerValidation(t *testing.T) {
	swapStore(t, newFakeStore())

	d := testDraft()
	d.StartDateTime = time.Now().AddDate(0, 0, 30)
	d.EndDateTime = d.StartDateTime.Add(4 * time.Hour)
	d.Tickets = nil // pricing enabled with no tiers
	body, _ := json.Marshal(d)

	rec := postEvent(t, body, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp["error"])
}

func TestCreateEventHandlerMissingUser(t *testing.T) {
	swapStore(t, newFakeStore())
	rec := postEvent(t, []byte("{}"), false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEventHandlerStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.insertErr = assert.AnError
	swapStore(t, store)

	d := testDraft()
	d.StartDateTime = time.Now().AddDate(0, 0, 30)
	d.EndDateTime = d.StartDateTime.Add(4 * time.Hour)
	body, _ := json.Marshal(d)

	rec := postEvent(t, body, true)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
