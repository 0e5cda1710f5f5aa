package contact_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/localized-content/pkg/portfolio/contact"
	"github.com/tendant/localized-content/pkg/portfolio/contact/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := contact.NewHandler(contact.NewService(memory.New()), nil)
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url string, payload any) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestContactRoutes(t *testing.T) {
	server := newTestServer(t)

	t.Run("get before creation maps to 404", func(t *testing.T) {
		resp := do(t, http.MethodGet, server.URL+"/", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing email maps to 400", func(t *testing.T) {
		resp := do(t, http.MethodPost, server.URL+"/", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	resp := do(t, http.MethodPost, server.URL+"/", map[string]string{"email": "jane@example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("second create maps to 409", func(t *testing.T) {
		resp := do(t, http.MethodPost, server.URL+"/", map[string]string{"email": "dup@example.com"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("patch updates the record", func(t *testing.T) {
		resp := do(t, http.MethodPatch, server.URL+"/", map[string]string{"email": "jane@new.example"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got contact.Contact
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "jane@new.example", got.Email)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := do(t, http.MethodDelete, server.URL+"/", nil)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		}
	})
}
