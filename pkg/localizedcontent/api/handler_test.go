package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/localizedcontent/api"
	"github.com/tendant/localized-content/pkg/localizedcontent/repo/memory"
	memorystorage "github.com/tendant/localized-content/pkg/localizedcontent/storage/memory"
)

type noteAttrs struct {
	Title string `json:"title"`
}

type noteTransAttrs struct {
	Text string `json:"text"`
}

type notePatch struct {
	Title *string `json:"title,omitempty"`
}

func (p notePatch) Apply(a noteAttrs) noteAttrs {
	localizedcontent.Set(&a.Title, p.Title)
	return a
}

type noteTransPatch struct {
	Text *string `json:"text,omitempty"`
}

func (p noteTransPatch) Apply(a noteTransAttrs) noteTransAttrs {
	localizedcontent.Set(&a.Text, p.Text)
	return a
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	def := localizedcontent.Definition[noteAttrs, noteTransAttrs]{
		Family:      "notes",
		AssetFolder: "test/notes",
		UniqueKey:   func(a noteAttrs) string { return a.Title },
		Validate: func(a noteAttrs) error {
			if a.Title == "" {
				return localizedcontent.NewValidationError("title is required")
			}
			return nil
		},
	}
	svc, err := localizedcontent.New(def,
		localizedcontent.WithRepository[noteAttrs, noteTransAttrs](memory.New[noteAttrs, noteTransAttrs]()),
		localizedcontent.WithBlobStore[noteAttrs, noteTransAttrs](memorystorage.New()),
	)
	require.NoError(t, err)

	handler := api.NewHandler(svc,
		api.PatchDecoder[noteAttrs, notePatch](),
		api.PatchDecoder[noteTransAttrs, noteTransPatch](),
		nil)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func createNote(t *testing.T, server *httptest.Server, title string) localizedcontent.General[noteAttrs] {
	t.Helper()

	resp := postJSON(t, server.URL+"/", noteAttrs{Title: title})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var general localizedcontent.General[noteAttrs]
	decodeInto(t, resp, &general)
	return general
}

func TestCreateAndGetGeneral(t *testing.T) {
	server := newTestServer(t)
	general := createNote(t, server, "hello")
	assert.Equal(t, "hello", general.Attributes.Title)

	resp, err := http.Get(fmt.Sprintf("%s/%s", server.URL, general.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got localizedcontent.General[noteAttrs]
	decodeInto(t, resp, &got)
	assert.Equal(t, general.ID, got.ID)

	t.Run("validation failure maps to 400", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/", noteAttrs{})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate title maps to 409", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/", noteAttrs{Title: "hello"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/%s", server.URL, uuid.New()))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id maps to 400", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/not-a-uuid")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTranslationRoundtrip(t *testing.T) {
	server := newTestServer(t)
	general := createNote(t, server, "greeting")

	resp := postJSON(t, fmt.Sprintf("%s/%s/translations", server.URL, general.ID), map[string]any{
		"locale":     "en",
		"attributes": noteTransAttrs{Text: "hello world"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var view localizedcontent.LocalizedView[noteAttrs, noteTransAttrs]
	decodeInto(t, resp, &view)
	assert.Equal(t, localizedcontent.LocaleEN, view.Locale)

	t.Run("get by locale", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/%s/translations/en", server.URL, general.ID))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got localizedcontent.LocalizedView[noteAttrs, noteTransAttrs]
		decodeInto(t, resp, &got)
		assert.Equal(t, "hello world", got.Attributes.Text)
	})

	t.Run("unsupported locale maps to 400", func(t *testing.T) {
		resp := postJSON(t, fmt.Sprintf("%s/%s/translations", server.URL, general.ID), map[string]any{
			"locale":     "de",
			"attributes": noteTransAttrs{Text: "hallo"},
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list by locale", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/?locale=en")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var views []localizedcontent.LocalizedView[noteAttrs, noteTransAttrs]
		decodeInto(t, resp, &views)
		assert.Len(t, views, 1)
	})

	t.Run("patch translation", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{"text": "patched"})
		require.NoError(t, err)
		req, err := http.NewRequest(http.MethodPatch,
			fmt.Sprintf("%s/%s/translations/en", server.URL, general.ID), bytes.NewReader(body))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got localizedcontent.LocalizedView[noteAttrs, noteTransAttrs]
		decodeInto(t, resp, &got)
		assert.Equal(t, "patched", got.Attributes.Text)
	})

	t.Run("delete last translation cascades", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete,
			fmt.Sprintf("%s/%s/translations/en", server.URL, general.ID), nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result api.DeleteTranslationResponse
		decodeInto(t, resp, &result)
		assert.True(t, result.GeneralDeleted)
	})
}

func TestMultipartCreate(t *testing.T) {
	server := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("data", `{"title":"with-asset"}`))
	part, err := writer.CreateFormFile("assets", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/", writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var general localizedcontent.General[noteAttrs]
	decodeInto(t, resp, &general)
	assert.Equal(t, "with-asset", general.Attributes.Title)
	require.Len(t, general.Assets, 1)
	assert.NotEmpty(t, general.Assets[0].PublicID)
}

func TestDeleteGeneralIsIdempotent(t *testing.T) {
	server := newTestServer(t)
	general := createNote(t, server, "temp")

	for i := 0; i < 2; i++ {
		req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/%s", server.URL, general.ID), nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
}
