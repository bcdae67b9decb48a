package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadstorm/internal/config"
	"threadstorm/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr:       ":0",
		MaxCharsPerPost:  500,
		Tone:             "professional",
		IncludeNumbering: true,
		EnableHook:       true,
		EnableCTA:        true,
		ImageRhythm:      3,
		MinPostChars:     40,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	ctx := context.Background()
	st, err := store.NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))

	return New(testConfig(), st)
}

func postFormat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/format", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHandleFormat(t *testing.T) {
	t.Run("formats content", func(t *testing.T) {
		srv := newTestServer(t)
		content := strings.Repeat("The quick brown fox jumps over the lazy dog again today. ", 25)

		body, _ := json.Marshal(map[string]any{"content": content})
		rec := postFormat(t, srv, string(body))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp FormatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Threadstorm)
		assert.GreaterOrEqual(t, resp.Threadstorm.TotalPosts, 3)
		assert.Empty(t, resp.ID, "unsaved request should carry no id")
	})

	t.Run("request overrides beat configured defaults", func(t *testing.T) {
		srv := newTestServer(t)
		content := strings.Repeat("Words and more words fill the post. ", 20)

		body := `{"content": ` + jsonString(content) + `, "max_chars_per_post": 120, "include_numbering": false}`
		rec := postFormat(t, srv, body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp FormatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		for _, p := range resp.Threadstorm.Posts {
			assert.LessOrEqual(t, p.CharCount, 120)
			assert.NotContains(t, p.Text, "(1/")
		}
	})

	t.Run("save persists and returns an id", func(t *testing.T) {
		srv := newTestServer(t)

		body := `{"content": "Save this short thread for posterity.", "save": true}`
		rec := postFormat(t, srv, body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp FormatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.ID)

		getReq := httptest.NewRequest(http.MethodGet, "/api/threadstorms/"+resp.ID, nil)
		getRec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(getRec, getReq)
		assert.Equal(t, http.StatusOK, getRec.Code)
	})

	t.Run("missing content is a bad request", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postFormat(t, srv, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postFormat(t, srv, `{"content": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("whitespace content is unprocessable", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postFormat(t, srv, `{"content": "  \n\n  "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("limit below suffix width is a bad request", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postFormat(t, srv, `{"content": "hello world", "max_chars_per_post": 8}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleList(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 3; i++ {
		rec := postFormat(t, srv, `{"content": "A short saved thread for the listing test.", "save": true}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("returns saved records", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/threadstorms?limit=2", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Threadstorms []*store.Record `json:"threadstorms"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Threadstorms, 2)
	})

	t.Run("invalid limit is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/threadstorms?limit=lots", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("limit with trailing garbage is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/threadstorms?limit=10abc", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGet(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/threadstorms/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
