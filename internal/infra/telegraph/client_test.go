package telegraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()

	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/createAccount":
			assert.Equal(t, "EduHubBot", body["short_name"])
			_ = json.NewEncoder(w).Encode(map[string]any{
				"ok":     true,
				"result": map[string]any{"access_token": "token-1"},
			})
		case "/createPage":
			assert.Equal(t, "token-1", body["access_token"])
			assert.Contains(t, body["title"], "Available Chapters")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"ok":     true,
				"result": map[string]any{"url": "https://telegra.ph/page-1"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, &paths
}

func TestPublishCreatesAccountOnce(t *testing.T) {
	srv, paths := newTestServer(t)
	c := NewClient("EduHubBot", "EduHub Bot", "https://t.me/neetpw01", WithBaseURL(srv.URL))

	url, err := c.Publish(context.Background(), "Available Chapters", []string{"Living World", "Genetics"})
	require.NoError(t, err)
	assert.Equal(t, "https://telegra.ph/page-1", url)

	_, err = c.Publish(context.Background(), "Available Chapters", []string{"Living World"})
	require.NoError(t, err)

	// One account creation, two page creations.
	assert.Equal(t, []string{"/createAccount", "/createPage", "/createPage"}, *paths)
}

func TestPublishSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "SHORT_NAME_REQUIRED"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient("", "", "", WithBaseURL(srv.URL))

	_, err := c.Publish(context.Background(), "Available Subjects", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHORT_NAME_REQUIRED")
}
