package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-feed/dto"
	"campus-feed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, server string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func failingFeed(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/posts/seed" {
			_ = json.NewEncoder(w).Encode(dto.SeedResp{
				Message: "Seeded 1 example posts",
				Posts:   []models.Post{{Type: models.PostTypeLostFound, Title: "Blue wallet", LostFoundType: models.Lost}},
			})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"db down"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPostsCmd_SeedsWhenFeedFails(t *testing.T) {
	srv := failingFeed(t)

	out, errOut, err := run(t, srv.URL, "posts")
	require.NoError(t, err)
	assert.Contains(t, out, "Lost & Found (1)")
	assert.Contains(t, out, "Blue wallet")
	assert.Contains(t, errOut, "loaded demo posts")
}

func TestPostsCmd_BootstrapDisabled(t *testing.T) {
	srv := failingFeed(t)

	_, _, err := run(t, srv.URL, "posts", "--bootstrap-on-failure=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestRSVPCmd_RequiresTwoArgs(t *testing.T) {
	_, _, err := run(t, "http://127.0.0.1:1", "rsvp", "only-one")
	assert.Error(t, err)
}
