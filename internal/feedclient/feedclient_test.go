package feedclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"campus-feed/dto"
	"campus-feed/internal/models"
	"campus-feed/internal/thread"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestFeedOrSeed_BootstrapsOnListFailure(t *testing.T) {
	var seeded atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts":
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "db down"})
		case "/api/posts/seed":
			seeded.Add(1)
			writeJSON(w, http.StatusOK, dto.SeedResp{
				Message: "Seeded 1 example posts",
				Posts:   []models.Post{{ID: bson.NewObjectID(), Type: models.PostTypeEvent, Title: "Hackathon"}},
			})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.Close()

	posts, wasSeeded, err := c.FeedOrSeed(context.Background(), 20, "")
	require.NoError(t, err)
	assert.True(t, wasSeeded)
	assert.EqualValues(t, 1, seeded.Load())
	require.Len(t, posts, 1)
	assert.Equal(t, "Hackathon", posts[0].Title)
}

func TestFeedOrSeed_ClientErrorDoesNotSeed(t *testing.T) {
	var seeded atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts":
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid type"})
		case "/api/posts/seed":
			seeded.Add(1)
			writeJSON(w, http.StatusOK, dto.SeedResp{})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.Close()

	posts, wasSeeded, err := c.FeedOrSeed(context.Background(), 20, "events")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.False(t, wasSeeded)
	assert.Empty(t, posts)
	assert.Zero(t, seeded.Load())
}

func TestFeedOrSeed_FiltersSeededPostsByType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts":
			writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "db down"})
		case "/api/posts/seed":
			writeJSON(w, http.StatusOK, dto.SeedResp{
				Message: "Seeded 3 example posts",
				Posts: []models.Post{
					{ID: bson.NewObjectID(), Type: models.PostTypeEvent, Title: "Hackathon"},
					{ID: bson.NewObjectID(), Type: models.PostTypeLostFound, Title: "Lost keys"},
					{ID: bson.NewObjectID(), Type: models.PostTypeEvent, Title: "Career fair"},
				},
			})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.Close()

	posts, wasSeeded, err := c.FeedOrSeed(context.Background(), 20, "event")
	require.NoError(t, err)
	assert.True(t, wasSeeded)
	require.Len(t, posts, 2)
	assert.Equal(t, "Hackathon", posts[0].Title)
	assert.Equal(t, "Career fair", posts[1].Title)
}

func TestFeedOrSeed_NoSeedWhenListWorks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/posts/seed" {
			t.Error("seed must not be called")
		}
		assert.Equal(t, "event", r.URL.Query().Get("type"))
		writeJSON(w, http.StatusOK, dto.ListPostsResp{Items: []models.Post{{Title: "A"}}, Total: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.Close()

	posts, wasSeeded, err := c.FeedOrSeed(context.Background(), 20, "event")
	require.NoError(t, err)
	assert.False(t, wasSeeded)
	assert.Len(t, posts, 1)
}

func TestClient_KeepsSessionCookie(t *testing.T) {
	var sawCookie atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("sid"); err == nil && ck.Value == "token" {
			sawCookie.Store(true)
		} else {
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "token", Path: "/"})
		}
		writeJSON(w, http.StatusOK, dto.RSVPResp{OK: true, RSVP: models.RSVP{Going: 1}})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.Close()

	_, err := c.RSVP(context.Background(), "abc", "going")
	require.NoError(t, err)
	r, err := c.RSVP(context.Background(), "abc", "going")
	require.NoError(t, err)
	assert.EqualValues(t, 1, r.Going)
	assert.True(t, sawCookie.Load())
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "classify failed", Details: "quota"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.Close()

	_, err := c.Draft(context.Background(), "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "classify failed", apiErr.Message)
	assert.Equal(t, "quota", apiErr.Details)
}

func TestRenderFeed_GroupsByType(t *testing.T) {
	posts := []models.Post{
		{Type: models.PostTypeAnnouncement, Title: "Holiday", Department: "Registrar"},
		{Type: models.PostTypeEvent, Title: "Hackathon", Location: "Lab", RSVP: models.RSVP{Going: 3}},
		{Type: models.PostTypeEvent, Title: "Workshop"},
	}
	out := RenderFeed(DefaultStyles(), posts)

	assert.Contains(t, out, "Events (2)")
	assert.Contains(t, out, "Announcements (1)")
	assert.NotContains(t, out, "Lost & Found")
	assert.Less(t, strings.Index(out, "Events"), strings.Index(out, "Announcements"))
	assert.Less(t, strings.Index(out, "Hackathon"), strings.Index(out, "Workshop"))
	assert.Contains(t, out, "going 3")
}

func TestRenderReactions(t *testing.T) {
	assert.Equal(t, "🎉 3  👍 1  😂 1", RenderReactions(models.Reactions{"👍": 1, "🎉": 3, "😂": 1}))
	assert.Equal(t, "", RenderReactions(nil))
}

func TestRenderThread_Indents(t *testing.T) {
	root := models.Comment{ID: bson.NewObjectID(), Content: "root"}
	child := models.Comment{ID: bson.NewObjectID(), Content: "child", ParentID: &root.ID}
	out := RenderThread(DefaultStyles(), thread.Build([]models.Comment{root, child}))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "└ root"))
	assert.True(t, strings.HasPrefix(lines[1], "  └ child"))
}
