package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider answers by path and remembers the last request body per path.
type fakeProvider struct {
	mu      sync.Mutex
	routes  map[string]func(w http.ResponseWriter, body map[string]any)
	lastReq map[string]map[string]any
	auth    string
}

func newFakeProvider(t *testing.T) (*fakeProvider, *Client) {
	t.Helper()
	fp := &fakeProvider{
		routes:  map[string]func(http.ResponseWriter, map[string]any){},
		lastReq: map[string]map[string]any{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		fp.mu.Lock()
		fp.lastReq[r.URL.Path] = body
		fp.auth = r.Header.Get("Authorization")
		handler, ok := fp.routes[r.URL.Path]
		fp.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"no route"}}`))
			return
		}
		handler(w, body)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	client := New(cfg, nil)
	t.Cleanup(func() { _ = client.Close() })
	return fp, client
}

func (fp *fakeProvider) on(path string, fn func(w http.ResponseWriter, body map[string]any)) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.routes[path] = fn
}

func (fp *fakeProvider) last(path string) map[string]any {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.lastReq[path]
}

func (fp *fakeProvider) authHeader() string {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.auth
}

func chatReply(content string) func(http.ResponseWriter, map[string]any) {
	return func(w http.ResponseWriter, _ map[string]any) {
		payload, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		})
		_, _ = w.Write(payload)
	}
}

func failWith(status int, msg string) func(http.ResponseWriter, map[string]any) {
	return func(w http.ResponseWriter, _ map[string]any) {
		w.WriteHeader(status)
		payload, _ := json.Marshal(map[string]any{"error": map[string]any{"message": msg}})
		_, _ = w.Write(payload)
	}
}

func TestClassify_ParsesDraft(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", chatReply(`{"type":"event","title":"Python Workshop","description":"Learn Python","eventDate":"2025-01-01","location":"Lab","lostFoundType":null,"item":null,"department":null,"attachmentType":null}`))

	d, err := client.Classify(context.Background(), "python workshop tomorrow in lab")
	require.NoError(t, err)

	assert.Equal(t, "event", d.Type)
	assert.Equal(t, "Python Workshop", d.Title)
	require.NotNil(t, d.Location)
	assert.Equal(t, "Lab", *d.Location)
	assert.Nil(t, d.Item)

	req := fp.last("/chat/completions")
	assert.Equal(t, "gpt-4o-mini", req["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, req["response_format"])
	assert.Equal(t, "Bearer test-key", fp.authHeader())
}

func TestClassify_UpstreamErrorCarriesMessage(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", failWith(http.StatusUnauthorized, "Incorrect API key provided"))

	_, err := client.Classify(context.Background(), "anything")

	var up *UpstreamError
	require.True(t, errors.As(err, &up))
	assert.Equal(t, "classify", up.Op)
	assert.Equal(t, http.StatusUnauthorized, up.StatusCode)
	assert.Equal(t, "Incorrect API key provided", up.Message)
}

func TestClassify_MalformedContent(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", chatReply("not json at all"))

	_, err := client.Classify(context.Background(), "anything")

	var up *UpstreamError
	require.True(t, errors.As(err, &up))
	assert.Contains(t, up.Message, "malformed draft")
}

func TestClient_MissingKeyFailsWithoutCalling(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	defer client.Close()

	_, err := client.SoftenRewrite(context.Background(), "hi")

	var up *UpstreamError
	require.True(t, errors.As(err, &up))
	assert.Equal(t, "OpenAI API key not configured", up.Message)
}

func TestCheckToxicity(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/moderations", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"results":[{"flagged":true,"categories":{"harassment":true,"violence":false}}]}`))
	})

	res, err := client.CheckToxicity(context.Background(), "you are awful")
	require.NoError(t, err)

	assert.True(t, res.Flagged)
	assert.Equal(t, map[string]bool{"harassment": true, "violence": false}, res.Categories)
	assert.Equal(t, "omni-moderation-latest", fp.last("/moderations")["model"])
}

func TestSoftenRewrite_Trims(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", chatReply("  Please be kind.  \n"))

	out, err := client.SoftenRewrite(context.Background(), "be nice or else")
	require.NoError(t, err)
	assert.Equal(t, "Please be kind.", out)
}

func TestAnalyzePrompt_ModelAnswer(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", chatReply(`{"post_type":"event","confidence":"0.93","enhanced_prompt":"A poster","post_description":"Come along","reasoning":"workshop"}`))

	a := client.AnalyzePrompt(context.Background(), "workshop")

	assert.Equal(t, CategoryEvent, a.PostType)
	assert.InDelta(t, 0.93, a.Confidence, 1e-9)
	assert.Equal(t, "A poster", a.EnhancedPrompt)
	assert.Equal(t, SourceModel, a.Source)
	assert.Equal(t, "workshop", a.OriginalPrompt)
}

func TestAnalyzePrompt_FallsBackOnUpstreamFailure(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", failWith(http.StatusInternalServerError, "boom"))

	a := client.AnalyzePrompt(context.Background(), "Lost keys hall")

	assert.Equal(t, CategoryLostFound, a.PostType)
	assert.Equal(t, SourceKeywordFallback, a.Source)
	assert.Equal(t, 0.6, a.Confidence)
}

func TestAnalyzePrompt_FallsBackOnIncompleteAnswer(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", chatReply(`{"post_type":"event"}`))

	a := client.AnalyzePrompt(context.Background(), "Holiday notice")

	assert.Equal(t, CategoryAnnouncement, a.PostType)
	assert.Equal(t, SourceKeywordFallback, a.Source)
}

func TestGenerateImage_EnhancedByModel(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", chatReply(`{"post_type":"event","confidence":0.9,"enhanced_prompt":"ENHANCED","post_description":"d","reasoning":"r"}`))
	fp.on("/images/generations", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"QUJD"}]}`))
	})

	img, err := client.GenerateImage(context.Background(), "hackathon", "", true)
	require.NoError(t, err)

	assert.Equal(t, "data:image/png;base64,QUJD", img.ImageURL)
	assert.Equal(t, "ENHANCED", img.FinalPrompt)
	require.NotNil(t, img.Analysis)
	assert.Equal(t, "Image generated successfully", img.RevisedPrompt)

	req := fp.last("/images/generations")
	assert.Equal(t, "ENHANCED", req["prompt"])
	assert.Equal(t, "1024x1024", req["size"])
	assert.Equal(t, "gpt-image-1", req["model"])
}

func TestGenerateImage_SecondFallbackPath(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/chat/completions", failWith(http.StatusBadGateway, "down"))
	fp.on("/images/generations", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"data":[{"url":"https://img.example/1.png","revised_prompt":"rp"}]}`))
	})

	img, err := client.GenerateImage(context.Background(), "Python workshop tomorrow", "1792x1024", true)
	require.NoError(t, err)

	assert.Equal(t, "https://img.example/1.png", img.ImageURL)
	assert.Equal(t, "rp", img.RevisedPrompt)
	assert.Nil(t, img.Analysis)
	assert.True(t, strings.HasPrefix(img.FinalPrompt, "Create a professional, modern event poster"))
	assert.Equal(t, img.FinalPrompt, fp.last("/images/generations")["prompt"])
}

func TestGenerateImage_WithoutEnhanceUsesPromptVerbatim(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/images/generations", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"data":[{"url":"u"}]}`))
	})

	img, err := client.GenerateImage(context.Background(), "a red bicycle", "", false)
	require.NoError(t, err)
	assert.Equal(t, "a red bicycle", img.FinalPrompt)
	assert.Nil(t, fp.last("/chat/completions"))
}

func TestGenerateImage_RejectsUnknownSize(t *testing.T) {
	_, client := newFakeProvider(t)

	_, err := client.GenerateImage(context.Background(), "x", "10x10", false)
	assert.Error(t, err)
}

func TestGenerateImage_EmptyData(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/images/generations", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.GenerateImage(context.Background(), "x", "", false)

	var up *UpstreamError
	require.True(t, errors.As(err, &up))
	assert.Equal(t, "No image data received from API", up.Message)
}

func TestGenerateMeme(t *testing.T) {
	fp, client := newFakeProvider(t)
	fp.on("/images/generations", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"TUVNRQ=="}]}`))
	})

	url, err := client.GenerateMeme(context.Background(), " cat wearing a hat ")
	require.NoError(t, err)

	assert.Equal(t, "data:image/png;base64,TUVNRQ==", url)
	assert.Equal(t,
		"Create a meme image for this idea. Use classic meme style when appropriate. Idea: cat wearing a hat",
		fp.last("/images/generations")["prompt"])
}
