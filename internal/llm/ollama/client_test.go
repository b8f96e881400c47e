package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-email-sender/internal/llm"
)

func TestGenerateSendsNonStreamingRequest(t *testing.T) {
	var got map[string]any
	var contentType, path, method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"model":"llama3","response":"Dear Acme, ...","done":true}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL + "/", Model: "llama3"})
	raw, err := client.Generate(context.Background(), "write an email")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/generate", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]any{"model": "llama3", "prompt": "write an email", "stream": false}, got)
	assert.JSONEq(t, `{"model":"llama3","response":"Dear Acme, ...","done":true}`, string(raw))
}

func TestGenerateReturnsMalformedBodyUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	raw, err := NewClient(Config{BaseURL: srv.URL}).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "not json at all", string(raw))
}

func TestGenerateNon2xxIsModelUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llama3' not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "not found")
}

func TestGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: url}).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGenerateCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Config{BaseURL: srv.URL}).Generate(ctx, "p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(Config{BaseURL: srv.URL}).Ping(context.Background()))
	assert.ErrorIs(t, NewClient(Config{BaseURL: srv.URL + "/missing"}).Ping(context.Background()), llm.ErrModelUnavailable)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultModel, c.ModelName())
	assert.Equal(t, DefaultTimeout, c.timeout)
}
