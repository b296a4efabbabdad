package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ThreadedLinx/bbscraper/internal/config"
)

func testConfig(endpoint, key string) config.Config {
	return config.Config{
		ClassifyAPIKey:   key,
		ClassifyEndpoint: endpoint,
		ClassifyModel:    "test-model",
		ClassifyTimeout:  2 * time.Second,
	}
}

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	raw, _ := json.Marshal(reply)
	return string(raw)
}

func TestClassifyWithoutKeyFallsBack(t *testing.T) {
	c := New(testConfig("http://unused.invalid", ""), zerolog.Nop())

	assert.False(t, c.Enabled())
	result := c.Classify(context.Background(), "a bakery in Austin")
	assert.Equal(t, "Other", result.Industry)
	assert.InDelta(t, 0.1, result.Confidence, 1e-9)
}

func TestClassifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])

		w.Write([]byte(chatReply(`{"industry": "Restaurants & Food", "confidence": 0.92}`)))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL, "test-key"), zerolog.Nop())
	result := c.Classify(context.Background(), "a bakery in Austin")

	assert.Equal(t, "Restaurants & Food", result.Industry)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)
}

func TestClassifyServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL, "test-key"), zerolog.Nop())
	result := c.Classify(context.Background(), "a bakery")

	assert.Equal(t, "Other", result.Industry)
	assert.InDelta(t, 0.1, result.Confidence, 1e-9)
}

func TestClassifyUnparseableReplyFallsBack(t *testing.T) {
	cases := []string{
		`not json at all`,
		chatReply(`this is prose, not JSON`),
		chatReply(`{"confidence": 0.5}`),
		`{"choices": []}`,
	}

	for _, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		c := New(testConfig(srv.URL, "test-key"), zerolog.Nop())
		result := c.Classify(context.Background(), "a bakery")
		assert.Equal(t, "Other", result.Industry, "body %q must fall back", body)

		srv.Close()
	}
}

func TestClassifyUnreachableEndpointFallsBack(t *testing.T) {
	c := New(testConfig("http://127.0.0.1:1", "test-key"), zerolog.Nop())
	result := c.Classify(context.Background(), "a bakery")
	assert.Equal(t, "Other", result.Industry)
}
