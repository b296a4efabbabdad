package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThreadedLinx/bbscraper/internal/config"
)

func TestSessionCookies(t *testing.T) {
	cookies := sessionCookies()
	require.Len(t, cookies, 4)

	names := make([]string, len(cookies))
	for i, c := range cookies {
		names[i] = c.Name
		assert.NotEmpty(t, c.Value)
	}
	assert.Equal(t, []string{"_ga", "_gid", "_fbp", "visited"}, names)
	assert.Equal(t, "true", cookies[3].Value)

	// Analytics identifiers must be randomized per session.
	again := sessionCookies()
	assert.NotEqual(t, cookies[0].Value, again[0].Value)
	assert.NotEqual(t, cookies[1].Value, again[1].Value)
	assert.NotEqual(t, cookies[2].Value, again[2].Value)
}

func TestSessionHeaders(t *testing.T) {
	cfg := config.Config{ChromeMajor: 133}
	headers := sessionHeaders(cfg)

	assert.Equal(t, "1", headers["Upgrade-Insecure-Requests"])
	assert.Equal(t, searchReferer, headers["Referer"])
	assert.Contains(t, headers["Sec-Ch-Ua"], `v="133"`)
	for _, key := range []string{"Accept", "Accept-Language", "Accept-Encoding", "Sec-Fetch-Mode"} {
		assert.Contains(t, headers, key)
	}
}

func TestUserAgentOverride(t *testing.T) {
	cfg := config.Config{
		ChromeMajor: 133,
		UserAgent:   "Mozilla/5.0 test",
	}
	params := userAgentOverride(cfg)

	assert.Equal(t, cfg.UserAgent, params.UserAgent)
	assert.Equal(t, "Win32", params.Platform)
	require.NotNil(t, params.UserAgentMetadata)
	require.Len(t, params.UserAgentMetadata.Brands, 3)
	assert.Equal(t, "133", params.UserAgentMetadata.Brands[0].Version)
}
