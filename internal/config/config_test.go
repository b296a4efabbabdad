package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bizbuysell.com", cfg.TargetDomain)
	assert.Equal(t, "bizbuysell", cfg.SourceType)
	assert.Contains(t, cfg.UserAgent, "Chrome/")
	assert.True(t, cfg.Headless)
	assert.Greater(t, cfg.InitialWaitMax, cfg.InitialWaitMin)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TARGET_DOMAIN", "example.com")
	t.Setenv("NAV_TIMEOUT_MS", "5000")
	t.Setenv("HEADLESS", "false")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "example.com", cfg.TargetDomain)
	assert.Equal(t, int64(5000), cfg.NavTimeout.Milliseconds())
	assert.False(t, cfg.Headless)
}

func TestCompileRegexes(t *testing.T) {
	regexes := CompileRegexes()

	require.Contains(t, regexes, "currency")
	assert.Equal(t, "$2.5M", regexes["currency"].FindString("priced at $2.5M today"))
	assert.Equal(t, "$250,000", regexes["currency"].FindString("Asking Price: $250,000"))

	m := regexes["cityState"].FindStringSubmatch("located in San Antonio, TX area")
	require.NotNil(t, m)
	assert.Equal(t, "San Antonio", m[1])
	assert.Equal(t, "TX", m[2])

	m = regexes["established"].FindStringSubmatch("Established: 1995")
	require.NotNil(t, m)
	assert.Equal(t, "1995", m[1])

	m = regexes["buildingSF"].FindStringSubmatch("about 3,500 sq ft of space")
	require.NotNil(t, m)
	assert.Equal(t, "3,500", m[1])
}
