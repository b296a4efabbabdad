// Package config provides environment-driven configuration with sane
// defaults and pre-compiled regex patterns shared by the extractor.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains general scraping configuration.
type Config struct {
	Port         string
	TargetDomain string
	SourceType   string

	UserAgent   string
	ChromeMajor int
	Headless    bool

	NavTimeout      time.Duration
	SelectorTimeout time.Duration

	// Behavior simulation bounds.
	InitialWaitMin time.Duration
	InitialWaitMax time.Duration
	FinalWait      time.Duration

	ClassifyAPIKey   string
	ClassifyEndpoint string
	ClassifyModel    string
	ClassifyTimeout  time.Duration
}

// Load reads configuration from the environment, falling back to
// defaults. A .env file is honored when present.
func Load() Config {
	_ = godotenv.Load()

	chromeMajor := 133
	if env := os.Getenv("CHROME_MAJOR"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil {
			chromeMajor = parsed
		}
	}

	userAgent := os.Getenv("SCRAPE_USER_AGENT")
	if userAgent == "" {
		userAgent = fmt.Sprintf("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.6943.126 Safari/537.36", chromeMajor)
	}

	return Config{
		Port:         envOr("PORT", "8080"),
		TargetDomain: envOr("TARGET_DOMAIN", "bizbuysell.com"),
		SourceType:   envOr("SOURCE_TYPE", "bizbuysell"),

		UserAgent:   userAgent,
		ChromeMajor: chromeMajor,
		Headless:    envOr("HEADLESS", "true") != "false",

		NavTimeout:      envDuration("NAV_TIMEOUT_MS", 60*time.Second),
		SelectorTimeout: envDuration("SELECTOR_TIMEOUT_MS", 10*time.Second),

		InitialWaitMin: 3 * time.Second,
		InitialWaitMax: 6 * time.Second,
		FinalWait:      2 * time.Second,

		ClassifyAPIKey:   os.Getenv("CLASSIFY_API_KEY"),
		ClassifyEndpoint: envOr("CLASSIFY_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		ClassifyModel:    envOr("CLASSIFY_MODEL", "gpt-4o-mini"),
		ClassifyTimeout:  envDuration("CLASSIFY_TIMEOUT_MS", 15*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

// CompileRegexes pre-compiles regex patterns for better performance
func CompileRegexes() map[string]*regexp.Regexp {
	return map[string]*regexp.Regexp{
		"currency":    regexp.MustCompile(`\$\s*[\d,]+(?:\.\d+)?\s*(?:[mM]il|[mMkK])?`),
		"cityState":   regexp.MustCompile(`([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*),\s*([A-Z]{2})\b`),
		"rent":        regexp.MustCompile(`(?i)rent[:\s]+(\$\s*[\d,]+(?:\.\d+)?\s*(?:[mM]il|[mMkK])?)`),
		"established": regexp.MustCompile(`(?i)(?:established|since|founded)[:\s]+(\d{4})`),
		"employees":   regexp.MustCompile(`(?i)([\d,]+)\s+employees`),
		"buildingSF":  regexp.MustCompile(`(?i)([\d,]+)\s*(?:sq\.?\s*ft\.?|square\s+feet)`),
		"inventory":   regexp.MustCompile(`(?i)inventory[:\s]+(\$\s*[\d,]+(?:\.\d+)?\s*(?:[mM]il|[mMkK])?)`),
		"franchise":   regexp.MustCompile(`(?i)franchise[:\s]+([^\n.]{3,200})`),
		"reason":      regexp.MustCompile(`(?i)reason\s+for\s+selling[:\s]+([^\n]{3,500})`),
	}
}
