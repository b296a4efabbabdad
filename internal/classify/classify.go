// Package classify proxies business descriptions to an external
// text-classification API. It is capability-gated: without an API key,
// and on every failure, it answers with a fixed fallback instead of an
// error.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/models"
)

const (
	fallbackIndustry   = "Other"
	fallbackConfidence = 0.1

	maxResponseBytes = 1 << 20
)

// Categories the external model must choose from; anything else maps to
// "Other".
var Categories = []string{
	"Restaurants & Food",
	"Retail",
	"Health Care & Fitness",
	"Automotive",
	"Construction & Contractors",
	"Manufacturing",
	"Professional Services",
	"Technology & Internet",
	"Real Estate",
	"Transportation & Logistics",
	"Education & Training",
	"Beauty & Personal Care",
	"Entertainment & Recreation",
	"Agriculture",
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Classifier struct {
	cfg    config.Config
	client *http.Client
	log    zerolog.Logger
}

func New(cfg config.Config, log zerolog.Logger) *Classifier {
	return &Classifier{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.ClassifyTimeout,
		},
		log: log.With().Str("component", "classify").Logger(),
	}
}

// Enabled reports whether an API key is configured.
func (c *Classifier) Enabled() bool {
	return c.cfg.ClassifyAPIKey != ""
}

// Classify returns an industry label for the description. It never
// returns an error: missing key, transport failure, non-2xx status, and
// unparseable replies all produce the fixed fallback.
func (c *Classifier) Classify(ctx context.Context, description string) models.IndustryResult {
	fallback := models.IndustryResult{Industry: fallbackIndustry, Confidence: fallbackConfidence}

	if !c.Enabled() {
		return fallback
	}

	result, err := c.callAPI(ctx, description)
	if err != nil {
		c.log.Warn().Err(err).Msg("classification failed, using fallback")
		return fallback
	}
	return result
}

func (c *Classifier) callAPI(ctx context.Context, description string) (models.IndustryResult, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.ClassifyModel,
		Messages: []chatMessage{
			{Role: "system", Content: classificationPrompt()},
			{Role: "user", Content: description},
		},
	})
	if err != nil {
		return models.IndustryResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ClassifyEndpoint, bytes.NewReader(body))
	if err != nil {
		return models.IndustryResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.ClassifyAPIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return models.IndustryResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.IndustryResult{}, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.IndustryResult{}, err
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return models.IndustryResult{}, err
	}
	if len(chat.Choices) == 0 {
		return models.IndustryResult{}, fmt.Errorf("empty choices in reply")
	}

	var result models.IndustryResult
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &result); err != nil {
		return models.IndustryResult{}, fmt.Errorf("unparseable classification reply: %w", err)
	}
	if result.Industry == "" {
		return models.IndustryResult{}, fmt.Errorf("reply missing industry")
	}
	return result, nil
}

func classificationPrompt() string {
	return fmt.Sprintf(
		"Classify the following business description into exactly one of these industries: %s, or Other. "+
			"Reply with JSON only, in the form {\"industry\": \"<category>\", \"confidence\": <0..1>}.",
		strings.Join(Categories, ", "))
}
