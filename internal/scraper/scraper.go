// Package scraper orchestrates one /scrape request end to end: validate,
// build a session, navigate, simulate browsing, extract, clean up.
package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/ThreadedLinx/bbscraper/internal/browser"
	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/extract"
	"github.com/ThreadedLinx/bbscraper/internal/models"
)

// SessionProvider hands out one isolated browsing context per request.
// The close function must be called exactly once when the request is
// done, on every exit path.
type SessionProvider interface {
	NewSession(ctx context.Context) (context.Context, func() error, error)
}

type Scraper struct {
	cfg       config.Config
	sessions  SessionProvider
	extractor *extract.Extractor
	log       zerolog.Logger

	// visit navigates the session to the listing and returns rendered
	// HTML. A field so tests can run the pipeline without Chrome.
	visit func(ctx context.Context, targetURL string) (string, error)
}

func New(cfg config.Config, sessions SessionProvider, log zerolog.Logger) *Scraper {
	s := &Scraper{
		cfg:       cfg,
		sessions:  sessions,
		extractor: extract.NewExtractor(),
		log:       log.With().Str("component", "scraper").Logger(),
	}
	s.visit = s.visitListing
	return s
}

// Scrape handles one request. Validation failures return before any
// browser interaction; everything after that surfaces as a single error
// with no retry. The session context is closed on every exit path.
func (s *Scraper) Scrape(ctx context.Context, req models.ScrapeRequest) (*models.Listing, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	sessionCtx, closeSession, err := s.sessions.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeSession(); err != nil {
			s.log.Error().Err(err).Str("deal_id", req.DealID).Msg("session close failed")
		}
	}()

	pageHTML, err := s.visit(sessionCtx, req.URL)
	if err != nil {
		return nil, &models.NavigationError{URL: req.URL, Err: err}
	}

	listing := s.extractor.Extract(pageHTML, req.URL)
	listing.SourceType = s.cfg.SourceType
	listing.SourceURL = req.URL
	listing.ParsedAt = time.Now().UTC()

	s.log.Info().
		Str("deal_id", req.DealID).
		Int("fields", len(listing.FieldsExtracted)).
		Float64("confidence", listing.ParsingConfidence).
		Msg("listing extracted")

	return &listing, nil
}

func (s *Scraper) validate(req models.ScrapeRequest) error {
	if req.URL == "" {
		return &models.ValidationError{Field: "url", Reason: "missing"}
	}
	if !strings.Contains(req.URL, s.cfg.TargetDomain) {
		return &models.ValidationError{Field: "url", Reason: "must reference " + s.cfg.TargetDomain}
	}
	if req.DealID == "" {
		return &models.ValidationError{Field: "dealId", Reason: "missing"}
	}
	return nil
}

func (s *Scraper) visitListing(ctx context.Context, targetURL string) (string, error) {
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()
	if err := chromedp.Run(navCtx, chromedp.Navigate(targetURL)); err != nil {
		return "", err
	}

	if err := browser.Simulate(ctx, s.cfg, s.log); err != nil {
		return "", err
	}

	var pageHTML string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &pageHTML)); err != nil {
		return "", err
	}
	return pageHTML, nil
}
