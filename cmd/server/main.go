package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ThreadedLinx/bbscraper/internal/browser"
	"github.com/ThreadedLinx/bbscraper/internal/classify"
	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/models"
	"github.com/ThreadedLinx/bbscraper/internal/scraper"
)

type server struct {
	browser    *browser.Manager
	scraper    *scraper.Scraper
	classifier *classify.Classifier
	log        zerolog.Logger
}

func (s *server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	start := time.Now()
	listing, err := s.scraper.Scrape(r.Context(), req)

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		s.errorResponse(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("deal_id", req.DealID).Msg("scrape failed")
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info().Str("deal_id", req.DealID).Dur("took", time.Since(start)).Msg("scrape completed")
	s.writeJSON(w, http.StatusOK, listing)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Browser:   s.browser.Healthy(),
		Timestamp: time.Now().UTC(),
	})
}

func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Description == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing \"description\"")
		return
	}

	s.writeJSON(w, http.StatusOK, s.classifier.Classify(r.Context(), req.Description))
}

func (s *server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("response encoding failed")
	}
}

func (s *server) errorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, models.ErrorResponse{Error: message})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.Load()

	mgr := browser.NewManager(cfg, log)
	s := &server{
		browser:    mgr,
		scraper:    scraper.New(cfg, mgr, log),
		classifier: classify.New(cfg, log),
		log:        log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/scrape", s.handleScrape)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/classify-industry", s.handleClassify)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: withCORS(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		mgr.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
