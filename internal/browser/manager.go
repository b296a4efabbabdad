// Package browser owns the shared headless Chrome process and builds the
// per-request browsing contexts that look like real desktop sessions.
package browser

import (
	"context"
	"errors"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/models"
)

// Manager is the process-wide owner of the Chrome allocator. The browser
// is created lazily on first use, recreated if it died, and closed exactly
// once on shutdown. Request handlers never hold a long-lived reference;
// they ask for a fresh session each time.
type Manager struct {
	cfg config.Config
	log zerolog.Logger

	mu            sync.Mutex
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closed        bool
}

func NewManager(cfg config.Config, log zerolog.Logger) *Manager {
	return &Manager{
		cfg: cfg,
		log: log.With().Str("component", "browser").Logger(),
	}
}

func chromeOptions(cfg config.Config) []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(ViewportWidth, ViewportHeight),
	)
}

// handle returns a live browser context, starting or restarting Chrome as
// needed.
func (m *Manager) handle() (context.Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, &models.SessionError{Step: "create", Err: errors.New("browser manager is closed")}
	}

	if m.browserCtx != nil && m.browserCtx.Err() == nil {
		return m.browserCtx, nil
	}

	if m.browserCancel != nil {
		m.log.Warn().Msg("browser process died, restarting")
		m.browserCancel()
		m.allocCancel()
	}

	m.allocCtx, m.allocCancel = chromedp.NewExecAllocator(context.Background(), chromeOptions(m.cfg)...)
	m.browserCtx, m.browserCancel = chromedp.NewContext(m.allocCtx)

	// An empty Run starts the process so later sessions attach as tabs.
	if err := chromedp.Run(m.browserCtx); err != nil {
		m.browserCancel()
		m.allocCancel()
		m.browserCtx, m.browserCancel = nil, nil
		return nil, &models.SessionError{Step: "launch", Err: err}
	}

	m.log.Info().Msg("browser process started")
	return m.browserCtx, nil
}

// NewSession creates an isolated context and page for one request,
// configured with the full anti-detection profile. The returned close
// function must be called exactly once when the request completes. ctx
// only gates entry; the session derives from the shared browser context
// and is torn down by the close function, not by request cancellation.
func (m *Manager) NewSession(ctx context.Context) (context.Context, func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, &models.SessionError{Step: "create", Err: err}
	}

	browserCtx, err := m.handle()
	if err != nil {
		return nil, nil, err
	}

	sessionCtx, cancel := chromedp.NewContext(browserCtx)
	if err := configureSession(sessionCtx, m.cfg); err != nil {
		cancel()
		return nil, nil, &models.SessionError{Step: "configure", Err: err}
	}

	closeSession := func() error {
		err := chromedp.Cancel(sessionCtx)
		cancel()
		return err
	}
	return sessionCtx, closeSession, nil
}

// Healthy reports whether the shared browser process is up. A false here
// only means the next request will pay the relaunch cost.
func (m *Manager) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed && m.browserCtx != nil && m.browserCtx.Err() == nil
}

// Close tears the browser down. Safe to call more than once; only the
// first call does anything. In-flight requests are not drained.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	if m.browserCancel != nil {
		m.browserCancel()
		m.allocCancel()
		m.log.Info().Msg("browser process closed")
	}
}
