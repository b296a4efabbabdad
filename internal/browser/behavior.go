package browser

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/extract"
)

type point struct {
	x, y float64
}

// Simulate runs the fixed post-navigation choreography: a randomized
// settle wait, three pointer moves, a scroll down and back up, a tolerant
// wait for the listing content, and a final delay. Strictly sequential;
// it only diversifies timing and cursor signatures and gives dynamic
// content time to render.
func Simulate(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	if err := chromedp.Run(ctx, chromedp.Sleep(randomDuration(cfg.InitialWaitMin, cfg.InitialWaitMax))); err != nil {
		return err
	}

	for _, p := range mousePath(ViewportWidth, ViewportHeight) {
		err := chromedp.Run(ctx,
			chromedp.ActionFunc(func(ctx context.Context) error {
				return input.DispatchMouseEvent(input.MouseMoved, p.x, p.y).Do(ctx)
			}),
			chromedp.Sleep(randomDuration(150*time.Millisecond, 450*time.Millisecond)),
		)
		if err != nil {
			return err
		}
	}

	err := chromedp.Run(ctx,
		chromedp.Evaluate(`window.scrollBy(0, 600)`, nil),
		chromedp.Sleep(randomDuration(500*time.Millisecond, 900*time.Millisecond)),
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
		chromedp.Sleep(randomDuration(1200*time.Millisecond, 1800*time.Millisecond)),
	)
	if err != nil {
		return err
	}

	// A miss here is tolerated: extraction proceeds against whatever DOM
	// state exists.
	waitCtx, cancel := context.WithTimeout(ctx, cfg.SelectorTimeout)
	defer cancel()
	selector := strings.Join(extract.ListingLoadedSelectors, ", ")
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		log.Warn().Err(err).Msg("no listing selector appeared before timeout, extracting anyway")
	}

	return chromedp.Run(ctx, chromedp.Sleep(cfg.FinalWait))
}

// mousePath yields three coordinates inside the viewport, away from the
// edges.
func mousePath(width, height int) []point {
	path := make([]point, 3)
	for i := range path {
		path[i] = point{
			x: float64(width/8) + rand.Float64()*float64(width*3/4),
			y: float64(height/8) + rand.Float64()*float64(height*3/4),
		}
	}
	return path
}

func randomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
