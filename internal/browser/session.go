package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/extract"
)

// Session profile: a desktop Chrome arriving from a Google search.
const (
	ViewportWidth  = 1920
	ViewportHeight = 1080

	acceptLanguage = "en-US,en;q=0.9"
	timezoneID     = "America/New_York"
	locale         = "en-US"
	searchReferer  = "https://www.google.com/"
)

// configureSession applies the full profile to a freshly created context:
// spoofed headers and client hints, UA metadata, viewport, locale and
// timezone, analytics cookies for the target domain, and stealth plus
// normalizer scripts evaluated on every new document. It never navigates.
func configureSession(ctx context.Context, cfg config.Config) error {
	return chromedp.Run(ctx, chromedp.Tasks{
		chromedp.ActionFunc(func(ctx context.Context) error {
			if err := network.Enable().Do(ctx); err != nil {
				return err
			}
			return network.SetExtraHTTPHeaders(sessionHeaders(cfg)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetAutomationOverride(false).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return userAgentOverride(cfg).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDeviceMetricsOverride(ViewportWidth, ViewportHeight, 1, false).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetTimezoneOverride(timezoneID).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetLocaleOverride().WithLocale(locale).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range sessionCookies() {
				err := network.SetCookie(c.Name, c.Value).
					WithDomain("." + cfg.TargetDomain).
					WithPath("/").
					Do(ctx)
				if err != nil {
					return err
				}
			}
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, script := range []string{stealthScript, extract.NormalizeScript} {
				if _, err := page.AddScriptToEvaluateOnNewDocument(script).Do(ctx); err != nil {
					return err
				}
			}
			return nil
		}),
	})
}

func sessionHeaders(cfg config.Config) network.Headers {
	brands := fmt.Sprintf(`"Chromium";v="%d", "Google Chrome";v="%d", "Not-A.Brand";v="99"`, cfg.ChromeMajor, cfg.ChromeMajor)
	return network.Headers{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           acceptLanguage,
		"Accept-Encoding":           "gzip, deflate, br",
		"Sec-Ch-Ua":                 brands,
		"Sec-Ch-Ua-Mobile":          "?0",
		"Sec-Ch-Ua-Platform":        `"Windows"`,
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "cross-site",
		"Sec-Fetch-User":            "?1",
		"Upgrade-Insecure-Requests": "1",
		"Referer":                   searchReferer,
	}
}

func userAgentOverride(cfg config.Config) *emulation.SetUserAgentOverrideParams {
	major := fmt.Sprintf("%d", cfg.ChromeMajor)
	return emulation.SetUserAgentOverride(cfg.UserAgent).
		WithAcceptLanguage(acceptLanguage).
		WithPlatform("Win32").
		WithUserAgentMetadata(&emulation.UserAgentMetadata{
			Brands: []*emulation.UserAgentBrandVersion{
				{Brand: "Chromium", Version: major},
				{Brand: "Google Chrome", Version: major},
				{Brand: "Not-A.Brand", Version: "99"},
			},
			Platform:        "Windows",
			PlatformVersion: "10.0.0",
			Architecture:    "x86",
			Mobile:          false,
		})
}

// SessionCookie is one cookie planted before navigation.
type SessionCookie struct {
	Name  string
	Value string
}

// sessionCookies returns analytics-style identifiers with randomized
// values plus a returning-visitor marker.
func sessionCookies() []SessionCookie {
	return []SessionCookie{
		{Name: "_ga", Value: "GA1.2." + randomID()},
		{Name: "_gid", Value: "GA1.2." + randomID()},
		{Name: "_fbp", Value: "fb.1." + randomID()},
		{Name: "visited", Value: "true"},
	}
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
