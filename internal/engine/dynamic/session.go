// internal/engine/dynamic/session.go
package dynamic

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/racecard/internal/config"
	"github.com/law-makers/racecard/internal/engine"
	"github.com/rs/zerolog/log"
)

// Session is a single headless Chrome instance with one browser context.
// Tabs opened through NewPage share its cookies, so a consent choice made on
// the racecard carries over to the horse pages.
type Session struct {
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	headers       network.Headers
	mu            sync.Mutex
	closed        bool
}

// SessionOptions configures the browser
type SessionOptions struct {
	Headless   bool
	UserAgent  string
	Proxy      string
	ChromePath string
	Headers    map[string]string
	ExtraArgs  []chromedp.ExecAllocatorOption
}

// NewSession starts Chrome and its browser context. The browser is torn
// down when ctx is cancelled or Close is called, whichever comes first.
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(debugf),
		chromedp.WithErrorf(debugf),
	)

	s := &Session{
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}
	if len(opts.Headers) > 0 {
		s.headers = make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			s.headers[k] = v
		}
	}

	// The first Run launches the browser process
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, engine.NewEngineError(engine.ErrCodeBrowserStart, "failed to start chrome", err)
	}

	log.Debug().Bool("headless", opts.Headless).Msg("Browser session started")
	return s, nil
}

func debugf(format string, args ...interface{}) {
	log.Debug().Str("component", "chromedp").Msgf(format, args...)
}

func allocatorOptions(opts SessionOptions) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(opts.UserAgent),
	}

	if path := FindChrome(opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	return append(allocOpts, opts.ExtraArgs...)
}

// NewPage opens a new tab in the session's browser context
func (s *Session) NewPage(ctx context.Context) (engine.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, engine.NewEngineError(engine.ErrCodeClosed, "cannot open page", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	p := &Page{ctx: tabCtx, cancel: tabCancel}
	p.listen()

	// Creates the target and enables the network domain for status tracking
	actions := []chromedp.Action{network.Enable()}
	if len(s.headers) > 0 {
		actions = append(actions, network.SetExtraHTTPHeaders(s.headers))
	}
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		tabCancel()
		return nil, engine.NewEngineError(engine.ErrCodeBrowserStart, "failed to open tab", err)
	}

	log.Debug().Msg("Browser tab opened")
	return p, nil
}

// Close shuts down the browser context and the allocator
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.browserCancel()
	s.allocCancel()

	log.Debug().Msg("Browser session closed")
	return nil
}

// Closed reports whether Close has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
