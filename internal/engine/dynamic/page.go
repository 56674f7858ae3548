// internal/engine/dynamic/page.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/racecard/internal/engine"
	"github.com/rs/zerolog/log"
)

// Page is one chromedp tab inside a Session
type Page struct {
	ctx       context.Context
	cancel    context.CancelFunc
	status    atomic.Int64
	closeOnce sync.Once
}

// listen records the status code of the main document response. Frames
// load after it, so only the first document response counts.
func (p *Page) listen() {
	chromedp.ListenTarget(p.ctx, func(ev interface{}) {
		if ev, ok := ev.(*network.EventResponseReceived); ok && ev.Type == network.ResourceTypeDocument {
			p.status.CompareAndSwap(0, ev.Response.Status)
		}
	})
}

// StatusCode returns the HTTP status of the page's document, or 0
func (p *Page) StatusCode() int {
	return int(p.status.Load())
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
// A timeout is reported as an EngineError carrying onTimeout.
func (p *Page) run(ctx context.Context, timeout time.Duration, onTimeout engine.ErrorCode, what string, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return engine.NewEngineError(onTimeout, fmt.Sprintf("%s timed out after %s", what, timeout), err).
			WithDetail("timeout", timeout.String())
	}
	return err
}

// navigateDOMReady issues the navigation and returns once the new document
// fires DOMContentLoaded. Subresources such as ads may still be loading.
func navigateDOMReady(url string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		listenCtx, stop := context.WithCancel(ctx)
		defer stop()

		ready := make(chan struct{})
		var once sync.Once
		chromedp.ListenTarget(listenCtx, func(ev interface{}) {
			if _, ok := ev.(*page.EventDomContentEventFired); ok {
				once.Do(func() { close(ready) })
			}
		})

		var res page.NavigateReturns
		if err := cdp.Execute(ctx, page.CommandNavigate, page.Navigate(url), &res); err != nil {
			return err
		}
		if res.ErrorText != "" {
			return fmt.Errorf("page load error %s", res.ErrorText)
		}

		select {
		case <-ready:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Navigate loads url and waits until its DOM is parsed, not for the load
// event. A document answered with an HTTP error status is reported as a
// NAVIGATION error carrying it.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	start := time.Now()
	p.status.Store(0)
	err := p.run(ctx, timeout, engine.ErrCodeTimeout, "navigation", navigateDOMReady(url))
	if err != nil {
		if engine.CodeOf(err) == engine.ErrCodeTimeout || errors.Is(err, context.Canceled) {
			return err
		}
		return engine.NewEngineError(engine.ErrCodeNavigation, "failed to load "+url, err)
	}

	if status := p.StatusCode(); status >= 400 {
		return engine.NewEngineError(engine.ErrCodeNavigation, fmt.Sprintf("%s returned HTTP %d", url, status), nil).
			WithDetail("status", status)
	}

	log.Debug().
		Str("url", url).
		Int("status", p.StatusCode()).
		Dur("elapsed_ms", time.Since(start)).
		Msg("Navigation completed")
	return nil
}

// ClickButton clicks the first visible button whose text contains label
func (p *Page) ClickButton(ctx context.Context, label string, timeout time.Duration) error {
	xpath := fmt.Sprintf(`//button[contains(normalize-space(.), '%s')]`, label)
	return p.run(ctx, timeout, engine.ErrCodeNotFound, "button "+label,
		chromedp.Click(xpath, chromedp.BySearch, chromedp.NodeVisible),
	)
}

// WaitFor blocks until selector matches an element in the DOM
func (p *Page) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	return p.run(ctx, timeout, engine.ErrCodeNotFound, "selector "+selector,
		chromedp.WaitReady(selector, chromedp.ByQuery),
	)
}

// OuterHTML returns the markup of the first element matching selector
func (p *Page) OuterHTML(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	var html string
	err := p.run(ctx, timeout, engine.ErrCodeNotFound, "selector "+selector,
		chromedp.OuterHTML(selector, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// Close closes the tab. It is safe to call more than once.
func (p *Page) Close() error {
	p.closeOnce.Do(func() {
		p.cancel()
		log.Debug().Msg("Browser tab closed")
	})
	return nil
}
