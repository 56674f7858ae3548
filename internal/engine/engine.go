package engine

import (
	"context"
	"time"
)

// Session is one browser instance with a single isolated context.
// Pages opened from the same session share cookies and storage.
type Session interface {
	// NewPage opens a new tab in the session
	NewPage(ctx context.Context) (Page, error)

	// Close shuts the browser down. Calling it more than once is a no-op.
	Close() error
}

// Page is a single browser tab. Every blocking call is bounded by the
// timeout it is given.
type Page interface {
	// Navigate loads url in the tab
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// ClickButton clicks the first visible button whose text contains label
	ClickButton(ctx context.Context, label string, timeout time.Duration) error

	// WaitFor blocks until an element matching the CSS selector is in the DOM
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error

	// OuterHTML returns the markup of the first element matching the CSS selector
	OuterHTML(ctx context.Context, selector string, timeout time.Duration) (string, error)

	// Close closes the tab
	Close() error
}

// SessionFactory starts a new browser session
type SessionFactory func(ctx context.Context) (Session, error)
