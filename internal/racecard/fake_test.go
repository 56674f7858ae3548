package racecard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/racecard/internal/engine"
	"github.com/law-makers/racecard/internal/utils/output"
)

// fakeSite is an in-memory website behind fake browser sessions. Selectors
// are evaluated against the stored HTML with goquery.
type fakeSite struct {
	mu          sync.Mutex
	pages       map[string]string
	navErrs     map[string]error
	navFailures map[string]int
	panicOnRead map[string]bool
	consentErr  error
	newPageErr  error

	navigated   []string
	pagesOpened int
	pagesClosed int
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		pages:       make(map[string]string),
		navErrs:     make(map[string]error),
		navFailures: make(map[string]int),
		panicOnRead: make(map[string]bool),
		consentErr:  engine.NewEngineError(engine.ErrCodeNotFound, "button timed out", context.DeadlineExceeded),
	}
}

func (s *fakeSite) openPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagesOpened - s.pagesClosed
}

type fakeSession struct {
	site   *fakeSite
	mu     sync.Mutex
	closes int
}

func (s *fakeSession) NewPage(ctx context.Context) (engine.Page, error) {
	s.site.mu.Lock()
	defer s.site.mu.Unlock()
	if s.site.newPageErr != nil {
		return nil, s.site.newPageErr
	}
	s.site.pagesOpened++
	return &fakePage{site: s.site}, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *fakeSession) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

type fakePage struct {
	site   *fakeSite
	url    string
	closed bool
}

func (p *fakePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	p.site.navigated = append(p.site.navigated, url)
	p.url = url
	if err, ok := p.site.navErrs[url]; ok {
		return err
	}
	if p.site.navFailures[url] > 0 {
		p.site.navFailures[url]--
		return engine.NewEngineError(engine.ErrCodeNavigation, url+" returned HTTP 503", nil).WithDetail("status", 503)
	}
	if _, ok := p.site.pages[url]; !ok {
		return engine.NewEngineError(engine.ErrCodeNavigation, "failed to load "+url, errors.New("net::ERR_NAME_NOT_RESOLVED"))
	}
	return nil
}

func (p *fakePage) ClickButton(ctx context.Context, label string, timeout time.Duration) error {
	return p.site.consentErr
}

func (p *fakePage) find(selector string) (*goquery.Selection, error) {
	p.site.mu.Lock()
	html := p.site.pages[p.url]
	p.site.mu.Unlock()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil, engine.NewEngineError(engine.ErrCodeNotFound, "selector "+selector+" timed out", context.DeadlineExceeded)
	}
	return sel.First(), nil
}

func (p *fakePage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	_, err := p.find(selector)
	return err
}

func (p *fakePage) OuterHTML(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	p.site.mu.Lock()
	panicking := p.site.panicOnRead[p.url]
	p.site.mu.Unlock()
	if panicking {
		panic("renderer went away")
	}

	sel, err := p.find(selector)
	if err != nil {
		return "", err
	}
	return goquery.OuterHtml(sel)
}

func (p *fakePage) Close() error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.site.pagesClosed++
	}
	return nil
}

// newTestFetcher returns a Fetcher with short timeouts and near-instant retries
func newTestFetcher(snapshots *output.SnapshotWriter) *Fetcher {
	f := NewFetcher(testTimeouts, snapshots)
	f.Retry.InitialBackoff = time.Millisecond
	f.Retry.MaxBackoff = time.Millisecond
	return f
}

// testTimeouts keeps every bound short; the fakes never wait
var testTimeouts = Timeouts{
	RaceNavigation: time.Second,
	Consent:        time.Second,
	RunnerRows:     time.Second,
	FormNavigation: time.Second,
	FormPanel:      time.Second,
	Read:           time.Second,
}

const testRaceURL = "https://www.attheraces.com/racecard/Ascot/17-October-2026/1330"

func runnerRow(horse, link, jockey string) string {
	var b strings.Builder
	b.WriteString(`<div class="card-entry">`)
	if horse != "" {
		if link != "" {
			b.WriteString(`<a class="horse__link" href="` + link + `">` + horse + `</a>`)
		} else {
			b.WriteString(`<a class="horse__link">` + horse + `</a>`)
		}
	}
	if jockey != "" {
		b.WriteString(`<div class="card-jockey">J: <a href="/jockey/x">` + jockey + `</a></div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func racecardPage(rows ...string) string {
	return `<html><head><title>Racecard</title></head><body><div class="card-body">` +
		strings.Join(rows, "\n") + `</div></body></html>`
}

func formPage(panel string) string {
	return `<html><body><h1>Profile</h1><div class="form-figures">` + panel + `</div></body></html>`
}
