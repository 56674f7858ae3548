package racecard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/law-makers/racecard/internal/engine"
	"github.com/law-makers/racecard/internal/utils/output"
	"github.com/law-makers/racecard/pkg/models"
)

func TestFetchRunners(t *testing.T) {
	site := newFakeSite()
	site.pages[testRaceURL] = racecardPage(
		runnerRow("Thunder Rhythm", "/form/horse/thunder-rhythm/101", "W. Buick"),
		runnerRow("No Link", "", "T. Marquand"),
		runnerRow("Mud Dancer", "/form/horse/mud-dancer/102", "H. Doyle"),
	)
	session := &fakeSession{site: site}

	rows, err := newTestFetcher(nil).FetchRunners(context.Background(), session, testRaceURL)
	if err != nil {
		t.Fatalf("FetchRunners() error = %v", err)
	}

	want := []models.RunnerRow{
		{HorseName: "Thunder Rhythm", JockeyName: "W. Buick", ProfileLink: "/form/horse/thunder-rhythm/101"},
		{HorseName: "Mud Dancer", JockeyName: "H. Doyle", ProfileLink: "/form/horse/mud-dancer/102"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if n := site.openPages(); n != 0 {
		t.Errorf("%d pages left open", n)
	}
}

func TestFetchRunnersConsentClicked(t *testing.T) {
	site := newFakeSite()
	site.consentErr = nil
	site.pages[testRaceURL] = racecardPage(runnerRow("Thunder Rhythm", "/form/horse/thunder-rhythm/101", "W. Buick"))

	rows, err := newTestFetcher(nil).FetchRunners(context.Background(), &fakeSession{site: site}, testRaceURL)
	if err != nil {
		t.Fatalf("FetchRunners() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestFetchRunnersNoRows(t *testing.T) {
	site := newFakeSite()
	site.pages[testRaceURL] = `<html><body><h1>Meeting abandoned</h1></body></html>`

	rows, err := newTestFetcher(nil).FetchRunners(context.Background(), &fakeSession{site: site}, testRaceURL)
	if !errors.Is(err, engine.ErrNoRaceData) {
		t.Fatalf("FetchRunners() error = %v, want ErrNoRaceData", err)
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
	if n := site.openPages(); n != 0 {
		t.Errorf("%d pages left open", n)
	}
}

func TestFetchRunnersSlowLoad(t *testing.T) {
	site := newFakeSite()
	site.pages[testRaceURL] = racecardPage(runnerRow("Thunder Rhythm", "/form/horse/thunder-rhythm/101", "W. Buick"))
	site.navErrs[testRaceURL] = engine.NewEngineError(engine.ErrCodeTimeout, "navigation timed out", context.DeadlineExceeded)

	rows, err := newTestFetcher(nil).FetchRunners(context.Background(), &fakeSession{site: site}, testRaceURL)
	if err != nil {
		t.Fatalf("FetchRunners() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestFetchRunnersNavigationFailure(t *testing.T) {
	site := newFakeSite()

	_, err := newTestFetcher(nil).FetchRunners(context.Background(), &fakeSession{site: site}, testRaceURL)
	if err == nil {
		t.Fatal("FetchRunners() expected error for unreachable page")
	}
	if !errors.Is(err, engine.ErrNavigation) {
		t.Errorf("error = %v, want ErrNavigation", err)
	}
	if n := site.openPages(); n != 0 {
		t.Errorf("%d pages left open", n)
	}
}

func TestFetchRunnersSnapshotOnMissingRows(t *testing.T) {
	dir := t.TempDir()
	site := newFakeSite()
	site.pages[testRaceURL] = `<html><body><script>track()</script><h1>No runners</h1></body></html>`

	f := newTestFetcher(output.NewSnapshotWriter(dir))
	if _, err := f.FetchRunners(context.Background(), &fakeSession{site: site}, testRaceURL); err == nil {
		t.Fatal("FetchRunners() expected error")
	}

	matches, err := filepath.Glob(filepath.Join(dir, "race_*.html"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one race snapshot, got %v (err %v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if got := string(data); !strings.Contains(got, "No runners") || strings.Contains(got, "track()") {
		t.Errorf("snapshot not cleaned: %s", got)
	}
}

func TestFetchForm(t *testing.T) {
	site := newFakeSite()
	site.pages[BaseOrigin+"/form/horse/thunder-rhythm/101"] = formPage(`<span>3</span><span>2</span>/<b>11</b>-4-0-9`)
	session := &fakeSession{site: site}

	got := newTestFetcher(nil).FetchForm(context.Background(), session, "/form/horse/thunder-rhythm/101")
	if got.FormCode != "211409" {
		t.Errorf("FormCode = %q, want %q", got.FormCode, "211409")
	}
	if diff := cmp.Diff([]string{BaseOrigin + "/form/horse/thunder-rhythm/101"}, site.navigated); diff != "" {
		t.Errorf("navigation mismatch (-want +got):\n%s", diff)
	}
	if n := site.openPages(); n != 0 {
		t.Errorf("%d pages left open", n)
	}
}

func TestFetchFormRetriesUnavailable(t *testing.T) {
	const link = "/form/horse/track-bullet/103"
	site := newFakeSite()
	site.pages[BaseOrigin+link] = formPage("4-3-5-2")
	site.navFailures[BaseOrigin+link] = 2

	f := newTestFetcher(nil)
	f.Retry.MaxAttempts = 3

	got := f.FetchForm(context.Background(), &fakeSession{site: site}, link)
	if got.FormCode != "4352" {
		t.Errorf("FormCode = %q, want %q", got.FormCode, "4352")
	}
	if n := len(site.navigated); n != 3 {
		t.Errorf("navigated %d times, want 3", n)
	}
}

func TestFetchFormRetriesExhausted(t *testing.T) {
	const link = "/form/horse/track-bullet/103"
	site := newFakeSite()
	site.pages[BaseOrigin+link] = formPage("4-3-5-2")
	site.navFailures[BaseOrigin+link] = 5

	f := newTestFetcher(nil)
	f.Retry.MaxAttempts = 2

	if got := f.FetchForm(context.Background(), &fakeSession{site: site}, link); got.FormCode != models.FormUnavailable {
		t.Errorf("FormCode = %q, want %q", got.FormCode, models.FormUnavailable)
	}
	if n := len(site.navigated); n != 2 {
		t.Errorf("navigated %d times, want 2", n)
	}
}

func TestFetchFormSingleAttemptByDefault(t *testing.T) {
	const link = "/form/horse/track-bullet/103"
	site := newFakeSite()
	site.pages[BaseOrigin+link] = formPage("4-3-5-2")
	site.navFailures[BaseOrigin+link] = 1

	if got := newTestFetcher(nil).FetchForm(context.Background(), &fakeSession{site: site}, link); got.FormCode != models.FormUnavailable {
		t.Errorf("FormCode = %q, want %q", got.FormCode, models.FormUnavailable)
	}
	if n := len(site.navigated); n != 1 {
		t.Errorf("navigated %d times, want 1", n)
	}
}

func TestFetchFormCustomOrigin(t *testing.T) {
	site := newFakeSite()
	site.pages["http://127.0.0.1:8080/horse/7"] = formPage("1-1-2")

	f := newTestFetcher(nil)
	f.BaseOrigin = "http://127.0.0.1:8080"

	if got := f.FetchForm(context.Background(), &fakeSession{site: site}, "/horse/7"); got.FormCode != "112" {
		t.Errorf("FormCode = %q, want %q", got.FormCode, "112")
	}
}

func TestFetchFormFailures(t *testing.T) {
	const link = "/form/horse/mud-dancer/102"
	profile := BaseOrigin + link

	tests := []struct {
		name  string
		setup func(*fakeSite)
	}{
		{
			name:  "page cannot open",
			setup: func(s *fakeSite) { s.newPageErr = engine.ErrSessionClosed },
		},
		{
			name: "navigation fails",
			setup: func(s *fakeSite) {
				s.navErrs[profile] = engine.NewEngineError(engine.ErrCodeTimeout, "navigation timed out", context.DeadlineExceeded)
			},
		},
		{
			name:  "profile missing",
			setup: func(s *fakeSite) {},
		},
		{
			name:  "no form panel",
			setup: func(s *fakeSite) { s.pages[profile] = `<html><body>Retired</body></html>` },
		},
		{
			name:  "empty form panel",
			setup: func(s *fakeSite) { s.pages[profile] = formPage("-") },
		},
		{
			name: "read panics",
			setup: func(s *fakeSite) {
				s.pages[profile] = formPage("1")
				s.panicOnRead[profile] = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newFakeSite()
			tt.setup(site)

			got := newTestFetcher(nil).FetchForm(context.Background(), &fakeSession{site: site}, link)
			if got.FormCode != models.FormUnavailable {
				t.Errorf("FormCode = %q, want %q", got.FormCode, models.FormUnavailable)
			}
			if n := site.openPages(); n != 0 {
				t.Errorf("%d pages left open", n)
			}
		})
	}
}
