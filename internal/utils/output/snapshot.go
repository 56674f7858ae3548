package output

import (
	"os"
	"path/filepath"

	urlutil "github.com/law-makers/racecard/internal/utils/url"
	"github.com/rs/zerolog/log"
)

// SnapshotWriter saves diagnostic HTML copies of fetched pages. Writing is
// best effort: failures are logged and never returned. A nil writer is
// disabled.
type SnapshotWriter struct {
	dir string
}

// NewSnapshotWriter returns a writer for dir, or nil when dir is empty
func NewSnapshotWriter(dir string) *SnapshotWriter {
	if dir == "" {
		return nil
	}
	return &SnapshotWriter{dir: dir}
}

// Enabled reports whether snapshots are written
func (w *SnapshotWriter) Enabled() bool {
	return w != nil
}

// Path returns the file a snapshot of kind for the page at id is written to
func (w *SnapshotWriter) Path(kind, id string) string {
	return filepath.Join(w.dir, kind+"_"+urlutil.PathSlug(id)+".html")
}

// Save writes content as the snapshot of kind ("race", "horse") for id
func (w *SnapshotWriter) Save(kind, id, content string) {
	if w == nil {
		return
	}

	path := w.Path(kind, id)
	if cleaned, err := CleanHTML(content); err == nil {
		content = cleaned
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		log.Warn().Err(err).Str("dir", w.dir).Msg("Failed to create snapshot directory")
		return
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Failed to write snapshot")
		return
	}
	log.Debug().Str("file", path).Msg("Snapshot saved")
}
