// Package watcher feeds the parse pipeline from a watched directory:
// supported files dropped into the directory are submitted as jobs.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgallion1/docstruct/internal/extractor"
	"github.com/dgallion1/docstruct/internal/pipeline"
	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must be quiet after the last write
// before it is submitted. Copies into the watched directory arrive as
// a burst of write events.
const settleDelay = 2 * time.Second

// Watcher monitors one directory and submits supported files.
type Watcher struct {
	dir          string
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func New(dir string, orch *pipeline.Orchestrator, log *slog.Logger) *Watcher {
	return &Watcher{
		dir:          dir,
		orchestrator: orch,
		log:          log,
		pending:      make(map[string]*time.Timer),
	}
}

// Run blocks until ctx is cancelled. Files already present when the
// watcher starts are submitted once, then fsnotify events drive the
// rest.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching directory", "dir", w.dir)

	w.submitExisting()

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !extractor.IsSupportedExtension(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// submitExisting queues supported files already in the directory.
func (w *Watcher) submitExisting() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.log.Warn("initial directory scan failed", "error", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		if extractor.IsSupportedExtension(path) {
			w.submit(path)
		}
	}
}

// schedule (re)arms the settle timer for a path. The last write wins.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.submit(path)
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) submit(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.log.Error("read watched file failed", "path", path, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	job := pipeline.NewJob(filepath.Base(path), "", data, false)
	if err := w.orchestrator.Submit(job); err != nil {
		w.log.Error("submit watched file failed", "path", path, "error", err)
		return
	}
	w.log.Info("submitted watched file", "path", path, "job_id", job.ID)
}
