package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docstruct/internal/config"
	"github.com/dgallion1/docstruct/internal/export"
	"github.com/dgallion1/docstruct/internal/extractor"
	"github.com/dgallion1/docstruct/internal/structure"
)

// Orchestrator manages the parse pipeline: a bounded job queue drained
// by a fixed worker pool.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	exporter *export.Client
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Start launches the workers.
func NewOrchestrator(cfg config.Config, exporter *export.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		exporter: exporter,
		log:      log,
		cfg:      cfg,
	}
}

// NewJob builds a queued job for a document.
func NewJob(filename, title string, data []byte, extractQuestions bool) *Job {
	now := time.Now()
	job := &Job{
		ID:               generateULID(),
		Status:           StatusQueued,
		Phase:            "queued",
		Filename:         filename,
		Title:            title,
		ExtractQuestions: extractQuestions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	job.SetFileData(data)
	return job
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	detectCfg := structure.Config{
		FallbackChunkSize: o.cfg.FallbackChunkSize,
		TocScanFirst:      o.cfg.TocScanFirst,
		TocScanLast:       o.cfg.TocScanLast,
		MinCoverage:       o.cfg.MinStructureCoverage,
	}
	extractOpts := extractor.Options{
		SynthPageChars:    o.cfg.SynthPageChars,
		FallbackPdftotext: o.cfg.PDFFallbackPdftotext,
	}

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.exporter, o.log, detectCfg, extractOpts)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// Jobs returns every live job.
func (o *Orchestrator) Jobs() []*Job {
	return o.jobs.All()
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
