package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docstruct/internal/classify"
	"github.com/dgallion1/docstruct/internal/document"
	"github.com/dgallion1/docstruct/internal/export"
	"github.com/dgallion1/docstruct/internal/extractor"
	"github.com/dgallion1/docstruct/internal/questions"
	"github.com/dgallion1/docstruct/internal/scan"
	"github.com/dgallion1/docstruct/internal/structure"
)

// parserVersion tags every result so consumers can tell which heuristic
// generation produced it.
const parserVersion = "1.0.0"

// scannedQuestionNote explains an empty question list on scanned input.
const scannedQuestionNote = "document is scanned; question extraction requires OCR"

// Worker processes a single document job.
type Worker struct {
	exporter    *export.Client
	log         *slog.Logger
	detector    *structure.Detector
	extractOpts extractor.Options
}

func NewWorker(exporter *export.Client, log *slog.Logger, detectCfg structure.Config, extractOpts extractor.Options) *Worker {
	return &Worker{
		exporter:    exporter,
		log:         log,
		detector:    structure.NewDetector(detectCfg),
		extractOpts: extractOpts,
	}
}

// Process runs the full parse pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	data := job.FileData()
	job.ContentHash = ContentHashHex(data)
	job.SetDocID(document.DocumentID(job.ContentHash))

	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: Extract pages.
	job.SetStatus(StatusExtracting, "extracting")
	ext, err := extractor.ForFile(job.Filename, w.extractOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	src, err := ext.Extract(bytes.NewReader(data), job.Filename)
	if err != nil {
		extErr := &document.ExtractionError{Filename: job.Filename, Err: err}
		log.Error("extraction failed", "error", extErr)
		job.AddError(extErr.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if job.Title != "" {
		src.Title = job.Title
	}
	if src.PageCount == 0 {
		log.Warn("no pages extracted")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetProgress(src.PageCount, 0, 0)
	log.Info("extracted pages", "pages", src.PageCount, "bookmarks", len(src.Bookmarks))

	// Phase 2: Scan detection and document classification. The two are
	// independent reads of the same pages, so they run concurrently.
	job.SetStatus(StatusAnalyzing, "analyzing")
	var (
		scanRes  scan.Result
		decision classify.Decision
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanRes = scan.Detect(src.Pages)
	}()
	go func() {
		defer wg.Done()
		decision = classify.Classify(classify.Input{
			Filename:  src.Filename,
			Pages:     src.Pages,
			Bookmarks: src.Bookmarks,
			PageCount: src.PageCount,
		})
	}()
	wg.Wait()
	log.Info("analyzed document",
		"is_scanned", scanRes.IsScanned,
		"scan_confidence", scanRes.Details.Confidence,
		"document_type", decision.Type,
		"type_confidence", decision.Confidence)

	// Phase 3: Structure detection. Always succeeds; the fallback
	// chunker is the floor.
	job.SetStatus(StatusDetectingStructure, "detecting_structure")
	detection := w.detector.Detect(src, job.DocID)
	job.SetProgress(0, len(detection.Blocks), 0)
	log.Info("detected structure",
		"strategy", detection.Strategy,
		"coverage", detection.Coverage,
		"blocks", len(detection.Blocks))

	// Phase 4: Content classification per block.
	job.SetStatus(StatusClassifyingContent, "classifying_content")
	for i := range detection.Blocks {
		classify.ClassifyBlock(&detection.Blocks[i])
	}

	// Phase 5: Question extraction for assessment-style documents, or
	// when the submitter forced it.
	wantQuestions := job.ExtractQuestions ||
		decision.Type == document.TypePastQuestions ||
		decision.Type == document.TypeExercises

	var qs []document.Question
	questionNote := ""
	if wantQuestions {
		job.SetStatus(StatusExtractingQuestions, "extracting_questions")
		if scanRes.IsScanned {
			questionNote = scannedQuestionNote
			log.Info("skipping question extraction", "reason", "scanned document")
		} else {
			qs = questions.Extract(src.Pages)
			job.SetProgress(0, 0, len(qs))
			log.Info("extracted questions", "questions", len(qs))
		}
	}

	// Assemble the result.
	details := scanRes.Details
	stats := document.BlockStats(detection.Blocks)
	if wantQuestions {
		qStats := document.QuestionStats(qs)
		stats.TotalQuestions = qStats.TotalQuestions
		stats.QuestionTypes = qStats.QuestionTypes
	}
	result := &document.Result{
		Document: document.Document{
			ID:            job.DocID,
			Filename:      src.Filename,
			Title:         src.Title,
			Type:          decision.Type,
			IsScanned:     scanRes.IsScanned,
			ScanDetails:   &details,
			Pages:         src.PageCount,
			ParserVersion: parserVersion,
		},
		Blocks:    detection.Blocks,
		Questions: qs,
		Structure: document.StructureInfo{
			Strategy: detection.Strategy,
			Coverage: detection.Coverage,
		},
		Stats:        stats,
		QuestionNote: questionNote,
	}
	job.SetResult(result)

	// Phase 6: Export, when configured. A parse that succeeded but
	// could not be delivered is partial, not failed.
	if w.exporter == nil {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	job.SetStatus(StatusExporting, "exporting")
	if err := w.deliver(ctx, result); err != nil {
		log.Error("export failed", "error", err)
		job.AddError(fmt.Sprintf("export: %s", err))
		job.SetStatus(StatusPartial, "exporting")
		return
	}
	log.Info("exported result")
	job.SetStatus(StatusCompleted, "done")
}

// deliver posts the result with bounded retries on transient failures.
func (w *Worker) deliver(ctx context.Context, result *document.Result) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.exporter.Deliver(ctx, result)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		w.log.Warn("retryable export error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
