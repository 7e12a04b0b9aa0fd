package pipeline

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/dgallion1/docstruct/internal/document"
	"github.com/dgallion1/docstruct/internal/extractor"
	"github.com/dgallion1/docstruct/internal/structure"
)

func newTestWorker() *Worker {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(nil, log, structure.DefaultConfig(), extractor.Options{})
}

func TestWorker_ProcessTextDocument(t *testing.T) {
	data := []byte("The mitochondrion is the powerhouse of the cell. " +
		"Cellular respiration converts glucose into usable energy for the organism.")
	job := NewJob("biology_notes.txt", "", data, false)

	newTestWorker().Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors %v)", job.Status, job.Progress.Errors)
	}
	result := job.Result()
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Document.ID != document.DocumentID(ContentHashHex(data)) {
		t.Error("expected document id derived from content hash")
	}
	if result.Document.Pages < 1 {
		t.Errorf("expected at least one page, got %d", result.Document.Pages)
	}
	if result.Structure.Strategy != "fallback_chunking" {
		t.Errorf("expected fallback strategy for plain prose, got %q", result.Structure.Strategy)
	}
	if result.Stats.TotalBlocks < 1 {
		t.Error("expected at least one block")
	}
	if result.Document.ParserVersion != parserVersion {
		t.Errorf("expected parser version %q, got %q", parserVersion, result.Document.ParserVersion)
	}
}

func TestWorker_Idempotent(t *testing.T) {
	data := []byte("Chapter review. Energy can neither be created nor destroyed, " +
		"only transformed from one form into another across the system boundary.")
	w := newTestWorker()

	a := NewJob("thermo.txt", "", data, false)
	w.Process(context.Background(), a)
	b := NewJob("thermo.txt", "", data, false)
	w.Process(context.Background(), b)

	ra, rb := a.Result(), b.Result()
	if ra == nil || rb == nil {
		t.Fatal("expected results from both runs")
	}
	if !reflect.DeepEqual(ra, rb) {
		t.Error("expected identical results for identical input")
	}
}

func TestWorker_ForcedQuestionExtraction(t *testing.T) {
	data := []byte("1. What is the capital of France and where is it located?\n" +
		"2. Calculate the sum of 15 + 27 showing your working.\n")
	job := NewJob("quiz_sheet.txt", "", data, true)

	newTestWorker().Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors %v)", job.Status, job.Progress.Errors)
	}
	result := job.Result()
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Questions))
	}
	if result.Questions[0].Type != document.QuestionShortAnswer {
		t.Errorf("expected short_answer, got %q", result.Questions[0].Type)
	}
	if result.Questions[1].Type != document.QuestionCalculation {
		t.Errorf("expected calculation, got %q", result.Questions[1].Type)
	}
	if result.Stats.TotalQuestions != 2 {
		t.Errorf("expected question stats, got %d", result.Stats.TotalQuestions)
	}
}

func TestWorker_TitleOverride(t *testing.T) {
	job := NewJob("raw_dump.txt", "Curated Course Pack", []byte("Plenty of prose lives on this page of the document."), false)
	newTestWorker().Process(context.Background(), job)
	if got := job.Result().Document.Title; got != "Curated Course Pack" {
		t.Errorf("expected submitted title to win, got %q", got)
	}
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	job := NewJob("archive.zip", "", []byte("zzzz"), false)
	newTestWorker().Process(context.Background(), job)
	if job.Status != StatusFailed {
		t.Errorf("expected failed, got %q", job.Status)
	}
	if job.Result() != nil {
		t.Error("expected no result on failure")
	}
}

func TestWorker_EmptyInputFails(t *testing.T) {
	job := NewJob("empty.txt", "", nil, false)
	newTestWorker().Process(context.Background(), job)
	if job.Status != StatusFailed {
		t.Errorf("expected failed for empty input, got %q", job.Status)
	}
}
