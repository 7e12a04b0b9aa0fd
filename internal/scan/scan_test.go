package scan

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/document"
)

func makePages(n, charCount, imageCount int) []document.Page {
	pages := make([]document.Page, n)
	for i := range pages {
		pages[i] = document.Page{
			Number:     i + 1,
			CharCount:  charCount,
			ImageCount: imageCount,
		}
	}
	return pages
}

func TestDetect_NoPages(t *testing.T) {
	r := Detect(nil)
	if r.IsScanned {
		t.Error("expected zero pages to be not-scanned")
	}
	if r.Details.Confidence != 0 {
		t.Errorf("expected zero confidence, got %d", r.Details.Confidence)
	}
	if r.Details.Reason != "no pages" {
		t.Errorf("unexpected reason %q", r.Details.Reason)
	}
}

func TestDetect_NearZeroText(t *testing.T) {
	r := Detect(makePages(10, 49, 0))
	if !r.IsScanned {
		t.Fatal("expected avg 49 chars/page to be scanned")
	}
	if r.Details.Confidence != 90 {
		t.Errorf("expected confidence 90, got %d", r.Details.Confidence)
	}
	if !r.Details.NeedsOCR {
		t.Error("expected NeedsOCR")
	}
}

func TestDetect_JustAboveTextFloor(t *testing.T) {
	// 51 chars/page with no images crosses the near-zero line and no
	// other rule fires.
	r := Detect(makePages(10, 51, 0))
	if r.IsScanned {
		t.Fatal("expected avg 51 chars/page without images to be not-scanned")
	}
	if r.Details.Confidence != 50 {
		t.Errorf("expected clamped confidence 50, got %d", r.Details.Confidence)
	}
}

func TestDetect_ImageHeavyLowText(t *testing.T) {
	pages := makePages(10, 150, 0)
	for i := 0; i < 9; i++ { // 90% image coverage
		pages[i].ImageCount = 2
	}
	r := Detect(pages)
	if !r.IsScanned {
		t.Fatal("expected image-heavy low-text document to be scanned")
	}
	if r.Details.Confidence != 70 {
		t.Errorf("expected confidence 70, got %d", r.Details.Confidence)
	}
	if r.Details.ImagePages != 9 {
		t.Errorf("expected 9 image pages, got %d", r.Details.ImagePages)
	}
	if r.Details.TotalImages != 18 {
		t.Errorf("expected 18 total images, got %d", r.Details.TotalImages)
	}
}

func TestDetect_ImageHeavyButTextRich(t *testing.T) {
	// Full image coverage does not mean scanned when the text layer
	// is dense (figures in a real textbook).
	pages := makePages(10, 1500, 1)
	r := Detect(pages)
	if r.IsScanned {
		t.Error("expected text-rich document with images to be not-scanned")
	}
}

func TestDetect_TextRichConfidence(t *testing.T) {
	r := Detect(makePages(5, 1000, 0))
	if r.IsScanned {
		t.Fatal("expected text-rich document to be not-scanned")
	}
	// 50 + (1000-200)/20 = 90
	if r.Details.Confidence != 90 {
		t.Errorf("expected confidence 90, got %d", r.Details.Confidence)
	}
	if r.Details.Reason != "extractable text layer present" {
		t.Errorf("unexpected reason %q", r.Details.Reason)
	}
}

func TestDetect_ConfidenceCap(t *testing.T) {
	r := Detect(makePages(5, 5000, 0))
	if r.Details.Confidence != 95 {
		t.Errorf("expected confidence capped at 95, got %d", r.Details.Confidence)
	}
}

func TestDetect_TextPageCounting(t *testing.T) {
	pages := []document.Page{
		{Number: 1, CharCount: 100}, // at the threshold, not counted
		{Number: 2, CharCount: 101},
		{Number: 3, CharCount: 2000},
	}
	r := Detect(pages)
	if r.Details.TextPages != 2 {
		t.Errorf("expected 2 text pages, got %d", r.Details.TextPages)
	}
	if r.Details.SamplePages != 3 {
		t.Errorf("expected 3 sample pages, got %d", r.Details.SamplePages)
	}
}
