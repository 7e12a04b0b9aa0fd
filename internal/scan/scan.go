// Package scan decides whether a document is image-based (scanned) from
// per-page text density and image coverage. It is a pure function of the
// page sequence; bookmarks are never consulted.
package scan

import (
	"github.com/dgallion1/docstruct/internal/document"
)

const (
	// Below this average chars/page the text layer is effectively absent.
	minTextChars = 50
	// A mostly-image document with sparse text is treated as scanned.
	imagePageFraction = 0.80
	lowTextChars      = 200

	// A page with this many chars counts as a text page.
	textPageChars = 100
)

// Result is the scan decision with its supporting detail.
type Result struct {
	IsScanned bool
	Details   document.ScanDetails
}

// Detect classifies the page sequence. Zero pages yields not-scanned with
// zero confidence rather than an error.
func Detect(pages []document.Page) Result {
	if len(pages) == 0 {
		return Result{Details: document.ScanDetails{Reason: "no pages"}}
	}

	textPages := 0
	imagePages := 0
	totalChars := 0
	totalImages := 0
	for _, p := range pages {
		if p.CharCount > textPageChars {
			textPages++
		}
		totalChars += p.CharCount
		if p.ImageCount > 0 {
			imagePages++
		}
		totalImages += p.ImageCount
	}

	avgChars := totalChars / len(pages)
	imageFraction := float64(imagePages) / float64(len(pages))

	details := document.ScanDetails{
		SamplePages:     len(pages),
		TextPages:       textPages,
		ImagePages:      imagePages,
		AvgCharsPerPage: avgChars,
		TotalImages:     totalImages,
	}

	switch {
	case avgChars < minTextChars:
		details.Confidence = 90
		details.Reason = "near-zero extractable text"
		details.NeedsOCR = true
		return Result{IsScanned: true, Details: details}
	case imageFraction >= imagePageFraction && avgChars < lowTextChars:
		details.Confidence = 70
		details.Reason = "high image coverage, low text density"
		details.NeedsOCR = true
		return Result{IsScanned: true, Details: details}
	default:
		// Confidence grows with text density above the low-text line.
		conf := 50 + (avgChars-lowTextChars)/20
		if conf < 50 {
			conf = 50
		}
		if conf > 95 {
			conf = 95
		}
		details.Confidence = conf
		details.Reason = "extractable text layer present"
		return Result{Details: details}
	}
}
