// Package extractor converts raw document bytes into per-page text,
// image counts and native bookmarks. It is the only package that touches
// source file formats; everything downstream sees document.Source.
package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// Extractor produces a page-structured Source from raw document bytes.
type Extractor interface {
	Extract(r io.Reader, filename string) (*document.Source, error)
}

// DefaultSyntheticPageChars is the page window used when paginating
// formats that have no physical pages (text, markdown, html, docx).
const DefaultSyntheticPageChars = 3000

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// Options tunes extractor construction. The zero value selects
// defaults.
type Options struct {
	SynthPageChars    int  // synthetic page window for non-PDF formats
	FallbackPdftotext bool // shell out to pdftotext when pdf parsing fails
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".txt":
		return &TextExtractor{PageChars: opts.SynthPageChars}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{PageChars: opts.SynthPageChars}, nil
	case ".html", ".htm":
		return &HTMLExtractor{PageChars: opts.SynthPageChars}, nil
	case ".docx":
		return &DOCXExtractor{PageChars: opts.SynthPageChars}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// cleanText strips NULs and collapses whitespace runs while preserving
// line structure (heading and question detection depend on line starts).
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// heading is a structural marker recorded while flattening a synthetic
// (non-PDF) source, keyed by byte offset into the flattened text.
type heading struct {
	title  string
	level  int // 1-based
	offset int
}

// paginate cuts text into fixed-size synthetic pages, breaking at line
// boundaries where possible. Returns the pages and the byte offset at
// which each page starts.
func paginate(text string, pageChars int) ([]document.Page, []int) {
	if pageChars <= 0 {
		pageChars = DefaultSyntheticPageChars
	}
	var pages []document.Page
	var starts []int

	off := 0
	for off < len(text) {
		end := off + pageChars
		if end >= len(text) {
			end = len(text)
		} else {
			// Prefer to break at the last newline inside the window.
			if nl := strings.LastIndexByte(text[off:end], '\n'); nl > 0 {
				end = off + nl
			}
		}
		pageText := strings.TrimSpace(text[off:end])
		starts = append(starts, off)
		pages = append(pages, document.Page{
			Number:    len(pages) + 1,
			Text:      pageText,
			CharCount: len(pageText),
		})
		if end == off {
			break
		}
		off = end
	}
	return pages, starts
}

// pageForOffset maps a byte offset in the flattened text to its 1-based
// synthetic page number.
func pageForOffset(starts []int, off int) int {
	page := 1
	for i, s := range starts {
		if off >= s {
			page = i + 1
		}
	}
	return page
}

// synthSource assembles a Source for a paginated-by-window format:
// flattened text plus headings recorded as synthetic bookmarks.
func synthSource(filename, title, text string, headings []heading, pageChars int) *document.Source {
	pages, starts := paginate(text, pageChars)

	var bookmarks []document.Bookmark
	for _, h := range headings {
		if h.title == "" {
			continue
		}
		bookmarks = append(bookmarks, document.Bookmark{
			Title: h.title,
			Page:  pageForOffset(starts, h.offset),
			Depth: h.level - 1,
		})
	}

	if title == "" {
		title = document.TitleFromFilename(filename)
	}
	return &document.Source{
		Filename:  filename,
		Title:     title,
		PageCount: len(pages),
		Pages:     pages,
		Bookmarks: bookmarks,
	}
}
