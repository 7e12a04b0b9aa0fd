package extractor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dgallion1/docstruct/internal/document"
)

// PDFExtractor handles PDF files. Page text comes from ledongthuc/pdf
// (with an optional pdftotext fallback); page count, outline bookmarks
// and per-page image counts come from pdfcpu.
type PDFExtractor struct {
	FallbackPdftotext bool
}

func (p *PDFExtractor) Extract(r io.Reader, filename string) (*document.Source, error) {
	// Both libraries want a ReadSeeker+size, so stage to a temp file.
	tmp, err := os.CreateTemp("", "docstruct-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pageCount, imageCounts, bookmarks := readStructure(tmpPath)

	texts, err := extractPageTexts(tmpPath)
	if err != nil && p.FallbackPdftotext {
		texts, err = extractPdftotext(tmpPath)
	}
	if err != nil && pageCount == 0 {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	if pageCount == 0 {
		pageCount = len(texts)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages := make([]document.Page, pageCount)
	for i := range pages {
		text := ""
		if i < len(texts) {
			text = cleanText(texts[i])
		}
		images := 0
		if i < len(imageCounts) {
			images = imageCounts[i]
		}
		pages[i] = document.Page{
			Number:     i + 1,
			Text:       text,
			CharCount:  len(text),
			ImageCount: images,
		}
	}

	return &document.Source{
		Filename:  filename,
		Title:     document.TitleFromFilename(filename),
		PageCount: pageCount,
		Pages:     pages,
		Bookmarks: bookmarks,
	}, nil
}

// readStructure pulls page count, per-page image counts and the native
// outline from pdfcpu. Structure access is best-effort: a PDF that
// pdfcpu cannot validate still gets text extraction.
func readStructure(path string) (int, []int, []document.Bookmark) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, nil
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return 0, nil, nil
	}

	imageCounts := make([]int, pctx.PageCount)
	if pctx.Optimize != nil {
		for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
			imageCounts[pageNr-1] = len(pdfcpu.ImageObjNrs(pctx, pageNr))
		}
	}

	var bookmarks []document.Bookmark
	if bms, err := pdfcpu.Bookmarks(pctx); err == nil {
		bookmarks = flattenBookmarks(bms, 0, pctx.PageCount, nil)
	}

	return pctx.PageCount, imageCounts, bookmarks
}

// flattenBookmarks walks the nested outline depth-first, keeping entries
// whose target page is in range.
func flattenBookmarks(bms []pdfcpu.Bookmark, depth, pageCount int, out []document.Bookmark) []document.Bookmark {
	for _, bm := range bms {
		title := strings.TrimSpace(cleanText(bm.Title))
		if title != "" && bm.PageFrom >= 1 && bm.PageFrom <= pageCount {
			out = append(out, document.Bookmark{
				Title: title,
				Page:  bm.PageFrom,
				Depth: depth,
			})
		}
		if len(bm.Kids) > 0 {
			out = flattenBookmarks(bm.Kids, depth+1, pageCount, out)
		}
	}
	return out
}

// extractPageTexts reads per-page plain text with ledongthuc/pdf.
func extractPageTexts(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	texts := make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts[i-1] = text
	}
	return texts, nil
}

// extractPdftotext shells out to pdftotext and splits on form feeds.
func extractPdftotext(path string) ([]string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return strings.Split(string(out), "\f"), nil
}
