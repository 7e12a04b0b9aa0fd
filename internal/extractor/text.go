package extractor

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// TextExtractor handles plain text files. Pages are synthetic fixed-size
// windows; there are no bookmarks to recover.
type TextExtractor struct {
	PageChars int
}

func (p *TextExtractor) Extract(r io.Reader, filename string) (*document.Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	text := cleanText(sb.String())
	return synthSource(filename, "", text, nil, p.PageChars), nil
}
