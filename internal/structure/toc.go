package structure

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// tocStrategy parses table-of-contents text from the scan window (first
// and last pages): lines of "<title> ... <page>" with optional dot
// leaders. Entry level comes from indentation and numbering depth.
type tocStrategy struct {
	first int
	last  int
}

func (s *tocStrategy) name() string { return "toc_text" }

var tocKeywordRe = regexp.MustCompile(`(?i)\btable of contents\b|\bcontents\b|\bindex\b`)

var (
	dotLeaderPageRe = regexp.MustCompile(`\.{2,}\s*(\d+)\s*$`)
	trailingPageRe  = regexp.MustCompile(`\s+(\d+)\s*$`)
)

func (s *tocStrategy) detect(src *document.Source) []box {
	for _, pageText := range s.candidatePages(src) {
		if boxes := parseTocText(pageText, src.PageCount); boxes != nil {
			return boxes
		}
	}
	return nil
}

// candidatePages returns the scan-window pages that look like a ToC.
func (s *tocStrategy) candidatePages(src *document.Source) []string {
	var out []string
	seen := map[int]bool{}

	consider := func(i int) {
		if i < 0 || i >= len(src.Pages) || seen[i] {
			return
		}
		seen[i] = true
		if tocKeywordRe.MatchString(src.Pages[i].Text) {
			out = append(out, src.Pages[i].Text)
		}
	}

	for i := 0; i < s.first; i++ {
		consider(i)
	}
	for i := len(src.Pages) - s.last; i < len(src.Pages); i++ {
		consider(i)
	}
	return out
}

// parseTocText extracts entries from one candidate page. Returns nil
// unless at least two plausible entries were found.
func parseTocText(text string, pageCount int) []box {
	var boxes []box
	parents := map[int]int{}

	for _, line := range strings.Split(text, "\n") {
		original := line
		line = strings.TrimSpace(line)
		if len(line) < 5 {
			continue
		}

		m := dotLeaderPageRe.FindStringSubmatch(line)
		if m == nil {
			m = trailingPageRe.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}
		pageNum, err := strconv.Atoi(m[1])
		if err != nil || pageNum < 1 || pageNum > pageCount {
			continue
		}

		title := dotLeaderPageRe.ReplaceAllString(line, "")
		title = trailingPageRe.ReplaceAllString(title, "")

		indent := len(original) - len(strings.TrimLeft(original, " \t"))
		levelFromIndent := indent/4 + 1
		levelFromNumber, _ := numberingLevel(title)

		level := levelFromIndent
		if levelFromNumber > level {
			level = levelFromNumber
		}

		title = cleanTitle(title)
		if title == "" {
			continue
		}

		parent := -1
		for l := level - 1; l >= 1; l-- {
			if idx, ok := parents[l]; ok {
				parent = idx
				break
			}
		}

		boxes = append(boxes, box{
			title:  title,
			level:  level,
			parent: parent,
			start:  pageNum,
		})
		parents[level] = len(boxes) - 1
		for l := range parents {
			if l > level {
				delete(parents, l)
			}
		}
	}

	if len(boxes) < 2 {
		return nil
	}
	fillEndPages(boxes, pageCount)
	return boxes
}
