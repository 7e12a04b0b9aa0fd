package structure

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// patternStrategy scans page text for heading lines: a heading keyword
// ("Chapter 3", "Part II") or a numbering family (numeric "1.2.3",
// alphabetic "B.", Roman "iv.") followed by short title-like text.
// Detection is page-granular: the first heading on a page opens a block
// there, closed by the next same-or-higher-level heading.
type patternStrategy struct{}

func (s *patternStrategy) name() string { return "heading_patterns" }

var (
	headingKeywordRe = regexp.MustCompile(`(?i)^(chapter|unit|part|module|section)\s+(\d+|[ivxlcdm]+)\b[.:]?\s*(.*)$`)

	numericHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+){0,2})[.)]?\s+(\S.*)$`)
	alphaHeadingRe   = regexp.MustCompile(`^([A-Z])\.\s+(\S.*)$`)
	romanHeadingRe   = regexp.MustCompile(`^(x{0,3}(?:ix|iv|v?i{0,3}))\.\s+(\S.*)$`)
)

func (s *patternStrategy) detect(src *document.Source) []box {
	var boxes []box
	parents := map[int]int{}

	for _, page := range src.Pages {
		title, level, ok := findHeading(page.Text)
		if !ok {
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
			start:  page.Number,
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
	fillEndPages(boxes, src.PageCount)
	return boxes
}

// maxHeadingScanLines bounds how far into a page we look for a heading.
const maxHeadingScanLines = 40

// findHeading returns the first heading on the page, if any.
func findHeading(text string) (string, int, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) > maxHeadingScanLines {
		lines = lines[:maxHeadingScanLines]
	}

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 80 {
			continue
		}

		if m := headingKeywordRe.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[3])
			if title == "" {
				// "Chapter 3" alone: the title is often the next
				// short standalone line.
				if t, ok := nextTitleLine(lines, i+1); ok {
					title = t
				} else {
					title = strings.Join(strings.Fields(line), " ")
				}
			}
			level := 1
			if strings.EqualFold(m[1], "section") {
				level = 2
			}
			return cleanTitle(title), level, true
		}

		if level, _ := numberingLevel(line); level > 0 {
			title := headingTitle(line)
			if title != "" {
				return cleanTitle(line), level, true
			}
		}
	}
	return "", 0, false
}

// nextTitleLine finds a short title-cased line following a bare heading
// keyword line.
func nextTitleLine(lines []string, from int) (string, bool) {
	for i := from; i < len(lines) && i < from+3; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if isTitleLine(line) {
			return line, true
		}
		return "", false
	}
	return "", false
}

// isTitleLine accepts short lines that start uppercase and do not read
// like body text or a question.
func isTitleLine(line string) bool {
	if len(line) < 3 || len(line) > 60 {
		return false
	}
	r := rune(line[0])
	if r < 'A' || r > 'Z' {
		return false
	}
	return !strings.ContainsAny(line, "?") && !strings.HasSuffix(line, ".")
}

// numberingLevel detects the numbering family at the start of a line
// and returns the hierarchy level (dot count + 1 for numeric; 1 for
// alphabetic and Roman) plus the raw number token.
func numberingLevel(line string) (int, string) {
	if m := numericHeadingRe.FindStringSubmatch(line); m != nil {
		return strings.Count(m[1], ".") + 1, m[1]
	}
	if m := romanHeadingRe.FindStringSubmatch(line); m != nil && m[1] != "" {
		return 1, m[1]
	}
	if m := alphaHeadingRe.FindStringSubmatch(line); m != nil {
		return 1, m[1]
	}
	return 0, ""
}

// headingTitle filters the text after a numbering token: headings are
// short, start uppercase and are not questions.
func headingTitle(line string) string {
	var rest string
	if m := numericHeadingRe.FindStringSubmatch(line); m != nil {
		rest = m[2]
	} else if m := romanHeadingRe.FindStringSubmatch(line); m != nil && m[1] != "" {
		rest = m[2]
	} else if m := alphaHeadingRe.FindStringSubmatch(line); m != nil {
		rest = m[2]
	}
	rest = strings.TrimSpace(rest)
	if !isTitleLine(rest) {
		return ""
	}
	return rest
}
