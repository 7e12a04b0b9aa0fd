package structure

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// bookmarkStrategy builds the tree from the document's native outline.
// Bookmark nesting depth maps directly to block level; end pages are
// inferred from the next same-or-shallower entry.
type bookmarkStrategy struct{}

func (s *bookmarkStrategy) name() string { return "bookmarks" }

func (s *bookmarkStrategy) detect(src *document.Source) []box {
	if len(src.Bookmarks) == 0 {
		return nil
	}

	var boxes []box
	// parents[level] holds the box index of the open box at that level.
	parents := map[int]int{}

	for _, bm := range src.Bookmarks {
		if bm.Page < 1 || bm.Page > src.PageCount {
			continue
		}
		title := cleanTitle(bm.Title)
		if title == "" {
			continue
		}

		level := bm.Depth + 1
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
			start:  bm.Page,
		})
		parents[level] = len(boxes) - 1
		// A new entry closes any deeper open boxes.
		for l := range parents {
			if l > level {
				delete(parents, l)
			}
		}
	}

	fillEndPages(boxes, src.PageCount)

	if len(boxes) < 2 {
		return nil
	}
	return boxes
}

// fillEndPages sets each box's end page to the page before the next
// same-or-shallower box, or the document end.
func fillEndPages(boxes []box, pageCount int) {
	for i := range boxes {
		end := pageCount
		for j := i + 1; j < len(boxes); j++ {
			if boxes[j].level <= boxes[i].level {
				end = boxes[j].start - 1
				break
			}
		}
		boxes[i].end = end
	}
}

var titlePrefixRe = regexp.MustCompile(`(?i)^(?:chapter|unit|section|part|module)\s+\d+\s*:?\s*`)

// cleanTitle collapses whitespace, strips redundant "Chapter N:" style
// prefixes and bounds the length.
func cleanTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	stripped := titlePrefixRe.ReplaceAllString(title, "")
	if stripped != "" {
		title = stripped
	}
	if len(title) > 100 {
		title = title[:97] + "..."
	}
	return strings.TrimSpace(title)
}
