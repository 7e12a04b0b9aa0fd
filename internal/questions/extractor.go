// Package questions segments page text into discrete questions and
// infers a type for each. It only makes sense for assessment-style
// documents; callers gate on the classified document type.
package questions

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// Numbering markers at line start. Numeric is the primary family;
// Roman and alphabetic are only tried on pages without numeric markers
// so that multiple-choice option labels ("A.", "B.") are not mistaken
// for question numbers.
var (
	numericMarkerRe = regexp.MustCompile(`(?m)^[ \t]*(?:\((\d+)\)|(\d+)[.)])[ \t]+`)
	wordMarkerRe    = regexp.MustCompile(`(?mi)^[ \t]*question[ \t]+(\d+)[:.\s][ \t]*`)
	romanMarkerRe   = regexp.MustCompile(`(?m)^[ \t]*(x{0,3}(?:ix|iv|v?i{1,3}))[.)][ \t]+`)
	alphaMarkerRe   = regexp.MustCompile(`(?m)^[ \t]*([A-Z])[.)][ \t]+`)
)

// questionIndicatorRe gates segments: a question contains a question
// mark, an interrogative, or an imperative task verb.
var questionIndicatorRe = regexp.MustCompile(`(?i)\?|\bwhat\b|\bwhy\b|\bhow\b|\bwhen\b|\bwhere\b|\bwho\b|\bwhich\b|\bcalculate\b|\bsolve\b|\bfind\b|\bdetermine\b|\bexplain\b|\bstate\b|\bchoose\b|\bselect\b|\blist\b|\bdescribe\b|\bdiscuss\b`)

const minQuestionChars = 10

type marker struct {
	number   string
	start    int // offset of the marker itself
	textFrom int // offset just past the marker
}

// segment is a question candidate before type classification.
type segment struct {
	number string
	text   string
	page   int
	open   bool // ran to page end; may continue on the next page
}

// Extract walks the pages in order and returns questions in page order,
// then in-page discovery order. A document with no recognizable
// markers yields an empty slice, never an error.
func Extract(pages []document.Page) []document.Question {
	var segments []segment

	for _, page := range pages {
		markers := findMarkers(page.Text)

		if len(markers) == 0 {
			// No markers: the whole page may continue an open question.
			if n := len(segments); n > 0 && segments[n-1].open {
				segments[n-1].text += "\n" + strings.TrimSpace(page.Text)
			}
			continue
		}

		// Text before the first marker continues the previous question.
		if n := len(segments); n > 0 && segments[n-1].open && markers[0].start > 0 {
			head := strings.TrimSpace(page.Text[:markers[0].start])
			if head != "" {
				segments[n-1].text += "\n" + head
			}
		}
		if n := len(segments); n > 0 {
			segments[n-1].open = false
		}

		for i, m := range markers {
			end := len(page.Text)
			if i+1 < len(markers) {
				end = markers[i+1].start
			}
			segments = append(segments, segment{
				number: m.number,
				text:   strings.TrimSpace(page.Text[m.textFrom:end]),
				page:   page.Number,
				open:   i == len(markers)-1,
			})
		}
	}

	var out []document.Question
	for _, s := range segments {
		text := strings.TrimSpace(s.text)
		if len(text) < minQuestionChars || !questionIndicatorRe.MatchString(text) {
			continue
		}
		out = append(out, document.Question{
			Number: s.number,
			Text:   text,
			Page:   s.page,
			Type:   classifyType(text),
		})
	}
	return out
}

// findMarkers locates question-start markers in one page's text.
func findMarkers(text string) []marker {
	markers := collect(text, numericMarkerRe)
	markers = append(markers, collect(text, wordMarkerRe)...)
	if len(markers) == 0 {
		markers = collect(text, romanMarkerRe)
	}
	if len(markers) == 0 {
		markers = collect(text, alphaMarkerRe)
	}

	// Keep document order and drop overlapping duplicates.
	sortMarkers(markers)
	return markers
}

func collect(text string, re *regexp.Regexp) []marker {
	var out []marker
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		number := ""
		for g := 1; g < len(m)/2; g++ {
			if m[2*g] >= 0 {
				number = text[m[2*g]:m[2*g+1]]
				break
			}
		}
		if number == "" {
			continue
		}
		out = append(out, marker{number: number, start: m[0], textFrom: m[1]})
	}
	return out
}

func sortMarkers(markers []marker) {
	for i := 1; i < len(markers); i++ {
		for j := i; j > 0 && markers[j].start < markers[j-1].start; j-- {
			markers[j], markers[j-1] = markers[j-1], markers[j]
		}
	}
}
