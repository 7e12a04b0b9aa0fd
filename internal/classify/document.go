// Package classify assigns document types and block content types using
// weighted lexical and structural rules. Rules are data evaluated by one
// scorer so each can be tested on its own.
package classify

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// sampleSize is how many leading pages feed the lexical signals.
const sampleSize = 10

// Input carries everything the document classifier looks at.
type Input struct {
	Filename  string
	Pages     []document.Page
	Bookmarks []document.Bookmark
	PageCount int
}

// Decision is the chosen type with its aggregate scores. Confidence is
// 0-100 and used for reporting and tie-breaking only.
type Decision struct {
	Type       document.DocumentType
	Confidence int
	Scores     map[document.DocumentType]int
}

// lexRule adds weight to a target type per occurrence of a pattern in
// the sample text, capped so no single signal dominates.
type lexRule struct {
	pattern *regexp.Regexp
	target  document.DocumentType
	weight  int
	cap     int
}

var lexRules = []lexRule{
	{regexp.MustCompile(`\b(waec|neco|jamb|utme|gce)\b`), document.TypePastQuestions, 3, 10},
	{regexp.MustCompile(`\bobjective test\b|\btheory\b|\bpast questions?\b`), document.TypePastQuestions, 2, 10},
	{regexp.MustCompile(`\bexercise\s+\d+|\bpractice\s+\d+|\bdrill\s+\d+|\bactivity\s+\d+`), document.TypeExercises, 2, 10},
	{regexp.MustCompile(`\bchapter\s+\d+|\bunit\s+\d+`), document.TypeTextbook, 2, 10},
	{regexp.MustCompile(`\bis defined as\b|\brefers to\b|\bglossary\b`), document.TypeReference, 1, 10},
}

var (
	filenamePastRe     = regexp.MustCompile(`past|exam|waec|neco|utme|jamb`)
	filenameExerciseRe = regexp.MustCompile(`exercise|practice|drill|worksheet`)

	numberedItemRe = regexp.MustCompile(`(?m)^\s*\(?\d+[.)]\s+\S`)
	solutionRe     = regexp.MustCompile(`\bsolution\s*:|\banswer\s*:`)
	// Evaluated against lowercased sample text.
	optionMarkerRe = regexp.MustCompile(`\b[a-d][.)]\s`)
	chapterTitleRe = regexp.MustCompile(`(?i)\bchapter\b|\bunit\b`)
)

// orderedTypes fixes evaluation order so ties resolve to the earliest
// entry; textbook is the default, least-surprising label.
var orderedTypes = []document.DocumentType{
	document.TypeTextbook,
	document.TypePastQuestions,
	document.TypeExercises,
	document.TypeReference,
}

// Classify scores every signal and picks the highest aggregate. The
// textbook floor score guarantees a result even when nothing matches.
func Classify(in Input) Decision {
	scores := map[document.DocumentType]int{
		document.TypeTextbook: 1, // floor: fallback default
	}

	sample := sampleText(in.Pages)

	for _, r := range lexRules {
		n := len(r.pattern.FindAllStringIndex(sample, -1))
		if n > r.cap {
			n = r.cap
		}
		scores[r.target] += n * r.weight
	}

	// Filename tokens are a strong signal: uploaders name exam papers
	// and worksheets accurately far more often than not.
	name := strings.ToLower(in.Filename)
	if filenamePastRe.MatchString(name) {
		scores[document.TypePastQuestions] += 8
	} else if filenameExerciseRe.MatchString(name) {
		scores[document.TypeExercises] += 8
	}

	// Dense numbered items lean toward question material; worked
	// solutions shift the lean from past_questions to exercises.
	numbered := len(numberedItemRe.FindAllStringIndex(sample, -1))
	options := len(optionMarkerRe.FindAllStringIndex(sample, -1))
	if numbered > 20 {
		if solutionRe.MatchString(sample) {
			scores[document.TypeExercises] += 6
		} else {
			scores[document.TypePastQuestions] += 6
		}
	}
	if options > 20 {
		scores[document.TypePastQuestions] += 4
	}

	// A deep native outline spanning the document is textbook shape.
	if len(in.Bookmarks) >= 5 {
		scores[document.TypeTextbook] += 3
		for _, bm := range in.Bookmarks {
			if bm.Depth > 0 {
				scores[document.TypeTextbook] += 2
				break
			}
		}
		for _, bm := range in.Bookmarks {
			if chapterTitleRe.MatchString(bm.Title) {
				scores[document.TypeTextbook] += 2
				break
			}
		}
	}

	// Short, definition-dense, question-sparse documents read as
	// reference material.
	if in.PageCount > 0 && in.PageCount <= 30 && numbered < 5 {
		if n := len(lexRules[4].pattern.FindAllStringIndex(sample, -1)); n >= 3 {
			scores[document.TypeReference] += 4
		}
	}

	best := orderedTypes[0]
	total := 0
	for _, t := range orderedTypes {
		total += scores[t]
		if scores[t] > scores[best] {
			best = t
		}
	}

	conf := 0
	if total > 0 {
		conf = 100 * scores[best] / total
	}
	if conf > 95 {
		conf = 95
	}

	return Decision{Type: best, Confidence: conf, Scores: scores}
}

func sampleText(pages []document.Page) string {
	n := len(pages)
	if n > sampleSize {
		n = sampleSize
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pages[i].Text)
	}
	return strings.ToLower(sb.String())
}
