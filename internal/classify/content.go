package classify

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// contentRule maps a keyword pattern to a block type. Rules are ordered;
// the first match wins.
type contentRule struct {
	pattern   *regexp.Regexp
	blockType document.BlockType
}

var contentRules = []contentRule{
	{regexp.MustCompile(`\bexercise\b|\bpractice\b|\bdrill\b|\bproblem\b`), document.BlockExercise},
	{regexp.MustCompile(`\bquiz\b|\btest\b|\bassessment\b|\bquestion\b`), document.BlockQuiz},
	{regexp.MustCompile(`\bsummary\b|\breview\b|\bkey points\b|\bconclusion\b|\brecap\b`), document.BlockSummary},
	{regexp.MustCompile(`\bexample\b|\bcase study\b|\billustration\b`), document.BlockExample},
	{regexp.MustCompile(`\bdefinition\b|\bkey term\b|\bglossary\b|\bconcept\b`), document.BlockDefinition},
	{regexp.MustCompile(`\bnote\s*:|\bremark\s*:|\bimportant\s*:|\bremember\b`), document.BlockNote},
}

// glossaryLineRe matches "Term: explanation" lines, a second signal for
// definition blocks when no keyword appears in the title.
var glossaryLineRe = regexp.MustCompile(`(?m)^[A-Z][A-Za-z ]{1,40}:\s+\S`)

// exerciseSubtypeRules refine exercise/quiz blocks, in priority order.
var exerciseSubtypeRules = []struct {
	pattern *regexp.Regexp
	subtype string
}{
	{regexp.MustCompile(`multiple choice|mcq`), "multiple_choice"},
	{regexp.MustCompile(`\btrue\b|\bfalse\b`), "true_false"},
	{regexp.MustCompile(`short answer|\bbrief\b`), "short_answer"},
	{regexp.MustCompile(`\bessay\b|\bdiscuss\b`), "essay"},
	{regexp.MustCompile(`\bfill\b|\bblank\b`), "fill_blank"},
	{regexp.MustCompile(`\bcode\b|\bprogram\b`), "coding"},
}

// ClassifyBlock refines a block's type from its title and content
// preview. When no rule matches, the type defaults by level.
func ClassifyBlock(b *document.Block) {
	haystack := strings.ToLower(b.Title + "\n" + b.ContentPreview)

	b.Type = blockTypeByLevel(b.Level)
	for _, r := range contentRules {
		if r.pattern.MatchString(haystack) {
			b.Type = r.blockType
			break
		}
	}
	if b.Type == blockTypeByLevel(b.Level) && glossaryLineRe.MatchString(b.ContentPreview) {
		b.Type = document.BlockDefinition
	}

	if b.Type == document.BlockExercise || b.Type == document.BlockQuiz {
		b.IsExercise = true
		b.ExerciseType = "problem_solving"
		for _, r := range exerciseSubtypeRules {
			if r.pattern.MatchString(haystack) {
				b.ExerciseType = r.subtype
				break
			}
		}
	}
}

func blockTypeByLevel(level int) document.BlockType {
	switch level {
	case 1:
		return document.BlockChapter
	case 2:
		return document.BlockSection
	case 3:
		return document.BlockSubsection
	default:
		return document.BlockParagraph
	}
}
