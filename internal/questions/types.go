package questions

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

var (
	optionMarkerRe = regexp.MustCompile(`(?m)(?:^|\s)(?:[A-Da-d][.)]|\([a-d]\))\s+\S`)

	trueTokenRe  = regexp.MustCompile(`(?i)\btrue\b`)
	falseTokenRe = regexp.MustCompile(`(?i)\bfalse\b`)

	calcVerbRe = regexp.MustCompile(`(?i)\bcalculate\b|\bcompute\b|\bevaluate\b|\bfind the value\b|\bsolve\b`)
	numExprRe  = regexp.MustCompile(`\d+\s*[-+*/=^×÷]\s*\d+`)

	codingRe = regexp.MustCompile(`(?i)\bfunction\b|\balgorithm\b|\bpseudocode\b|\bprogram\b|\bsource code\b`)

	essayVerbRe = regexp.MustCompile(`(?i)\bdiscuss\b|\bexplain\b|\bdescribe\b|\bessay\b`)
)

// essayChars is the long-text threshold separating essay prompts from
// short-answer questions.
const essayChars = 300

// classifyType infers a question's type. Priority order matters: the
// first matching rule wins, problem_solving is the default.
func classifyType(text string) document.QuestionType {
	switch {
	case len(optionMarkerRe.FindAllStringIndex(text, -1)) >= 2:
		return document.QuestionMultipleChoice
	case trueTokenRe.MatchString(text) && falseTokenRe.MatchString(text):
		return document.QuestionTrueFalse
	case calcVerbRe.MatchString(text) || numExprRe.MatchString(text):
		return document.QuestionCalculation
	case codingRe.MatchString(text) || hasIndentedBlock(text):
		return document.QuestionCoding
	case len(text) > essayChars && essayVerbRe.MatchString(text):
		return document.QuestionEssay
	case len(text) <= essayChars && strings.HasSuffix(strings.TrimSpace(text), "?"):
		return document.QuestionShortAnswer
	default:
		return document.QuestionProblemSolving
	}
}

// hasIndentedBlock spots code-fence-like indentation: two or more
// consecutive lines indented by four-plus spaces.
func hasIndentedBlock(text string) bool {
	run := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "    ") && strings.TrimSpace(line) != "" {
			run++
			if run >= 2 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
