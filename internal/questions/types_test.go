package questions

import (
	"strings"
	"testing"

	"github.com/dgallion1/docstruct/internal/document"
)

func TestClassifyType(t *testing.T) {
	cases := []struct {
		name string
		text string
		want document.QuestionType
	}{
		{
			"multiple choice",
			"Which gas is most abundant in air?\nA. oxygen B. nitrogen C. argon D. carbon dioxide",
			document.QuestionMultipleChoice,
		},
		{
			"true false",
			"True or False: sound travels faster in water than in air.",
			document.QuestionTrueFalse,
		},
		{
			"calculation by verb",
			"Calculate the kinetic energy of the ball.",
			document.QuestionCalculation,
		},
		{
			"calculation by expression",
			"If y is 12 * 4, what is y?",
			document.QuestionCalculation,
		},
		{
			"coding by keyword",
			"Write a function that reverses a string.",
			document.QuestionCoding,
		},
		{
			"short answer",
			"What year did the war end?",
			document.QuestionShortAnswer,
		},
		{
			"essay",
			"Discuss the causes of the industrial revolution. " + strings.Repeat("Consider economic factors. ", 12),
			document.QuestionEssay,
		},
		{
			"problem solving default",
			"Draw and label the parts of a flowering plant.",
			document.QuestionProblemSolving,
		},
	}

	for _, c := range cases {
		if got := classifyType(c.text); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}

func TestClassifyType_IndentedBlockIsCoding(t *testing.T) {
	text := "Trace the output of the snippet below.\n    x = 1\n    y = x + 1\nShow each step."
	if got := classifyType(text); got != document.QuestionCoding {
		t.Errorf("expected coding, got %q", got)
	}
}

func TestHasIndentedBlock(t *testing.T) {
	if hasIndentedBlock("    one line only") {
		t.Error("single indented line should not count as a block")
	}
	if !hasIndentedBlock("    line one\n    line two") {
		t.Error("two consecutive indented lines should count as a block")
	}
	if hasIndentedBlock("    line one\nplain\n    line two") {
		t.Error("non-consecutive indented lines should not count")
	}
}
