package classify

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/document"
)

func TestClassifyBlock_DefaultByLevel(t *testing.T) {
	cases := []struct {
		level int
		want  document.BlockType
	}{
		{1, document.BlockChapter},
		{2, document.BlockSection},
		{3, document.BlockSubsection},
		{4, document.BlockParagraph},
		{7, document.BlockParagraph},
	}
	for _, c := range cases {
		b := document.Block{Title: "Forces and Motion", Level: c.level}
		ClassifyBlock(&b)
		if b.Type != c.want {
			t.Errorf("level %d: expected %q, got %q", c.level, c.want, b.Type)
		}
	}
}

func TestClassifyBlock_KeywordRules(t *testing.T) {
	cases := []struct {
		title string
		want  document.BlockType
	}{
		{"Exercise 4.2", document.BlockExercise},
		{"End of Chapter Quiz", document.BlockQuiz},
		{"Chapter Summary", document.BlockSummary},
		{"Worked Example 3", document.BlockExample},
		{"Glossary of Terms", document.BlockDefinition},
	}
	for _, c := range cases {
		b := document.Block{Title: c.title, Level: 2}
		ClassifyBlock(&b)
		if b.Type != c.want {
			t.Errorf("%q: expected %q, got %q", c.title, c.want, b.Type)
		}
	}
}

func TestClassifyBlock_FirstRuleWins(t *testing.T) {
	// "Practice" (exercise) appears alongside "quiz"; exercise is
	// evaluated first.
	b := document.Block{Title: "Practice Quiz", Level: 2}
	ClassifyBlock(&b)
	if b.Type != document.BlockExercise {
		t.Errorf("expected exercise, got %q", b.Type)
	}
}

func TestClassifyBlock_NoteRequiresColon(t *testing.T) {
	b := document.Block{Title: "Reading", Level: 2, ContentPreview: "note: always check units before substituting"}
	ClassifyBlock(&b)
	if b.Type != document.BlockNote {
		t.Errorf("expected note, got %q", b.Type)
	}
}

func TestClassifyBlock_GlossaryLines(t *testing.T) {
	b := document.Block{
		Title:          "Appendix A",
		Level:          2,
		ContentPreview: "Velocity: the rate of change of displacement with time",
	}
	ClassifyBlock(&b)
	if b.Type != document.BlockDefinition {
		t.Errorf("expected definition from glossary lines, got %q", b.Type)
	}
}

func TestClassifyBlock_ExerciseSubtype(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Exercise 1: Multiple Choice", "multiple_choice"},
		{"Exercise 2: True or False", "true_false"},
		{"Exercise 3: Short Answer", "short_answer"},
		{"Exercise 4: Essay Questions", "essay"},
		{"Exercise 5: Fill in the Blank", "fill_blank"},
		{"Exercise 6: Write a Program", "coding"},
		{"Exercise 7", "problem_solving"},
	}
	for _, c := range cases {
		b := document.Block{Title: c.title, Level: 2}
		ClassifyBlock(&b)
		if !b.IsExercise {
			t.Errorf("%q: expected IsExercise", c.title)
			continue
		}
		if b.ExerciseType != c.want {
			t.Errorf("%q: expected subtype %q, got %q", c.title, c.want, b.ExerciseType)
		}
	}
}

func TestClassifyBlock_NonExerciseHasNoSubtype(t *testing.T) {
	b := document.Block{Title: "Chapter Summary", Level: 1}
	ClassifyBlock(&b)
	if b.IsExercise || b.ExerciseType != "" {
		t.Errorf("expected no exercise marking, got IsExercise=%v type=%q", b.IsExercise, b.ExerciseType)
	}
}
