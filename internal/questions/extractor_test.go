package questions

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/document"
)

func page(n int, text string) document.Page {
	return document.Page{Number: n, Text: text, CharCount: len(text)}
}

func TestExtract_NumericMarkers(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "1. What is the capital of France?\n2. Calculate 5 + 3 for the answer."),
	})
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Number != "1" || qs[1].Number != "2" {
		t.Errorf("expected numbers 1 and 2, got %q and %q", qs[0].Number, qs[1].Number)
	}
	if qs[0].Type != document.QuestionShortAnswer {
		t.Errorf("expected short_answer, got %q", qs[0].Type)
	}
	if qs[1].Type != document.QuestionCalculation {
		t.Errorf("expected calculation, got %q", qs[1].Type)
	}
	if qs[0].Page != 1 {
		t.Errorf("expected page 1, got %d", qs[0].Page)
	}
}

func TestExtract_ParenthesizedAndWordMarkers(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "(1) Which planet is largest?\nQuestion 2: Explain how tides form in coastal regions."),
	})
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Number != "1" {
		t.Errorf("expected number 1, got %q", qs[0].Number)
	}
	if qs[1].Number != "2" {
		t.Errorf("expected number 2, got %q", qs[1].Number)
	}
}

func TestExtract_MultipleChoiceOptionsNotMistakenForQuestions(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "1. Which of these is a vector quantity?\nA. speed B. distance\nC. displacement D. temperature"),
	})
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].Type != document.QuestionMultipleChoice {
		t.Errorf("expected multiple_choice, got %q", qs[0].Type)
	}
}

func TestExtract_RomanMarkersWhenNoNumeric(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "i. Explain osmosis with an everyday example\nii. State the laws of motion in order"),
	})
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Number != "i" || qs[1].Number != "ii" {
		t.Errorf("expected Roman numbers, got %q and %q", qs[0].Number, qs[1].Number)
	}
}

func TestExtract_AlphaMarkersWhenNoNumeric(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "A. Describe the water cycle briefly\nB. List the three states of matter"),
	})
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Number != "A" || qs[1].Number != "B" {
		t.Errorf("expected alpha numbers, got %q and %q", qs[0].Number, qs[1].Number)
	}
}

func TestExtract_CrossPageContinuation(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "1. Explain the process of"),
		page(2, "photosynthesis in green plants and why it matters."),
	})
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	want := "Explain the process of\nphotosynthesis in green plants and why it matters."
	if qs[0].Text != want {
		t.Errorf("expected merged text %q, got %q", want, qs[0].Text)
	}
	if qs[0].Page != 1 {
		t.Errorf("expected question anchored to page 1, got %d", qs[0].Page)
	}
}

func TestExtract_HeadTextJoinsOpenQuestion(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "1. Describe the structure"),
		page(2, "of the human heart.\n2. What is blood pressure measured in?"),
	})
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	want := "Describe the structure\nof the human heart."
	if qs[0].Text != want {
		t.Errorf("expected merged text %q, got %q", want, qs[0].Text)
	}
	if qs[1].Page != 2 {
		t.Errorf("expected second question on page 2, got %d", qs[1].Page)
	}
}

func TestExtract_FiltersNonQuestions(t *testing.T) {
	qs := Extract([]document.Page{
		// No interrogative or task verb, and a too-short fragment.
		page(1, "1. 2020/2021 academic session\n2. Why?"),
	})
	if len(qs) != 0 {
		t.Fatalf("expected 0 questions, got %d", len(qs))
	}
}

func TestExtract_NoMarkersYieldsEmpty(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "This page is plain prose without any numbering at all."),
	})
	if len(qs) != 0 {
		t.Errorf("expected no questions, got %d", len(qs))
	}
}

func TestExtract_PageOrderPreserved(t *testing.T) {
	qs := Extract([]document.Page{
		page(1, "1. What is an atom?\n2. What is a molecule?"),
		page(2, "3. What is an ion?"),
	})
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	for i, want := range []string{"1", "2", "3"} {
		if qs[i].Number != want {
			t.Errorf("position %d: expected number %q, got %q", i, want, qs[i].Number)
		}
	}
	if qs[2].Page != 2 {
		t.Errorf("expected third question on page 2, got %d", qs[2].Page)
	}
}
