package document

import (
	"errors"
	"testing"
)

func TestDocumentID_Deterministic(t *testing.T) {
	a := DocumentID("abc123")
	b := DocumentID("abc123")
	if a != b {
		t.Errorf("expected identical ids, got %q and %q", a, b)
	}
	if a == DocumentID("def456") {
		t.Error("expected different ids for different hashes")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID string, got %q", a)
	}
}

func TestBlockID_Deterministic(t *testing.T) {
	doc := DocumentID("abc123")
	if BlockID(doc, 0) != BlockID(doc, 0) {
		t.Error("expected identical block ids for identical input")
	}
	if BlockID(doc, 0) == BlockID(doc, 1) {
		t.Error("expected different ids for different ordinals")
	}
	if BlockID(doc, 0) == BlockID(DocumentID("def456"), 0) {
		t.Error("expected different ids for different documents")
	}
}

func TestSourceText_Clamps(t *testing.T) {
	src := &Source{
		PageCount: 3,
		Pages: []Page{
			{Number: 1, Text: "one"},
			{Number: 2, Text: "two"},
			{Number: 3, Text: "three"},
		},
	}
	if got := src.Text(2, 3); got != "two\nthree" {
		t.Errorf("expected %q, got %q", "two\nthree", got)
	}
	if got := src.Text(-5, 99); got != "one\ntwo\nthree" {
		t.Errorf("expected clamped full text, got %q", got)
	}
}

func TestChildIndex(t *testing.T) {
	blocks := []Block{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "a"},
		{ID: "d", ParentID: "b"},
	}
	idx := ChildIndex(blocks)
	if got := idx["a"]; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected children of a: %v", got)
	}
	if got := idx["b"]; len(got) != 1 || got[0] != 3 {
		t.Errorf("unexpected children of b: %v", got)
	}
	if len(idx["d"]) != 0 {
		t.Errorf("expected no children of d, got %v", idx["d"])
	}
}

func TestBlockStats(t *testing.T) {
	blocks := []Block{
		{Type: BlockChapter, Level: 1},
		{Type: BlockSection, Level: 2},
		{Type: BlockSection, Level: 2},
		{Type: BlockExercise, Level: 3},
	}
	s := BlockStats(blocks)
	if s.TotalBlocks != 4 {
		t.Errorf("expected 4 blocks, got %d", s.TotalBlocks)
	}
	if s.BlockTypes["section"] != 2 {
		t.Errorf("expected 2 sections, got %d", s.BlockTypes["section"])
	}
	if s.HierarchyDepth != 3 {
		t.Errorf("expected depth 3, got %d", s.HierarchyDepth)
	}
}

func TestQuestionStats(t *testing.T) {
	qs := []Question{
		{Type: QuestionMultipleChoice},
		{Type: QuestionMultipleChoice},
		{Type: QuestionEssay},
	}
	s := QuestionStats(qs)
	if s.TotalQuestions != 3 {
		t.Errorf("expected 3 questions, got %d", s.TotalQuestions)
	}
	if s.QuestionTypes["multiple_choice"] != 2 {
		t.Errorf("expected 2 multiple choice, got %d", s.QuestionTypes["multiple_choice"])
	}
}

func TestTitleFromFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"physics_past-questions.pdf", "Physics Past Questions"},
		{"notes.txt", "Notes"},
		{"already Title.docx", "Already Title"},
	}
	for _, c := range cases {
		if got := TitleFromFilename(c.in); got != c.want {
			t.Errorf("TitleFromFilename(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestErrInputTooLarge(t *testing.T) {
	err := &ErrInputTooLarge{Size: 200, Limit: 100}
	want := "source too large: 200 bytes (max 100)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestExtractionError_Unwrap(t *testing.T) {
	inner := errors.New("bad xref table")
	err := &ExtractionError{Filename: "a.pdf", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to reach the wrapped error")
	}
}
