// Package document holds the shared data model for the parsing pipeline.
// Everything here is built once by a pipeline stage and read-only after.
package document

import (
	"fmt"
	"strings"
)

// Page is a single extracted page. Immutable once produced.
type Page struct {
	Number     int    `json:"page_num"` // 1-based physical position
	Text       string `json:"text"`
	CharCount  int    `json:"char_count"`
	ImageCount int    `json:"image_count"`
}

// Bookmark is a native outline entry (title + target page + nesting depth).
type Bookmark struct {
	Title string `json:"title"`
	Page  int    `json:"page"`
	Depth int    `json:"depth"` // 0 = top level
}

// Source is the extraction boundary output: ordered pages plus any
// native bookmarks. Produced by an extractor, consumed by every stage.
type Source struct {
	Filename  string
	Title     string
	PageCount int
	Pages     []Page
	Bookmarks []Bookmark
}

// Text returns the concatenated text of pages [first, last] (1-based,
// inclusive), clamped to the available range.
func (s *Source) Text(first, last int) string {
	if first < 1 {
		first = 1
	}
	if last > len(s.Pages) {
		last = len(s.Pages)
	}
	var sb strings.Builder
	for i := first; i <= last; i++ {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Pages[i-1].Text)
	}
	return sb.String()
}

// DocumentType is the classified kind of document.
type DocumentType string

const (
	TypeTextbook      DocumentType = "textbook"
	TypePastQuestions DocumentType = "past_questions"
	TypeExercises     DocumentType = "exercises"
	TypeReference     DocumentType = "reference"
)

// BlockType labels a structural block's content.
type BlockType string

const (
	BlockChapter    BlockType = "chapter"
	BlockSection    BlockType = "section"
	BlockSubsection BlockType = "subsection"
	BlockParagraph  BlockType = "paragraph"
	BlockExercise   BlockType = "exercise"
	BlockQuiz       BlockType = "quiz"
	BlockSummary    BlockType = "summary"
	BlockExample    BlockType = "example"
	BlockDefinition BlockType = "definition"
	BlockNote       BlockType = "note"
)

// BlockMetadata is derived deterministically from the block's page span.
type BlockMetadata struct {
	WordCount               int  `json:"word_count"`
	EstimatedReadingMinutes int  `json:"estimated_reading_minutes"`
	HasImages               bool `json:"has_images"`
	PageCount               int  `json:"page_count"`
}

// Block is a node in the document's structural tree. Parent links are by
// id; children-of lookup is a derived index (see ChildIndex), never a
// live bidirectional pointer.
type Block struct {
	ID             string        `json:"id"`
	ParentID       string        `json:"parent_id,omitempty"`
	Title          string        `json:"title"`
	Type           BlockType     `json:"block_type"`
	Level          int           `json:"level"`
	OrderIndex     int           `json:"order_index"`
	StartPage      int           `json:"start_page"`
	EndPage        int           `json:"end_page"`
	ContentPreview string        `json:"content_preview"`
	Metadata       BlockMetadata `json:"metadata"`

	// Exercise sub-typing, set by the content classifier when the block
	// is an exercise or quiz.
	IsExercise   bool   `json:"is_exercise,omitempty"`
	ExerciseType string `json:"exercise_type,omitempty"`
}

// QuestionType labels an extracted question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionCalculation    QuestionType = "calculation"
	QuestionCoding         QuestionType = "coding"
	QuestionEssay          QuestionType = "essay"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionProblemSolving QuestionType = "problem_solving"
)

// Question is a single extracted question. Number is a string to preserve
// the source's numbering scheme (numeric, alphabetic or Roman).
type Question struct {
	Number string       `json:"number"`
	Text   string       `json:"text"`
	Page   int          `json:"page"`
	Type   QuestionType `json:"type"`
}

// ScanDetails records how the scan decision was reached.
type ScanDetails struct {
	Confidence      int    `json:"confidence"` // 0-100
	Reason          string `json:"reason"`
	SamplePages     int    `json:"sample_pages"`
	TextPages       int    `json:"text_pages"`
	ImagePages      int    `json:"image_pages"`
	AvgCharsPerPage int    `json:"avg_chars_per_page"`
	TotalImages     int    `json:"total_images"`
	NeedsOCR        bool   `json:"needs_ocr"`
}

// Document is the aggregate root for one parse run.
type Document struct {
	ID            string       `json:"id"`
	Filename      string       `json:"filename"`
	Title         string       `json:"title"`
	Type          DocumentType `json:"document_type"`
	IsScanned     bool         `json:"is_scanned"`
	ScanDetails   *ScanDetails `json:"scan_details,omitempty"`
	Pages         int          `json:"pages"`
	ParserVersion string       `json:"parser_version"`
}

// StructureInfo reports which detection strategy produced the block tree.
type StructureInfo struct {
	Strategy string  `json:"strategy"`
	Coverage float64 `json:"coverage"`
}

// Stats aggregates counts for the result. Block fields and question
// fields are mutually exclusive depending on document type.
type Stats struct {
	TotalBlocks    int            `json:"total_blocks,omitempty"`
	BlockTypes     map[string]int `json:"block_types,omitempty"`
	HierarchyDepth int            `json:"hierarchy_depth,omitempty"`
	TotalQuestions int            `json:"total_questions,omitempty"`
	QuestionTypes  map[string]int `json:"question_types,omitempty"`
}

// Result is the final output of a pipeline run.
type Result struct {
	Document  Document      `json:"document"`
	Blocks    []Block       `json:"blocks,omitempty"`
	Questions []Question    `json:"questions,omitempty"`
	Structure StructureInfo `json:"structure"`
	Stats     Stats         `json:"stats"`

	// QuestionNote explains an empty question list on a document that
	// should have produced one (e.g. scanned input).
	QuestionNote string `json:"question_note,omitempty"`
}

// ChildIndex maps a block id to the indexes of its children in the flat
// block slice. Built once after construction.
func ChildIndex(blocks []Block) map[string][]int {
	idx := make(map[string][]int)
	for i, b := range blocks {
		if b.ParentID != "" {
			idx[b.ParentID] = append(idx[b.ParentID], i)
		}
	}
	return idx
}

// BlockStats computes the block histogram for a result.
func BlockStats(blocks []Block) Stats {
	types := make(map[string]int)
	depth := 0
	for _, b := range blocks {
		types[string(b.Type)]++
		if b.Level > depth {
			depth = b.Level
		}
	}
	return Stats{
		TotalBlocks:    len(blocks),
		BlockTypes:     types,
		HierarchyDepth: depth,
	}
}

// QuestionStats computes the question histogram for a result.
func QuestionStats(questions []Question) Stats {
	types := make(map[string]int)
	for _, q := range questions {
		types[string(q.Type)]++
	}
	return Stats{
		TotalQuestions: len(questions),
		QuestionTypes:  types,
	}
}

// TitleFromFilename derives a display title from a filename:
// "physics_past-questions.pdf" -> "Physics Past Questions".
func TitleFromFilename(filename string) string {
	name := filename
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ErrInputTooLarge is returned before any stage runs when the source
// exceeds the configured size limit.
type ErrInputTooLarge struct {
	Size, Limit int64
}

func (e *ErrInputTooLarge) Error() string {
	return fmt.Sprintf("source too large: %d bytes (max %d)", e.Size, e.Limit)
}

// ExtractionError wraps a failure at the page-extraction boundary. No
// partial structure is produced when extraction fails.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
