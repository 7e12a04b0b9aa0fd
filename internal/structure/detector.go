// Package structure builds the hierarchical block tree for a document.
// Strategies are tried in a strict priority order (native bookmarks, ToC
// text, heading patterns, fixed-size chunking) and the first sufficient
// result wins. Whatever strategy fires, post-processing guarantees that
// top-level blocks cover [1, pageCount] with no gaps or overlaps.
package structure

import (
	"sort"
	"strings"

	"github.com/dgallion1/docstruct/internal/document"
)

// Config controls detection behavior.
type Config struct {
	FallbackChunkSize int     // pages per fallback block
	TocScanFirst      int     // leading pages scanned for ToC text
	TocScanLast       int     // trailing pages scanned for ToC text
	MinCoverage       float64 // sufficiency threshold for fallthrough
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		FallbackChunkSize: 15,
		TocScanFirst:      5,
		TocScanLast:       3,
		MinCoverage:       0.5,
	}
}

// box is a detected structural unit before ids and refinement. Parent
// references are slice indexes (-1 for root) until finalize resolves
// them to block ids.
type box struct {
	title  string
	level  int
	parent int
	start  int
	end    int
}

// strategy is one detection approach: pages+bookmarks in, candidate
// boxes out. A strategy returns nil when it has nothing usable.
type strategy interface {
	name() string
	detect(src *document.Source) []box
}

// Detection is the finished block tree plus provenance.
type Detection struct {
	Blocks   []document.Block
	Strategy string
	Coverage float64
}

// Detector runs the strategy chain.
type Detector struct {
	cfg Config
}

func NewDetector(cfg Config) *Detector {
	if cfg.FallbackChunkSize <= 0 {
		cfg.FallbackChunkSize = 15
	}
	if cfg.TocScanFirst <= 0 {
		cfg.TocScanFirst = 5
	}
	if cfg.TocScanLast <= 0 {
		cfg.TocScanLast = 3
	}
	if cfg.MinCoverage <= 0 {
		cfg.MinCoverage = 0.5
	}
	return &Detector{cfg: cfg}
}

// Detect builds the block tree for a source. It always succeeds: the
// fallback chunker runs when no other strategy reaches sufficiency.
func (d *Detector) Detect(src *document.Source, docID string) Detection {
	strategies := []strategy{
		&bookmarkStrategy{},
		&tocStrategy{first: d.cfg.TocScanFirst, last: d.cfg.TocScanLast},
		&patternStrategy{},
	}

	for _, s := range strategies {
		boxes := s.detect(src)
		if len(boxes) == 0 {
			continue
		}
		cov := coverage(boxes, src.PageCount)
		if cov >= d.cfg.MinCoverage {
			return finalize(src, docID, s.name(), boxes)
		}
	}

	boxes := fallbackBoxes(src.PageCount, d.cfg.FallbackChunkSize)
	return finalize(src, docID, "fallback_chunking", boxes)
}

// coverage is the fraction of pages assigned to at least one box.
func coverage(boxes []box, pageCount int) float64 {
	if pageCount <= 0 {
		return 0
	}
	covered := make([]bool, pageCount+1)
	for _, b := range boxes {
		for p := b.start; p <= b.end && p <= pageCount; p++ {
			if p >= 1 {
				covered[p] = true
			}
		}
	}
	n := 0
	for p := 1; p <= pageCount; p++ {
		if covered[p] {
			n++
		}
	}
	return float64(n) / float64(pageCount)
}

// finalize turns raw boxes into Blocks: range repair, top-level gap
// fill, level normalization, order indexes, previews and page-derived
// metadata. Ids are deterministic in detection order.
func finalize(src *document.Source, docID, strategyName string, boxes []box) Detection {
	boxes = repairRanges(boxes, src.PageCount)
	boxes = fillTopLevel(boxes, src.PageCount)
	normalizeLevels(boxes)

	blocks := make([]document.Block, len(boxes))
	for i, b := range boxes {
		parentID := ""
		if b.parent >= 0 {
			parentID = document.BlockID(docID, b.parent)
		}
		blocks[i] = document.Block{
			ID:             document.BlockID(docID, i),
			ParentID:       parentID,
			Title:          b.title,
			Level:          b.level,
			StartPage:      b.start,
			EndPage:        b.end,
			ContentPreview: preview(src, b.start),
			Metadata:       pageMetadata(src, b.start, b.end),
		}
	}

	assignOrderIndexes(blocks)

	return Detection{
		Blocks:   blocks,
		Strategy: strategyName,
		Coverage: coverage(boxes, src.PageCount),
	}
}

// repairRanges clamps every box to [1, pageCount], drops boxes whose
// range inverted during end-page inference and redistributes their span
// to the nearest preceding sibling. Parent indexes are remapped.
func repairRanges(boxes []box, pageCount int) []box {
	kept := make([]box, 0, len(boxes))
	remap := make([]int, len(boxes))

	for i, b := range boxes {
		if b.start < 1 {
			b.start = 1
		}
		if b.end > pageCount {
			b.end = pageCount
		}
		if b.end < 1 || b.start > pageCount || b.start > b.end {
			remap[i] = -1
			// Redistribute the span to the last kept box.
			if len(kept) > 0 && b.end > kept[len(kept)-1].end && b.end <= pageCount {
				kept[len(kept)-1].end = b.end
			}
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, b)
	}

	for i := range kept {
		p := kept[i].parent
		for p >= 0 && remap[p] < 0 {
			p = boxes[p].parent
		}
		if p >= 0 {
			kept[i].parent = remap[p]
		} else {
			kept[i].parent = -1
		}
	}
	return kept
}

// fillTopLevel makes the root-level boxes partition [1, pageCount]:
// ordered by start page, gaps absorbed by the preceding sibling, and
// overlaps trimmed forward.
func fillTopLevel(boxes []box, pageCount int) []box {
	if pageCount <= 0 {
		return boxes
	}

	var top []int
	for i, b := range boxes {
		if b.parent < 0 {
			top = append(top, i)
		}
	}
	if len(top) == 0 {
		return boxes
	}

	sort.SliceStable(top, func(a, b int) bool {
		return boxes[top[a]].start < boxes[top[b]].start
	})

	boxes[top[0]].start = 1
	for k := 1; k < len(top); k++ {
		prev, cur := top[k-1], top[k]
		if boxes[cur].start <= boxes[prev].end {
			boxes[cur].start = boxes[prev].end + 1
		}
		if boxes[cur].start > boxes[prev].end+1 {
			boxes[prev].end = boxes[cur].start - 1
		}
		if boxes[cur].start > boxes[cur].end {
			boxes[cur].end = boxes[cur].start
		}
		if boxes[cur].end > pageCount {
			boxes[cur].end = pageCount
		}
		if boxes[cur].start > boxes[cur].end {
			boxes[cur].start = boxes[cur].end
		}
	}
	last := top[len(top)-1]
	if boxes[last].end != pageCount {
		boxes[last].end = pageCount
	}
	if boxes[last].start > boxes[last].end {
		boxes[last].start = boxes[last].end
	}
	return boxes
}

// normalizeLevels shifts levels so the shallowest box sits at level 1.
func normalizeLevels(boxes []box) {
	min := 0
	for _, b := range boxes {
		if min == 0 || b.level < min {
			min = b.level
		}
	}
	if min <= 1 {
		return
	}
	for i := range boxes {
		boxes[i].level -= min - 1
	}
}

// assignOrderIndexes numbers siblings by page order within each parent.
func assignOrderIndexes(blocks []document.Block) {
	order := make(map[string][]int)
	for i, b := range blocks {
		order[b.ParentID] = append(order[b.ParentID], i)
	}
	for _, idxs := range order {
		sort.SliceStable(idxs, func(a, b int) bool {
			return blocks[idxs[a]].StartPage < blocks[idxs[b]].StartPage
		})
		for n, i := range idxs {
			blocks[i].OrderIndex = n
		}
	}
}

const previewChars = 400

// preview returns a bounded prefix of the block's first page.
func preview(src *document.Source, startPage int) string {
	if startPage < 1 || startPage > len(src.Pages) {
		return ""
	}
	text := strings.Join(strings.Fields(src.Pages[startPage-1].Text), " ")
	if len(text) > previewChars {
		return text[:previewChars] + "..."
	}
	return text
}

// pageMetadata derives block metadata from its page span.
func pageMetadata(src *document.Source, start, end int) document.BlockMetadata {
	words := 0
	hasImages := false
	for p := start; p <= end && p <= len(src.Pages); p++ {
		if p < 1 {
			continue
		}
		words += len(strings.Fields(src.Pages[p-1].Text))
		if src.Pages[p-1].ImageCount > 0 {
			hasImages = true
		}
	}
	minutes := words / 200
	if minutes < 1 {
		minutes = 1
	}
	return document.BlockMetadata{
		WordCount:               words,
		EstimatedReadingMinutes: minutes,
		HasImages:               hasImages,
		PageCount:               end - start + 1,
	}
}
