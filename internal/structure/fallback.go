package structure

import "fmt"

// fallbackBoxes partitions the document into flat fixed-size windows.
// It is the terminal strategy: full coverage, no gaps, no hierarchy.
func fallbackBoxes(pageCount, chunkSize int) []box {
	if chunkSize <= 0 {
		chunkSize = 15
	}
	var boxes []box
	for start := 1; start <= pageCount; start += chunkSize {
		end := start + chunkSize - 1
		if end > pageCount {
			end = pageCount
		}
		boxes = append(boxes, box{
			title:  fmt.Sprintf("Section %d (Pages %d-%d)", len(boxes)+1, start, end),
			level:  1,
			parent: -1,
			start:  start,
			end:    end,
		})
	}
	return boxes
}
