package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/dgallion1/docstruct/internal/pipeline"
)

// handleListDocuments lists documents parsed by live jobs (jobs expire
// per the configured TTL).
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")

	jobs := s.orchestrator.Jobs()
	sort.Slice(jobs, func(a, b int) bool {
		return jobs[a].CreatedAt.Before(jobs[b].CreatedAt)
	})

	docs := []map[string]any{}
	for _, job := range jobs {
		snap := job.Snapshot()
		if statusFilter != "" && string(snap.Status) != statusFilter {
			continue
		}
		entry := map[string]any{
			"job_id":   snap.ID,
			"doc_id":   snap.DocID,
			"filename": snap.Filename,
			"status":   snap.Status,
		}
		if result := job.Result(); result != nil {
			entry["title"] = result.Document.Title
			entry["document_type"] = result.Document.Type
			entry["is_scanned"] = result.Document.IsScanned
			entry["pages"] = result.Document.Pages
			entry["strategy"] = result.Structure.Strategy
		}
		docs = append(docs, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleStats reports pipeline-level counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	byStatus := map[pipeline.JobStatus]int{}
	byType := map[string]int{}
	byStrategy := map[string]int{}
	totalBlocks := 0
	totalQuestions := 0

	for _, job := range s.orchestrator.Jobs() {
		snap := job.Snapshot()
		byStatus[snap.Status]++
		if result := job.Result(); result != nil {
			byType[string(result.Document.Type)]++
			byStrategy[result.Structure.Strategy]++
			totalBlocks += result.Stats.TotalBlocks
			totalQuestions += result.Stats.TotalQuestions
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth":           s.orchestrator.QueueDepth(),
		"jobs_by_status":        byStatus,
		"documents_by_type":     byType,
		"documents_by_strategy": byStrategy,
		"total_blocks":          totalBlocks,
		"total_questions":       totalQuestions,
	})
}
