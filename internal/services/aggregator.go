package services

import (
	"resume-analyzer/internal/models"
)

// dedupKey identifies a listing across providers. Source is deliberately not
// part of the key: the same posting found by two providers is one listing.
type dedupKey struct {
	company  string
	position string
	applyURL string
}

// AggregateJobs merges per-provider listing batches in call order,
// deduplicates keeping the first occurrence, and truncates to limit.
// An empty or failed batch contributes nothing; zero listings is a valid
// result and is returned as an empty, non-nil slice.
func AggregateJobs(batches [][]models.JobListing, limit int) []models.JobListing {
	seen := make(map[dedupKey]bool)
	merged := []models.JobListing{}

	for _, batch := range batches {
		for _, job := range batch {
			key := dedupKey{company: job.Company, position: job.Position, applyURL: job.ApplyURL}
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, job)
		}
	}

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	return merged
}
