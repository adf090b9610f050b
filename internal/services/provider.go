package services

import (
	"context"

	"resume-analyzer/internal/models"
)

// JobProvider is an external job-search service. A provider failure is
// always recoverable: the orchestrator logs it and proceeds with whatever
// the remaining providers returned.
type JobProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.JobListing, error)
}
