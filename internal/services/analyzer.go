package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/models"
)

// AnalysisStage is the request lifecycle position. Stages progress strictly
// forward; any stage may abort with a typed *models.AnalysisError.
type AnalysisStage string

const (
	StageReceived     AnalysisStage = "received"
	StageExtracting   AnalysisStage = "extracting"
	StageExtracted    AnalysisStage = "extracted"
	StageAnalyzing    AnalysisStage = "analyzing"
	StageAnalyzed     AnalysisStage = "analyzed"
	StageJobSearching AnalysisStage = "job_searching"
	StageComplete     AnalysisStage = "complete"
)

// defaultSearchTerm seeds the job query when no job title was parsed.
const defaultSearchTerm = "Developer"

type AnalyzerService interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

type analyzerService struct {
	extractor     ExtractorService
	llm           LLMService
	promptBuilder *PromptBuilder
	providers     []JobProvider
	schema        FieldSchema
	jobsEnabled   bool
	searchRegion  string
	resultCap     int
}

func NewAnalyzerService(
	extractor ExtractorService,
	llm LLMService,
	promptBuilder *PromptBuilder,
	providers []JobProvider,
	jobCfg config.JobSearchConfig,
) AnalyzerService {
	return &analyzerService{
		extractor:     extractor,
		llm:           llm,
		promptBuilder: promptBuilder,
		providers:     providers,
		schema:        ResumeFieldSchema(),
		jobsEnabled:   jobCfg.Enabled,
		searchRegion:  jobCfg.Region,
		resultCap:     jobCfg.ResultCap,
	}
}

// Analyze runs the full pipeline for one upload: extract text, ask the
// language model for a structured analysis, parse its reply, and enrich the
// result with live job listings.
func (a *analyzerService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	id := uuid.New()
	a.logStage(id, StageReceived, req.Filename)

	if len(req.Data) == 0 {
		return nil, models.NewAnalysisError(models.ErrCodeNoFile, "No resume file provided", nil)
	}

	a.logStage(id, StageExtracting, string(req.Format))
	extraction, err := a.extractor.Extract(ctx, models.ExtractionRequest{
		Data:   req.Data,
		Format: req.Format,
	})
	if err != nil {
		return nil, err
	}

	// A strategy can nominally succeed while yielding nothing usable.
	text := strings.TrimSpace(extraction.Text)
	if text == "" {
		return nil, models.NewAnalysisError(models.ErrCodeNoExtractableText, "No text found in the resume.", nil)
	}
	a.logStage(id, StageExtracted, fmt.Sprintf("%d chars via %s", len(text), extraction.Strategy))

	a.logStage(id, StageAnalyzing, "")
	prompt := a.promptBuilder.BuildResumeAnalysisPrompt(text)

	// Image uploads also go to the model directly so it can read anything
	// the OCR pass dropped.
	var images []models.ImageAttachment
	if req.Format.IsImage() {
		images = append(images, models.ImageAttachment{Data: req.Data, MIMEType: req.Format.MIMEType()})
	}

	response, err := a.llm.GenerateText(ctx, prompt, images)
	if err != nil {
		return nil, err
	}

	fields := ParseFields(response, a.schema)
	a.logStage(id, StageAnalyzed, fmt.Sprintf("%d fields", len(fields)))

	jobs := []models.JobListing{}
	if a.jobsEnabled {
		if len(a.providers) == 0 {
			return nil, models.NewAnalysisError(
				models.ErrCodeMissingCredential,
				"Job search credentials not configured. Add RAPIDAPI_KEY or Adzuna keys to .env.",
				nil,
			)
		}

		query := a.buildJobQuery(fields)
		a.logStage(id, StageJobSearching, query)
		jobs = a.searchJobs(ctx, id, query)
	}

	a.logStage(id, StageComplete, fmt.Sprintf("%d jobs", len(jobs)))

	return &models.AnalysisResult{
		Fields:       fields,
		Jobs:         jobs,
		FullResponse: response,
		Filename:     req.Filename,
		Warnings:     extraction.Warnings,
	}, nil
}

// buildJobQuery derives the search query from the first parsed job title.
func (a *analyzerService) buildJobQuery(fields map[string]string) string {
	title := strings.TrimSpace(strings.SplitN(fields[FieldJobTitles], ",", 2)[0])
	if title == "" {
		title = defaultSearchTerm
	}
	return fmt.Sprintf("%s in %s", title, a.searchRegion)
}

// searchJobs fans out to every configured provider concurrently and joins
// before aggregation. A failed provider contributes zero listings and never
// fails the request.
func (a *analyzerService) searchJobs(ctx context.Context, id uuid.UUID, query string) []models.JobListing {
	batches := make([][]models.JobListing, len(a.providers))

	var wg sync.WaitGroup
	for i, provider := range a.providers {
		wg.Add(1)
		go func(i int, provider JobProvider) {
			defer wg.Done()

			listings, err := provider.Search(ctx, query)
			if err != nil {
				log.Printf("⚠️  [%s] Job provider %s failed: %v\n", id, provider.Name(), err)
				return
			}
			batches[i] = listings
		}(i, provider)
	}
	wg.Wait()

	return AggregateJobs(batches, a.resultCap)
}

func (a *analyzerService) logStage(id uuid.UUID, stage AnalysisStage, detail string) {
	if detail != "" {
		log.Printf("🔄 [%s] %s: %s\n", id, stage, detail)
		return
	}
	log.Printf("🔄 [%s] %s\n", id, stage)
}
