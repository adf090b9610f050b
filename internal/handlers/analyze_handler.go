package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/models"
	"resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /api/v1/analyze. It expects a multipart form
// with a single "resume" file field and returns the flattened analysis
// result, or {"error": ...} with a 400/500 status.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil || fileHeader == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file provided",
		})
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	format := models.DetectFormat(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if format == models.FormatUnknown {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file type. Only PDF, DOCX, DOC, JPG, or PNG allowed.",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	result, err := h.analyzer.Analyze(c.UserContext(), models.AnalysisRequest{
		Data:     data,
		Format:   format,
		Filename: fileHeader.Filename,
	})
	if err != nil {
		var aerr *models.AnalysisError
		if errors.As(err, &aerr) {
			return c.Status(aerr.HTTPStatus()).JSON(fiber.Map{
				"error": aerr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze resume",
		})
	}

	return c.JSON(models.AnalyzeResponse{
		Skills:        result.Fields[services.FieldSkills],
		Experience:    result.Fields[services.FieldExperience],
		JobTitles:     result.Fields[services.FieldJobTitles],
		Suggestions:   result.Fields[services.FieldSuggestions],
		ElevatorPitch: result.Fields[services.FieldElevatorPitch],
		Score:         result.Fields[services.FieldScore],
		Jobs:          result.Jobs,
		FullResponse:  result.FullResponse,
		Filename:      result.Filename,
	})
}
