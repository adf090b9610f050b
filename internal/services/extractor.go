package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/models"
)

type ExtractorService interface {
	Extract(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResult, error)
}

type extractorService struct {
	pdf           *pdfExtractor
	runner        Runner
	tesseractPath string
	antiwordPath  string
}

func NewExtractorService(cfg config.ExtractorConfig) ExtractorService {
	return &extractorService{
		pdf:           newPDFExtractor(cfg.PDFCoAPIKey, cfg.PDFCoURL),
		runner:        execRunner{},
		tesseractPath: cfg.TesseractPath,
		antiwordPath:  cfg.AntiwordPath,
	}
}

// Extract dispatches on the declared format. Fallback policy lives inside
// the per-format strategies; an unrecognized format fails immediately.
func (e *extractorService) Extract(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResult, error) {
	switch req.Format {
	case models.FormatPDF:
		return e.pdf.Extract(ctx, req.Data)
	case models.FormatDOCX:
		return e.extractDOCX(req.Data)
	case models.FormatDOC:
		return e.extractDOC(ctx, req.Data)
	case models.FormatJPEG, models.FormatPNG:
		return e.extractImage(ctx, req.Data, req.Format)
	default:
		return nil, models.NewAnalysisError(
			models.ErrCodeUnsupportedFormat,
			"Unsupported file type. Only PDF, DOCX, DOC, JPG, or PNG allowed.",
			nil,
		)
	}
}

var (
	docxRunRe = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	xmlEntity = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
	ocrWordRe = regexp.MustCompile(`\w{2,}`)
)

func (e *extractorService) extractDOCX(data []byte) (*models.ExtractionResult, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeFormatParse, "Failed to parse DOCX file", err)
	}
	defer doc.Close()

	return &models.ExtractionResult{
		Text:     docxPlainText(doc.Editable().GetContent()),
		Strategy: "docx-library",
	}, nil
}

// docxPlainText flattens document.xml into plain text: one line per
// paragraph, text runs concatenated in order.
func docxPlainText(content string) string {
	var lines []string
	for _, paragraph := range strings.Split(content, "</w:p>") {
		var line strings.Builder
		for _, m := range docxRunRe.FindAllStringSubmatch(paragraph, -1) {
			line.WriteString(xmlEntity.Replace(m[1]))
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
	}
	return strings.Join(lines, "\n")
}

func (e *extractorService) extractDOC(ctx context.Context, data []byte) (*models.ExtractionResult, error) {
	path, cleanup, err := writeTempFile(data, "resume-*.doc")
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeFormatParse, "Failed to parse DOC file", err)
	}
	defer cleanup()

	out, errb, err := e.runner.Run(ctx, e.antiwordPath, path)
	if err != nil {
		return nil, models.NewAnalysisError(
			models.ErrCodeFormatParse,
			"Failed to parse DOC file",
			fmt.Errorf("antiword: %w: %s", err, strings.TrimSpace(string(errb))),
		)
	}

	return &models.ExtractionResult{
		Text:     string(out),
		Strategy: "antiword",
	}, nil
}

func (e *extractorService) extractImage(ctx context.Context, data []byte, format models.FileFormat) (*models.ExtractionResult, error) {
	path, cleanup, err := writeTempFile(data, "resume-*."+string(format))
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeOCR, "Failed to process image with OCR", err)
	}
	defer cleanup()

	out, errb, err := e.runner.Run(ctx, e.tesseractPath, path, "stdout", "-l", "eng")
	if err != nil {
		return nil, models.NewAnalysisError(
			models.ErrCodeOCR,
			"Failed to process image with OCR",
			fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(string(errb))),
		)
	}

	return &models.ExtractionResult{
		Text:     filterOCRLines(string(out)),
		Strategy: "tesseract-ocr",
	}, nil
}

// filterOCRLines drops lines without a run of at least two word characters,
// which removes most OCR noise and stray artifacts.
func filterOCRLines(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if ocrWordRe.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
