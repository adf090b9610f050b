package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"resume-analyzer/internal/models"
)

// placeholderAPIKey is the sample value shipped in .env templates. Treat it
// the same as an unset key.
const placeholderAPIKey = "your-free-api-key-here"

var (
	pdfTextRunRe  = regexp.MustCompile(`\(([^)]+)\)`)
	pdfEscapeRe   = regexp.MustCompile(`\\[nrt]`)
	pdfWhitespace = regexp.MustCompile(`\s+`)
)

type pdfStrategy struct {
	name string
	fn   func(ctx context.Context, data []byte) (string, error)
}

// pdfExtractor tries an ordered chain of strategies: the structured text
// layer, a raw byte scan for parenthesized text runs, and finally a remote
// conversion service.
type pdfExtractor struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newPDFExtractor(apiKey, baseURL string) *pdfExtractor {
	return &pdfExtractor{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *pdfExtractor) Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error) {
	strategies := []pdfStrategy{
		{name: "pdf-text-layer", fn: p.textLayer},
		{name: "pdf-raw-scan", fn: p.rawScan},
		{name: "pdf-remote-convert", fn: p.remoteConvert},
	}

	var warnings []string
	var lastErr error

	for _, strategy := range strategies {
		text, err := strategy.fn(ctx, data)
		if err == nil {
			return &models.ExtractionResult{
				Text:     text,
				Strategy: strategy.name,
				Warnings: warnings,
			}, nil
		}

		// A missing conversion credential is a configuration problem, not a
		// parse failure. Surface it as-is instead of folding it into the chain.
		var aerr *models.AnalysisError
		if errors.As(err, &aerr) && aerr.Code == models.ErrCodeMissingCredential {
			return nil, err
		}

		log.Printf("⚠️  PDF strategy %s failed: %v\n", strategy.name, err)
		warnings = append(warnings, fmt.Sprintf("%s: %v", strategy.name, err))
		lastErr = err
	}

	return nil, models.NewAnalysisError(
		models.ErrCodeExtractionExhausted,
		"Failed to parse PDF file with all available methods",
		lastErr,
	)
}

// textLayer walks every page of the PDF and concatenates its text layer.
func (p *pdfExtractor) textLayer(_ context.Context, data []byte) (text string, err error) {
	// The pdf package panics on some malformed files; a panic here must fall
	// through to the next strategy like any other error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// rawScan pulls parenthesized text runs straight out of the byte stream, a
// common encoding for uncompressed PDF text objects.
func (p *pdfExtractor) rawScan(_ context.Context, data []byte) (string, error) {
	matches := pdfTextRunRe.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("no parenthesized text runs found in byte stream")
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, string(m[1]))
	}

	text := strings.Join(parts, " ")
	text = pdfEscapeRe.ReplaceAllString(text, " ")
	text = pdfWhitespace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text), nil
}

// remoteConvert delegates to the pdf.co conversion API as a last resort.
func (p *pdfExtractor) remoteConvert(ctx context.Context, data []byte) (string, error) {
	if p.apiKey == "" || p.apiKey == placeholderAPIKey {
		return "", models.NewAnalysisError(
			models.ErrCodeMissingCredential,
			"PDF conversion service API key not configured. Add PDF_CO_API_KEY to .env.",
			nil,
		)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "document.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to build conversion request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build conversion request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build conversion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/pdf/convert/to/text", &body)
	if err != nil {
		return "", fmt.Errorf("failed to build conversion request: %w", err)
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("conversion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("conversion service returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out struct {
		Body    string `json:"body"`
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode conversion response: %w", err)
	}
	if out.Error {
		return "", fmt.Errorf("conversion service error: %s", out.Message)
	}
	if strings.TrimSpace(out.Body) == "" {
		return "", fmt.Errorf("conversion service returned empty text")
	}

	return out.Body, nil
}
