package models

import (
	"path/filepath"
	"strings"
)

// FileFormat is the declared format of an uploaded resume.
type FileFormat string

const (
	FormatPDF     FileFormat = "pdf"
	FormatDOCX    FileFormat = "docx"
	FormatDOC     FileFormat = "doc"
	FormatJPEG    FileFormat = "jpeg"
	FormatPNG     FileFormat = "png"
	FormatUnknown FileFormat = ""
)

func (f FileFormat) IsImage() bool {
	return f == FormatJPEG || f == FormatPNG
}

func (f FileFormat) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatDOC:
		return "application/msword"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// DetectFormat resolves the declared MIME type first and falls back to the
// filename extension. Returns FormatUnknown when neither is recognized.
func DetectFormat(contentType, filename string) FileFormat {
	mime := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mime {
	case "application/pdf":
		return FormatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX
	case "application/msword":
		return FormatDOC
	case "image/jpeg", "image/jpg":
		return FormatJPEG
	case "image/png":
		return FormatPNG
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatDOC
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".png":
		return FormatPNG
	}

	return FormatUnknown
}

// ExtractionRequest is the per-call input to the text extractor.
type ExtractionRequest struct {
	Data   []byte
	Format FileFormat
}

// ExtractionResult carries the extracted plain text. Warnings record
// non-fatal strategy failures that occurred before the winning strategy.
type ExtractionResult struct {
	Text     string
	Strategy string
	Warnings []string
}

// ImageAttachment is an inline image forwarded to the language model for
// image-based resume uploads.
type ImageAttachment struct {
	Data     []byte
	MIMEType string
}

// JobListing is one normalized job posting from an external provider.
// Two listings are duplicates when company, position and link all match,
// regardless of source.
type JobListing struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	ApplyURL string `json:"link"`
	Source   string `json:"source"`
}

// AnalysisRequest is the orchestrator's per-request input.
type AnalysisRequest struct {
	Data     []byte
	Format   FileFormat
	Filename string
}

// AnalysisResult assembles everything the pipeline produced for one upload.
type AnalysisResult struct {
	Fields       map[string]string
	Jobs         []JobListing
	FullResponse string
	Filename     string
	Warnings     []string
}

// AnalyzeResponse is the flattened success payload of POST /api/v1/analyze.
type AnalyzeResponse struct {
	Skills        string       `json:"skills"`
	Experience    string       `json:"experience"`
	JobTitles     string       `json:"jobTitles"`
	Suggestions   string       `json:"suggestions"`
	ElevatorPitch string       `json:"elevatorPitch"`
	Score         string       `json:"score"`
	Jobs          []JobListing `json:"jobs"`
	FullResponse  string       `json:"fullResponse"`
	Filename      string       `json:"filename"`
}
