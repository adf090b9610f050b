package models

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies every failure mode the analysis pipeline can surface.
type ErrorCode string

const (
	// Client input errors (HTTP 400)
	ErrCodeNoFile            ErrorCode = "no_file"
	ErrCodeFileTooLarge      ErrorCode = "file_too_large"
	ErrCodeUnsupportedFormat ErrorCode = "unsupported_format"

	// Extraction failures (HTTP 400)
	ErrCodeExtractionExhausted ErrorCode = "extraction_exhausted"
	ErrCodeFormatParse         ErrorCode = "format_parse_error"
	ErrCodeOCR                 ErrorCode = "ocr_error"
	ErrCodeNoExtractableText   ErrorCode = "no_extractable_text"

	// Dependency / configuration failures (HTTP 500)
	ErrCodeModelUnavailable  ErrorCode = "model_unavailable"
	ErrCodeMissingCredential ErrorCode = "missing_credential"
	ErrCodeInternal          ErrorCode = "internal_error"
)

// AnalysisError is the typed error returned by pipeline components. Message
// is safe to send to the caller; Err carries the underlying cause for logs.
type AnalysisError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewAnalysisError(code ErrorCode, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error taxonomy onto the two response classes the API
// exposes: 400 for client/input and extraction problems, 500 for dependency
// and configuration problems.
func (e *AnalysisError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeNoFile, ErrCodeFileTooLarge, ErrCodeUnsupportedFormat,
		ErrCodeExtractionExhausted, ErrCodeFormatParse, ErrCodeOCR,
		ErrCodeNoExtractableText:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
