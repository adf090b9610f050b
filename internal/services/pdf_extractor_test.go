package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-analyzer/internal/models"
)

func TestPDFRawScanFallback(t *testing.T) {
	// Not a parseable PDF, but the byte stream carries parenthesized text
	// runs the way uncompressed PDF text objects do.
	data := []byte("%Corrupted-1.4 1 0 obj (Hello) stream junk (World) endstream")

	extractor := newPDFExtractor("", "https://api.pdf.co")
	result, err := extractor.Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if result.Strategy != "pdf-raw-scan" {
		t.Errorf("strategy = %q, want %q", result.Strategy, "pdf-raw-scan")
	}
	if result.Text != "Hello World" {
		t.Errorf("text = %q, want %q", result.Text, "Hello World")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1 (text layer failure)", len(result.Warnings))
	}
}

func TestPDFRawScanCollapsesEscapes(t *testing.T) {
	data := []byte(`junk (Hello\nWorld) junk (  spaced   out  )`)

	extractor := newPDFExtractor("", "https://api.pdf.co")
	result, err := extractor.Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if result.Text != "Hello World spaced out" {
		t.Errorf("text = %q, want %q", result.Text, "Hello World spaced out")
	}
}

func TestPDFMissingRemoteCredentialIsConfigError(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
	}{
		{name: "unset key", apiKey: ""},
		{name: "placeholder key", apiKey: placeholderAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := newPDFExtractor(tt.apiKey, "https://api.pdf.co")

			// No text layer and no parenthesized runs, so the chain reaches
			// the remote strategy.
			_, err := extractor.Extract(context.Background(), []byte("nothing usable here"))
			if err == nil {
				t.Fatal("Extract() returned nil error, want missing credential")
			}

			var aerr *models.AnalysisError
			if !errors.As(err, &aerr) {
				t.Fatalf("Extract() error type = %T, want *models.AnalysisError", err)
			}
			if aerr.Code != models.ErrCodeMissingCredential {
				t.Errorf("error code = %q, want %q", aerr.Code, models.ErrCodeMissingCredential)
			}
		})
	}
}

func TestPDFAllStrategiesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := newPDFExtractor("real-key", server.URL)
	_, err := extractor.Extract(context.Background(), []byte("nothing usable here"))
	if err == nil {
		t.Fatal("Extract() returned nil error, want exhaustion")
	}

	var aerr *models.AnalysisError
	if !errors.As(err, &aerr) {
		t.Fatalf("Extract() error type = %T, want *models.AnalysisError", err)
	}
	if aerr.Code != models.ErrCodeExtractionExhausted {
		t.Errorf("error code = %q, want %q", aerr.Code, models.ErrCodeExtractionExhausted)
	}
}

func TestPDFRemoteConvertLastResort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pdf/convert/to/text" {
			t.Errorf("remote path = %q, want /v1/pdf/convert/to/text", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "real-key" {
			t.Errorf("x-api-key = %q, want %q", r.Header.Get("x-api-key"), "real-key")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"body":"Remote extracted text","error":false}`))
	}))
	defer server.Close()

	extractor := newPDFExtractor("real-key", server.URL)
	result, err := extractor.Extract(context.Background(), []byte("nothing usable here"))
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if result.Strategy != "pdf-remote-convert" {
		t.Errorf("strategy = %q, want %q", result.Strategy, "pdf-remote-convert")
	}
	if result.Text != "Remote extracted text" {
		t.Errorf("text = %q, want %q", result.Text, "Remote extracted text")
	}
	if len(result.Warnings) != 2 {
		t.Errorf("warnings = %d, want 2 (both local strategies failed)", len(result.Warnings))
	}
}
