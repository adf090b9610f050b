package models

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        FileFormat
	}{
		{name: "pdf mime", contentType: "application/pdf", filename: "cv.bin", want: FormatPDF},
		{name: "mime with charset", contentType: "application/pdf; charset=utf-8", filename: "cv.bin", want: FormatPDF},
		{name: "docx mime", contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", filename: "", want: FormatDOCX},
		{name: "legacy doc mime", contentType: "application/msword", filename: "", want: FormatDOC},
		{name: "nonstandard jpg mime", contentType: "image/jpg", filename: "", want: FormatJPEG},
		{name: "extension fallback", contentType: "application/octet-stream", filename: "resume.PDF", want: FormatPDF},
		{name: "jpeg extension", contentType: "", filename: "scan.jpeg", want: FormatJPEG},
		{name: "png extension", contentType: "", filename: "scan.png", want: FormatPNG},
		{name: "mime wins over extension", contentType: "image/png", filename: "resume.pdf", want: FormatPNG},
		{name: "unknown", contentType: "application/zip", filename: "resume.xyz", want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFormat(tt.contentType, tt.filename)
			if got != tt.want {
				t.Errorf("DetectFormat(%q, %q) = %q, want %q", tt.contentType, tt.filename, got, tt.want)
			}
		})
	}
}

func TestFileFormatIsImage(t *testing.T) {
	for _, f := range []FileFormat{FormatJPEG, FormatPNG} {
		if !f.IsImage() {
			t.Errorf("%s.IsImage() = false, want true", f)
		}
	}
	for _, f := range []FileFormat{FormatPDF, FormatDOCX, FormatDOC, FormatUnknown} {
		if f.IsImage() {
			t.Errorf("%s.IsImage() = true, want false", f)
		}
	}
}

func TestAnalysisErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{code: ErrCodeNoFile, want: 400},
		{code: ErrCodeFileTooLarge, want: 400},
		{code: ErrCodeUnsupportedFormat, want: 400},
		{code: ErrCodeExtractionExhausted, want: 400},
		{code: ErrCodeFormatParse, want: 400},
		{code: ErrCodeOCR, want: 400},
		{code: ErrCodeNoExtractableText, want: 400},
		{code: ErrCodeModelUnavailable, want: 500},
		{code: ErrCodeMissingCredential, want: 500},
		{code: ErrCodeInternal, want: 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewAnalysisError(tt.code, "msg", nil)
			if got := err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
