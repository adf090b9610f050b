package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Field names produced by the resume analysis schema. These double as the
// keys of AnalysisResult.Fields.
const (
	FieldSkills        = "skills"
	FieldExperience    = "experience"
	FieldJobTitles     = "jobTitles"
	FieldSuggestions   = "suggestions"
	FieldElevatorPitch = "elevatorPitch"
	FieldScore         = "score"
)

// FieldSpec describes one field to pull out of the model's free-text reply.
// Numeric fields are validated against Max and fall back to Default when the
// captured value is out of range.
type FieldSpec struct {
	Name    string
	Pattern *regexp.Regexp
	Default string
	Numeric bool
	Max     int
}

type FieldSchema []FieldSpec

// ResumeFieldSchema is the fixed field set expected from the resume analysis
// prompt. Each pattern captures the remainder of the labeled line.
func ResumeFieldSchema() FieldSchema {
	return FieldSchema{
		{Name: FieldSkills, Pattern: regexp.MustCompile(`(?i)Skills:\s*(.+?)(?:\n|$)`)},
		{Name: FieldExperience, Pattern: regexp.MustCompile(`(?i)Experience:\s*(.+?)(?:\n|$)`)},
		{Name: FieldJobTitles, Pattern: regexp.MustCompile(`(?i)Job Titles:\s*(.+?)(?:\n|$)`)},
		{Name: FieldSuggestions, Pattern: regexp.MustCompile(`(?i)Suggestions:\s*(.+?)(?:\n|$)`)},
		{Name: FieldElevatorPitch, Pattern: regexp.MustCompile(`(?i)Elevator Pitch:\s*(.+?)(?:\n|$)`)},
		{Name: FieldScore, Pattern: regexp.MustCompile(`(?i)Resume Score:\s*(\d{1,3})`), Default: "0", Numeric: true, Max: 100},
	}
}

// ParseFields extracts every schema field from the model's reply. It is
// strictly best-effort: fields are parsed independently, a miss yields the
// field's default, and no input can make it fail. The caller keeps the raw
// response verbatim alongside the parsed fields.
func ParseFields(rawResponse string, schema FieldSchema) map[string]string {
	fields := make(map[string]string, len(schema))

	for _, spec := range schema {
		fields[spec.Name] = spec.Default

		m := spec.Pattern.FindStringSubmatch(rawResponse)
		if m == nil {
			continue
		}

		value := cleanFieldValue(m[1])
		if value == "" {
			continue
		}

		if spec.Numeric {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || (spec.Max > 0 && n > spec.Max) {
				continue
			}
			value = strconv.Itoa(n)
		}

		fields[spec.Name] = value
	}

	return fields
}

// cleanFieldValue trims the captured value and strips stray markdown bold
// markers the model sometimes wraps labels in.
func cleanFieldValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "**", "")
	return strings.TrimSpace(value)
}
