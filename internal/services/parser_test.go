package services

import (
	"testing"
)

func TestParseFieldsCanonicalResponse(t *testing.T) {
	raw := "Skills: Go, Rust\n" +
		"Experience: 5 years\n" +
		"Job Titles: Backend Engineer, Platform Engineer\n" +
		"Suggestions: Add metrics; Quantify impact\n" +
		"Elevator Pitch: Seasoned backend engineer with a focus on reliability.\n" +
		"Resume Score: 82"

	fields := ParseFields(raw, ResumeFieldSchema())

	want := map[string]string{
		FieldSkills:        "Go, Rust",
		FieldExperience:    "5 years",
		FieldJobTitles:     "Backend Engineer, Platform Engineer",
		FieldSuggestions:   "Add metrics; Quantify impact",
		FieldElevatorPitch: "Seasoned backend engineer with a focus on reliability.",
		FieldScore:         "82",
	}

	for name, value := range want {
		if fields[name] != value {
			t.Errorf("field %s = %q, want %q", name, fields[name], value)
		}
	}
}

func TestParseFieldsIsTotal(t *testing.T) {
	schema := ResumeFieldSchema()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "no recognized labels", raw: "The candidate looks strong overall.\nGood luck!"},
		{name: "partial response", raw: "Skills: Go\nsome trailing prose"},
		{name: "labels without values", raw: "Skills:\nExperience:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.raw, schema)

			if len(fields) != len(schema) {
				t.Fatalf("ParseFields() returned %d fields, want %d", len(fields), len(schema))
			}
			for _, spec := range schema {
				if _, ok := fields[spec.Name]; !ok {
					t.Errorf("field %s missing from result", spec.Name)
				}
			}
		})
	}
}

func TestParseFieldsDefaultsOnMiss(t *testing.T) {
	fields := ParseFields("Skills: Go", ResumeFieldSchema())

	if fields[FieldSkills] != "Go" {
		t.Errorf("skills = %q, want %q", fields[FieldSkills], "Go")
	}
	if fields[FieldExperience] != "" {
		t.Errorf("experience = %q, want empty default", fields[FieldExperience])
	}
	if fields[FieldScore] != "0" {
		t.Errorf("score = %q, want default %q", fields[FieldScore], "0")
	}
}

func TestParseFieldsStripsBoldMarkers(t *testing.T) {
	fields := ParseFields("Skills: **Go, Rust**\nExperience: **5 years**", ResumeFieldSchema())

	if fields[FieldSkills] != "Go, Rust" {
		t.Errorf("skills = %q, want %q", fields[FieldSkills], "Go, Rust")
	}
	if fields[FieldExperience] != "5 years" {
		t.Errorf("experience = %q, want %q", fields[FieldExperience], "5 years")
	}
}

func TestParseFieldsNumericBounds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "in range", raw: "Resume Score: 95", want: "95"},
		{name: "upper bound", raw: "Resume Score: 100", want: "100"},
		{name: "zero", raw: "Resume Score: 0", want: "0"},
		{name: "out of range falls back", raw: "Resume Score: 150", want: "0"},
		{name: "non-numeric falls back", raw: "Resume Score: high", want: "0"},
		{name: "missing falls back", raw: "Skills: Go", want: "0"},
	}

	schema := ResumeFieldSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.raw, schema)
			if fields[FieldScore] != tt.want {
				t.Errorf("score = %q, want %q", fields[FieldScore], tt.want)
			}
		})
	}
}

func TestParseFieldsIndependentPerField(t *testing.T) {
	// A garbled label must not block the fields around it.
	raw := "Skillz: typo here\nExperience: 3 years\nJob Titles: Data Engineer"

	fields := ParseFields(raw, ResumeFieldSchema())

	if fields[FieldExperience] != "3 years" {
		t.Errorf("experience = %q, want %q", fields[FieldExperience], "3 years")
	}
	if fields[FieldJobTitles] != "Data Engineer" {
		t.Errorf("jobTitles = %q, want %q", fields[FieldJobTitles], "Data Engineer")
	}
}
