package services

import (
	"fmt"
)

type PromptBuilder struct {
	maxChars int
}

func NewPromptBuilder(maxChars int) *PromptBuilder {
	return &PromptBuilder{maxChars: maxChars}
}

// BuildResumeAnalysisPrompt creates the instruction prompt for resume
// analysis. The resume text is truncated to respect model input limits; the
// response format matches ResumeFieldSchema exactly.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	if pb.maxChars > 0 && len(resumeText) > pb.maxChars {
		resumeText = resumeText[:pb.maxChars]
	}

	return fmt.Sprintf(`Analyze this resume text and extract:
1. Key skills (list 5-10, comma-separated)
2. Years of experience (estimate total)
3. Possible job titles (3-5, comma-separated)
4. Suggestions to improve the resume (3-5 bullet points)
5. Elevator pitch (short 3-5 sentence professional summary)
6. An overall resume score from 0 to 100

Respond exactly in this format:
Skills: [list]
Experience: [X years]
Job Titles: [list]
Suggestions: [bullet1]; [bullet2]; ...
Elevator Pitch: [paragraph]
Resume Score: [0-100]

Resume text: %s`, resumeText)
}
