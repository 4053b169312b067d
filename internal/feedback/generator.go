package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"resume-intake/internal/llm"
)

// RedraftAfter is how old stored feedback must be before a resubmission gets
// a fresh draft instead of keeping the existing one.
const RedraftAfter = 24 * time.Hour

// ShouldRedraft reports whether feedback last drafted at lastDrafted is due
// for a new draft. A zero time means no feedback exists yet.
func ShouldRedraft(lastDrafted, now time.Time) bool {
	if lastDrafted.IsZero() {
		return true
	}
	return now.Sub(lastDrafted) >= RedraftAfter
}

// DefaultPrompt asks the backend to review a resume. Placeholders, in order:
// candidate first name, known skills, resume text.
const DefaultPrompt = `You are a career coach reviewing a candidate's resume.

The candidate's first name is %s. Skills already on record: %s.

Resume text:
"""
%s
"""

Return ONLY valid JSON (no markdown) with this structure:
{
  "email_intro": "a short personal greeting and one-line overall impression",
  "sections": {
    "work_experience": {"feedback": "...", "example": "a rewritten bullet or snippet"},
    "skills": {"feedback": "...", "example": "..."},
    "education": {"feedback": "...", "example": "..."}
  },
  "closing": "an encouraging sign-off"
}

Be specific and concrete; point at actual lines of the resume.`

// Generator produces structured feedback through the same generative backend
// the extraction client uses.
type Generator struct {
	backend llm.Generator
	prompt  string
}

func NewGenerator(backend llm.Generator, promptTemplate string) *Generator {
	if promptTemplate == "" {
		promptTemplate = DefaultPrompt
	}
	return &Generator{backend: backend, prompt: promptTemplate}
}

// Review asks the backend to review one resume and returns both the decoded
// feedback and the formatted draft body.
func (g *Generator) Review(ctx context.Context, resumeText, firstName string, skills []string) (*Feedback, string, error) {
	prompt := fmt.Sprintf(g.prompt, firstName, strings.Join(skills, ", "), resumeText)

	reply, err := g.backend.Generate(ctx, prompt)
	if err != nil {
		return nil, "", fmt.Errorf("generating feedback: %w", err)
	}

	var fb Feedback
	if err := json.Unmarshal([]byte(llm.StripFence(reply)), &fb); err != nil {
		return nil, "", fmt.Errorf("decoding feedback reply: %w", err)
	}
	return &fb, FormatBody(&fb), nil
}
