package cv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-intake/internal/llm"
)

// Resume is the decoded structured record the backend produces for one
// document. Education and language items keep their raw form because the
// backend emits more than one shape for them; flattening is the record
// builder's job, not the extraction client's.
type Resume struct {
	UserInfo   UserInfo          `json:"user_info"`
	Skills     *Skills           `json:"skills"`
	Experience []Experience      `json:"relevant_work_experience"`
	Education  []json.RawMessage `json:"education"`
	Languages  []json.RawMessage `json:"languages"`

	// Raw holds the reply as decoded, for content fingerprinting.
	Raw json.RawMessage `json:"-"`
}

type UserInfo struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	LinkedinProfile string `json:"linkedin_profile"`
	Address         string `json:"address"`
	Summary         string `json:"summary"`
}

type Skills struct {
	SoftSkills []string `json:"soft_skills"`
	HardSkills []string `json:"hard_skills"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// ParseError means the backend replied but the reply was not decodable
// structured data. Raw carries the cleaned reply for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("backend reply is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrBackendUnavailable is returned once the retry budget for rate-limited
// calls is exhausted.
var ErrBackendUnavailable = errors.New("generative backend unavailable after retries")

const (
	maxAttempts    = 3
	initialBackoff = 4 * time.Second
	maxBackoff     = 10 * time.Second
)

// Extractor turns raw resume text into a structured record using a
// generative backend, retrying only rate-limited calls.
type Extractor struct {
	backend llm.Generator
	prompt  string // full prompt template with one %s for the resume text

	sleep func(time.Duration)
}

func NewExtractor(backend llm.Generator, promptTemplate string) *Extractor {
	if promptTemplate == "" {
		promptTemplate = DefaultPrompt
	}
	return &Extractor{
		backend: backend,
		prompt:  promptTemplate,
		sleep:   time.Sleep,
	}
}

// Extract asks the backend for the structured record of one resume.
// Backend failures and undecodable replies are distinct error classes:
// ErrBackendUnavailable (or the original error for non-retryable failures)
// versus *ParseError.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (*Resume, error) {
	prompt := fmt.Sprintf(e.prompt, resumeText)

	reply, err := e.generateWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := llm.StripFence(reply)

	var doc Resume
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &ParseError{Raw: cleaned, Err: err}
	}
	doc.Raw = json.RawMessage(cleaned)
	return &doc, nil
}

// generateWithRetry calls the backend up to maxAttempts times. Only
// rate-limit signals are retried, with exponential backoff between attempts;
// every other failure propagates immediately.
func (e *Extractor) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	backoff := initialBackoff
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			e.sleep(backoff)
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		out, err := e.backend.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		if !llm.IsRateLimited(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, lastErr)
}
