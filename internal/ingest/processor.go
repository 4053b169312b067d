// Package ingest runs the resume pipeline: extracted text goes through the
// structured-extraction client, the candidate identity is resolved against
// the store, and the normalized sub-records are appended in a single
// transaction per submission.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-intake/internal/cv"
	"resume-intake/internal/storage"
)

// Store is the persistence surface the pipeline needs. *storage.DB satisfies
// it; tests use an in-memory fake.
type Store interface {
	FindCandidate(ctx context.Context, firstName, lastName, email, phone string) (string, bool, error)
	LatestVersion(ctx context.Context, candidateID string) (*storage.ResumeVersion, error)
	AppendSubmission(ctx context.Context, sub *storage.Submission) error
}

// TextExtractor pulls plain text out of a stored document.
type TextExtractor func(path string) (string, error)

// ErrNoText means the document opened fine but carried no text layer (e.g. a
// scanned image). Distinct from cv.ExtractionError.
var ErrNoText = errors.New("document has no extractable text")

type Processor struct {
	store     Store
	extractor TextExtractor
	client    *cv.Extractor

	now   func() time.Time
	newID func() string
}

func NewProcessor(store Store, extractor TextExtractor, client *cv.Extractor) *Processor {
	return &Processor{
		store:     store,
		extractor: extractor,
		client:    client,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Result is what one non-versioned submission produced.
type Result struct {
	CandidateID string
	Existing    bool // the submission matched an already known candidate
	Resume      *cv.Resume
	Text        string
}

// Process runs the full pipeline for one resume document.
func (p *Processor) Process(ctx context.Context, pdfPath string) (*Result, error) {
	text, doc, err := p.extract(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	candidateID, existing, err := p.resolveCandidate(ctx, doc.UserInfo)
	if err != nil {
		return nil, err
	}

	sub := buildSubmission(candidateID, "", doc, pdfPath, p.now())
	if err := p.store.AppendSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("appending submission for %s: %w", pdfPath, err)
	}

	return &Result{CandidateID: candidateID, Existing: existing, Resume: doc, Text: text}, nil
}

func (p *Processor) extract(ctx context.Context, pdfPath string) (string, *cv.Resume, error) {
	text, err := p.extractor(pdfPath)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrNoText, pdfPath)
	}

	doc, err := p.client.Extract(ctx, text)
	if err != nil {
		return "", nil, fmt.Errorf("extracting structured content from %s: %w", pdfPath, err)
	}
	return text, doc, nil
}

// resolveCandidate returns the stable identifier for this person, minting a
// new one for first-time submitters. Matching is an exact AND across all
// four identity fields; there is deliberately no fuzzy matching.
func (p *Processor) resolveCandidate(ctx context.Context, info cv.UserInfo) (string, bool, error) {
	id, found, err := p.store.FindCandidate(ctx, info.FirstName, info.LastName, info.Email, info.PhoneNumber)
	if err != nil {
		return "", false, fmt.Errorf("candidate lookup: %w", err)
	}
	if found {
		return id, true, nil
	}
	return p.newID(), false, nil
}
