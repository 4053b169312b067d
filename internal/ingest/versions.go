package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"resume-intake/internal/cv"
	"resume-intake/internal/storage"
)

// SubmitRequest describes one versioned resume submission.
type SubmitRequest struct {
	PDFPath        string
	CandidateID    string // optional; resolved from the extracted profile when empty
	RevisionType   string // free-form tag, e.g. "review" or "new-version"
	ReviewerID     string
	ChangesSummary string
}

// SubmitResult reports what a versioned submission did. Unchanged is the
// no-op case: the content matched the latest stored version, so nothing was
// written. It is not an error.
type SubmitResult struct {
	CandidateID   string
	VersionID     string
	VersionNumber int
	Unchanged     bool
}

// SubmitVersion ingests one resume revision. The version chain per candidate
// is linear: numbers start at 1 and increase without gaps, and every node
// after the first links to its predecessor.
func (p *Processor) SubmitVersion(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	_, doc, err := p.extract(ctx, req.PDFPath)
	if err != nil {
		return nil, err
	}

	candidateID := req.CandidateID
	if candidateID == "" {
		candidateID, _, err = p.resolveCandidate(ctx, doc.UserInfo)
		if err != nil {
			return nil, err
		}
	}

	hash := Fingerprint(doc)

	latest, err := p.store.LatestVersion(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("looking up latest version for candidate %s: %w", candidateID, err)
	}
	if latest != nil && latest.ContentHash == hash {
		log.Printf("no content changes for candidate %s; keeping version %d", candidateID, latest.VersionNumber)
		return &SubmitResult{
			CandidateID:   candidateID,
			VersionID:     latest.VersionID,
			VersionNumber: latest.VersionNumber,
			Unchanged:     true,
		}, nil
	}

	version := storage.ResumeVersion{
		VersionID:      p.newID(),
		CandidateID:    candidateID,
		VersionNumber:  1,
		PDFPath:        req.PDFPath,
		RevisionDate:   p.now(),
		RevisionType:   req.RevisionType,
		ReviewerID:     req.ReviewerID,
		ChangesSummary: req.ChangesSummary,
		ContentHash:    hash,
	}
	if latest != nil {
		version.VersionNumber = latest.VersionNumber + 1
		version.PreviousVersionID = latest.VersionID
	}

	sub := buildSubmission(candidateID, version.VersionID, doc, req.PDFPath, p.now())
	sub.Version = &version
	if err := p.store.AppendSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("appending version %d for candidate %s: %w", version.VersionNumber, candidateID, err)
	}

	return &SubmitResult{
		CandidateID:   candidateID,
		VersionID:     version.VersionID,
		VersionNumber: version.VersionNumber,
	}, nil
}

// Fingerprint hashes the structured content through a canonical re-encoding,
// so key order and incidental whitespace in the backend reply do not change
// the result.
func Fingerprint(doc *cv.Resume) string {
	var generic any = doc
	if doc.Raw != nil {
		var decoded any
		// re-encoding through a generic value writes map keys in sorted order
		if err := json.Unmarshal(doc.Raw, &decoded); err == nil {
			generic = decoded
		}
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		canonical = doc.Raw
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
