package storage

import "time"

// CandidateProfile is one row in the candidates table. The CandidateID is
// assigned once per real person and never changes; every submission appends
// a fresh row carrying it.
type CandidateProfile struct {
	CandidateID     string
	VersionID       string // empty outside versioned mode
	ProcessedAt     time.Time
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	LinkedinProfile string
	Address         string
	Summary         string
	PDFPath         string
}

// SkillsRecord is append-only history; resubmissions add rows rather than
// overwriting earlier ones.
type SkillsRecord struct {
	CandidateID string
	VersionID   string
	ProcessedAt time.Time
	SoftSkills  []string
	HardSkills  []string
}

type ExperienceEntry struct {
	CandidateID string
	VersionID   string
	ProcessedAt time.Time
	Title       string
	Company     string
	StartDate   string // canonical "YYYY-MM" or the raw value when unparseable
	EndDate     string // empty means a current position
	Description string
	Location    string
}

type EducationEntry struct {
	CandidateID string
	VersionID   string
	ProcessedAt time.Time
	Title       string
	Institution string
	Type        string // "degree" or "certification"
	StartDate   string
	EndDate     string
	Notes       string
}

type LanguageEntry struct {
	CandidateID string
	VersionID   string
	ProcessedAt time.Time
	Language    string
	Level       string
	Notes       string
}

// ResumeVersion is one node of a candidate's version chain. VersionNumber is
// gap-free and strictly increasing per candidate; PreviousVersionID links
// each node to its predecessor.
type ResumeVersion struct {
	VersionID         string
	CandidateID       string
	VersionNumber     int
	PDFPath           string
	RevisionDate      time.Time
	RevisionType      string
	ReviewerID        string
	PreviousVersionID string
	ChangesSummary    string
	ContentHash       string
}

// Submission bundles everything appended for one processed resume. It is
// written in a single transaction.
type Submission struct {
	Profile    CandidateProfile
	Skills     *SkillsRecord // nil when the resume had no skills section
	Experience []ExperienceEntry
	Education  []EducationEntry
	Languages  []LanguageEntry
	Version    *ResumeVersion // nil outside versioned mode
}

type FeedbackRecord struct {
	CandidateID string
	CreatedAt   time.Time
	Body        string
}
