package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// FindCandidate looks for an exact, case-sensitive match across all four
// identity fields at once and returns the earliest matching row. Two empty
// phone values compare equal; this is the intended (strict) dedup policy.
func (db *DB) FindCandidate(ctx context.Context, firstName, lastName, email, phone string) (string, bool, error) {
	query := `SELECT candidate_id FROM candidates
              WHERE first_name = $1 AND last_name = $2 AND email = $3 AND phone_number = $4
              ORDER BY processed_at ASC LIMIT 1`
	var id string
	err := db.connection.QueryRowContext(ctx, query, firstName, lastName, email, phone).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// LatestVersion returns the highest-numbered version for a candidate, or nil
// when the candidate has none.
func (db *DB) LatestVersion(ctx context.Context, candidateID string) (*ResumeVersion, error) {
	query := `SELECT version_id, candidate_id, version_number, pdf_path, revision_date,
                     revision_type, reviewer_id, COALESCE(previous_version_id, ''), changes_summary, content_hash
              FROM resume_versions WHERE candidate_id = $1
              ORDER BY version_number DESC LIMIT 1`
	v := &ResumeVersion{}
	err := db.connection.QueryRowContext(ctx, query, candidateID).Scan(
		&v.VersionID, &v.CandidateID, &v.VersionNumber, &v.PDFPath, &v.RevisionDate,
		&v.RevisionType, &v.ReviewerID, &v.PreviousVersionID, &v.ChangesSummary, &v.ContentHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// AppendSubmission writes everything extracted from one resume in a single
// transaction, so a failed submission leaves no partial sub-records behind.
func (db *DB) AppendSubmission(ctx context.Context, sub *Submission) error {
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	p := sub.Profile
	_, err = tx.ExecContext(ctx,
		`INSERT INTO candidates (candidate_id, version_id, processed_at, first_name, last_name,
                                 email, phone_number, linkedin_profile, address, summary, pdf_path)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.CandidateID, nullable(p.VersionID), p.ProcessedAt, p.FirstName, p.LastName,
		p.Email, p.PhoneNumber, p.LinkedinProfile, p.Address, p.Summary, p.PDFPath,
	)
	if err != nil {
		return err
	}

	if sub.Skills != nil {
		s := sub.Skills
		_, err = tx.ExecContext(ctx,
			`INSERT INTO skills (candidate_id, version_id, processed_at, soft_skills, hard_skills)
             VALUES ($1, $2, $3, $4, $5)`,
			s.CandidateID, nullable(s.VersionID), s.ProcessedAt,
			encodeList(s.SoftSkills), encodeList(s.HardSkills),
		)
		if err != nil {
			return err
		}
	}

	for _, e := range sub.Experience {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO experience (candidate_id, version_id, processed_at, title, company,
                                     start_date, end_date, description, location)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.CandidateID, nullable(e.VersionID), e.ProcessedAt, e.Title, e.Company,
			e.StartDate, e.EndDate, e.Description, e.Location,
		)
		if err != nil {
			return err
		}
	}

	for _, e := range sub.Education {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO education (candidate_id, version_id, processed_at, title, institution,
                                    type, start_date, end_date, notes)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.CandidateID, nullable(e.VersionID), e.ProcessedAt, e.Title, e.Institution,
			e.Type, e.StartDate, e.EndDate, e.Notes,
		)
		if err != nil {
			return err
		}
	}

	for _, l := range sub.Languages {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO languages (candidate_id, version_id, processed_at, language, level, notes)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			l.CandidateID, nullable(l.VersionID), l.ProcessedAt, l.Language, l.Level, l.Notes,
		)
		if err != nil {
			return err
		}
	}

	if sub.Version != nil {
		v := sub.Version
		_, err = tx.ExecContext(ctx,
			`INSERT INTO resume_versions (version_id, candidate_id, version_number, pdf_path,
                                          revision_date, revision_type, reviewer_id,
                                          previous_version_id, changes_summary, content_hash)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			v.VersionID, v.CandidateID, v.VersionNumber, v.PDFPath,
			v.RevisionDate, v.RevisionType, v.ReviewerID,
			nullable(v.PreviousVersionID), v.ChangesSummary, v.ContentHash,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SkillsByCandidate returns the append-only skills history for a candidate
// in submission order, list fields decoded back from their stored form.
func (db *DB) SkillsByCandidate(ctx context.Context, candidateID string) ([]SkillsRecord, error) {
	query := `SELECT candidate_id, COALESCE(version_id, ''), processed_at, soft_skills, hard_skills
              FROM skills WHERE candidate_id = $1 ORDER BY processed_at ASC`
	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkillsRecord
	for rows.Next() {
		var r SkillsRecord
		var soft, hard string
		if err := rows.Scan(&r.CandidateID, &r.VersionID, &r.ProcessedAt, &soft, &hard); err != nil {
			return nil, err
		}
		r.SoftSkills = decodeList(soft)
		r.HardSkills = decodeList(hard)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *DB) AppendFeedback(ctx context.Context, rec *FeedbackRecord) error {
	_, err := db.connection.ExecContext(ctx,
		`INSERT INTO feedback (candidate_id, created_at, body) VALUES ($1, $2, $3)`,
		rec.CandidateID, rec.CreatedAt, rec.Body,
	)
	return err
}

// LatestFeedback returns the most recent feedback row for a candidate, or
// nil when none exists yet.
func (db *DB) LatestFeedback(ctx context.Context, candidateID string) (*FeedbackRecord, error) {
	rec := &FeedbackRecord{}
	err := db.connection.QueryRowContext(ctx,
		`SELECT candidate_id, created_at, body FROM feedback
         WHERE candidate_id = $1 ORDER BY created_at DESC LIMIT 1`,
		candidateID,
	).Scan(&rec.CandidateID, &rec.CreatedAt, &rec.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// encodeList serializes a skill list for its text column as JSON array
// text, so values containing commas survive the reload; decodeList is the
// inverse.
func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
