package storage

import "context"

// Each sub-record type is one flat table; rows relate through candidate_id
// (and version_id in versioned mode). Nothing here is ever updated or
// deleted by the pipeline.
const schema = `
CREATE TABLE IF NOT EXISTS candidates (
    candidate_id     TEXT        NOT NULL,
    version_id       TEXT,
    processed_at     TIMESTAMPTZ NOT NULL,
    first_name       TEXT        NOT NULL DEFAULT '',
    last_name        TEXT        NOT NULL DEFAULT '',
    email            TEXT        NOT NULL DEFAULT '',
    phone_number     TEXT        NOT NULL DEFAULT '',
    linkedin_profile TEXT        NOT NULL DEFAULT '',
    address          TEXT        NOT NULL DEFAULT '',
    summary          TEXT        NOT NULL DEFAULT '',
    pdf_path         TEXT        NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS skills (
    candidate_id TEXT        NOT NULL,
    version_id   TEXT,
    processed_at TIMESTAMPTZ NOT NULL,
    soft_skills  TEXT        NOT NULL DEFAULT '',
    hard_skills  TEXT        NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS experience (
    candidate_id TEXT        NOT NULL,
    version_id   TEXT,
    processed_at TIMESTAMPTZ NOT NULL,
    title        TEXT        NOT NULL DEFAULT '',
    company      TEXT        NOT NULL DEFAULT '',
    start_date   TEXT        NOT NULL DEFAULT '',
    end_date     TEXT        NOT NULL DEFAULT '',
    description  TEXT        NOT NULL DEFAULT '',
    location     TEXT        NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS education (
    candidate_id TEXT        NOT NULL,
    version_id   TEXT,
    processed_at TIMESTAMPTZ NOT NULL,
    title        TEXT        NOT NULL DEFAULT '',
    institution  TEXT        NOT NULL DEFAULT '',
    type         TEXT        NOT NULL DEFAULT 'degree',
    start_date   TEXT        NOT NULL DEFAULT '',
    end_date     TEXT        NOT NULL DEFAULT '',
    notes        TEXT        NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS languages (
    candidate_id TEXT        NOT NULL,
    version_id   TEXT,
    processed_at TIMESTAMPTZ NOT NULL,
    language     TEXT        NOT NULL DEFAULT '',
    level        TEXT        NOT NULL DEFAULT '',
    notes        TEXT        NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS resume_versions (
    version_id          TEXT        PRIMARY KEY,
    candidate_id        TEXT        NOT NULL,
    version_number      INTEGER     NOT NULL,
    pdf_path            TEXT        NOT NULL DEFAULT '',
    revision_date       TIMESTAMPTZ NOT NULL,
    revision_type       TEXT        NOT NULL DEFAULT '',
    reviewer_id         TEXT        NOT NULL DEFAULT '',
    previous_version_id TEXT,
    changes_summary     TEXT        NOT NULL DEFAULT '',
    content_hash        TEXT        NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS feedback (
    candidate_id TEXT        NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    body         TEXT        NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_candidates_identity
    ON candidates (first_name, last_name, email, phone_number);
CREATE INDEX IF NOT EXISTS idx_versions_candidate
    ON resume_versions (candidate_id, version_number);
`

// EnsureSchema creates the tables on first run so a fresh database behaves
// like the first-ever batch (identity lookups simply find nothing).
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.connection.ExecContext(ctx, schema)
	return err
}
