// Backfills the content_hash column for resume versions stored before
// fingerprinting existed, by re-running extraction on the saved document.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"resume-intake/internal/config"
	"resume-intake/internal/cv"
	"resume-intake/internal/ingest"
	"resume-intake/internal/llm"
	"resume-intake/internal/storage"
)

func main() {
	var dryRun bool
	var limit int
	flag.BoolVar(&dryRun, "dry-run", true, "If true, do not persist updates; just print changes")
	flag.IntVar(&limit, "limit", 50, "Max number of versions to process in one run")
	flag.Parse()

	cfg := config.LoadConfig()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	ctx := context.Background()

	log.Printf("Connecting to DB...")
	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	svc, err := llm.NewService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}
	extractor := cv.NewExtractor(svc, "")

	q := `SELECT version_id, pdf_path FROM resume_versions WHERE content_hash = '' ORDER BY revision_date ASC LIMIT $1`
	rows, err := db.GetConnection().QueryContext(ctx, q, limit)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	defer rows.Close()

	type versionRow struct {
		versionID string
		pdfPath   string
	}
	var versions []versionRow
	for rows.Next() {
		var r versionRow
		if err := rows.Scan(&r.versionID, &r.pdfPath); err != nil {
			log.Printf("row scan error: %v", err)
			continue
		}
		versions = append(versions, r)
	}

	log.Printf("Found %d versions without a fingerprint (limit %d)", len(versions), limit)

	for _, vr := range versions {
		if _, err := os.Stat(vr.pdfPath); err != nil {
			log.Printf("version %s: source document %s is gone, skipping", vr.versionID, vr.pdfPath)
			continue
		}

		text, err := cv.ExtractText(vr.pdfPath)
		if err != nil {
			log.Printf("version %s: %v", vr.versionID, err)
			continue
		}

		doc, err := extractor.Extract(ctx, text)
		if err != nil {
			log.Printf("version %s: extraction failed: %v", vr.versionID, err)
			continue
		}

		hash := ingest.Fingerprint(doc)
		log.Printf("version %s -> fingerprint %s", vr.versionID, hash[:12])

		if dryRun {
			log.Printf("[dry-run] Would update version %s", vr.versionID)
			continue
		}

		upd := `UPDATE resume_versions SET content_hash = $1 WHERE version_id = $2`
		if _, err := db.GetConnection().ExecContext(ctx, upd, hash, vr.versionID); err != nil {
			log.Printf("failed to update version %s: %v", vr.versionID, err)
			continue
		}

		// small sleep between backend calls to avoid rate limits
		time.Sleep(cfg.Throttle)
	}

	log.Printf("Backfill run complete")
}
