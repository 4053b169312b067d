package ingest

import (
	"encoding/json"
	"time"

	"resume-intake/internal/cv"
	"resume-intake/internal/dates"
	"resume-intake/internal/storage"
)

// buildSubmission maps a decoded structured record onto the typed sub-records.
// Missing sections yield fewer records, never an error: a resume without a
// skills section gets no skills row at all, malformed language items are
// skipped, and dates that refuse to parse are stored raw.
func buildSubmission(candidateID, versionID string, doc *cv.Resume, pdfPath string, now time.Time) *storage.Submission {
	sub := &storage.Submission{
		Profile: storage.CandidateProfile{
			CandidateID:     candidateID,
			VersionID:       versionID,
			ProcessedAt:     now,
			FirstName:       doc.UserInfo.FirstName,
			LastName:        doc.UserInfo.LastName,
			Email:           doc.UserInfo.Email,
			PhoneNumber:     doc.UserInfo.PhoneNumber,
			LinkedinProfile: doc.UserInfo.LinkedinProfile,
			Address:         doc.UserInfo.Address,
			Summary:         doc.UserInfo.Summary,
			PDFPath:         pdfPath,
		},
	}

	if doc.Skills != nil {
		sub.Skills = &storage.SkillsRecord{
			CandidateID: candidateID,
			VersionID:   versionID,
			ProcessedAt: now,
			SoftSkills:  doc.Skills.SoftSkills,
			HardSkills:  doc.Skills.HardSkills,
		}
	}

	for _, exp := range doc.Experience {
		start, end := normalizeDates(exp.StartDate, exp.EndDate)
		sub.Experience = append(sub.Experience, storage.ExperienceEntry{
			CandidateID: candidateID,
			VersionID:   versionID,
			ProcessedAt: now,
			Title:       exp.Title,
			Company:     exp.Company,
			StartDate:   start,
			EndDate:     end,
			Description: exp.Description,
			Location:    exp.Location,
		})
	}

	sub.Education = flattenEducation(candidateID, versionID, doc.Education, now)
	sub.Languages = buildLanguages(candidateID, versionID, doc.Languages, now)

	return sub
}

// normalizeDates handles the case where the whole range landed in the start
// field ("Jan 2020 - Present") as well as separate start/end values.
func normalizeDates(rawStart, rawEnd string) (start, end string) {
	if rawEnd == "" && dates.IsRange(rawStart) {
		return dates.SplitRange(rawStart)
	}
	return dates.Normalize(rawStart), dates.Normalize(rawEnd)
}

type educationItem struct {
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Notes       string `json:"notes"`
}

type educationGroup struct {
	Degrees        []educationItem `json:"degrees"`
	Certifications []educationItem `json:"certifications"`
}

// flattenEducation accepts both source shapes the backend emits: flat
// entries carrying a title directly, and parent entries grouping degrees and
// certifications. A flat entry is recognized by a top-level "title" key.
func flattenEducation(candidateID, versionID string, items []json.RawMessage, now time.Time) []storage.EducationEntry {
	var out []storage.EducationEntry

	appendItem := func(item educationItem, typ string) {
		if item.Type != "" {
			typ = item.Type
		}
		out = append(out, storage.EducationEntry{
			CandidateID: candidateID,
			VersionID:   versionID,
			ProcessedAt: now,
			Title:       item.Title,
			Institution: item.Institution,
			Type:        typ,
			StartDate:   dates.Normalize(item.StartDate),
			EndDate:     dates.Normalize(item.EndDate),
			Notes:       item.Notes,
		})
	}

	for _, raw := range items {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			continue
		}

		if _, flat := probe["title"]; flat {
			var item educationItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			appendItem(item, "degree")
			continue
		}

		var group educationGroup
		if err := json.Unmarshal(raw, &group); err != nil {
			continue
		}
		for _, d := range group.Degrees {
			d.Type = ""
			appendItem(d, "degree")
		}
		for _, c := range group.Certifications {
			c.Type = ""
			appendItem(c, "certification")
		}
	}
	return out
}

type languageItem struct {
	Language string `json:"language"`
	Level    string `json:"level"`
	Notes    string `json:"notes"`
}

// buildLanguages keeps items with a language or level and drops everything
// else (non-object items included) without failing the submission.
func buildLanguages(candidateID, versionID string, items []json.RawMessage, now time.Time) []storage.LanguageEntry {
	var out []storage.LanguageEntry
	for _, raw := range items {
		var item languageItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if item.Language == "" && item.Level == "" {
			continue
		}
		out = append(out, storage.LanguageEntry{
			CandidateID: candidateID,
			VersionID:   versionID,
			ProcessedAt: now,
			Language:    item.Language,
			Level:       item.Level,
			Notes:       item.Notes,
		})
	}
	return out
}
