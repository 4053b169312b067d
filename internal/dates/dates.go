// Package dates normalizes the free-text dates found on resumes. Parsing is
// best effort: a value that matches no known layout is passed through
// unchanged so that one odd date never fails a whole submission.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// monthNames maps lowercased month tokens, including Spanish names, to the
// English abbreviation the layouts below expect.
var monthNames = map[string]string{
	"jan": "Jan", "january": "Jan", "enero": "Jan",
	"feb": "Feb", "february": "Feb", "febrero": "Feb",
	"mar": "Mar", "march": "Mar", "marzo": "Mar",
	"apr": "Apr", "april": "Apr", "abril": "Apr",
	"may": "May", "mayo": "May",
	"jun": "Jun", "june": "Jun", "junio": "Jun",
	"jul": "Jul", "july": "Jul", "julio": "Jul",
	"aug": "Aug", "august": "Aug", "agosto": "Aug",
	"sep": "Sep", "sept": "Sep", "september": "Sep", "septiembre": "Sep", "setiembre": "Sep",
	"oct": "Oct", "october": "Oct", "octubre": "Oct",
	"nov": "Nov", "november": "Nov", "noviembre": "Nov",
	"dec": "Dec", "december": "Dec", "diciembre": "Dec",
}

// layouts are tried in order; the first match wins.
var layouts = []string{
	"Jan 2006",
	"January 2006",
	"1/2006",
	"2006-1",
}

var openEndedRe = regexp.MustCompile(`(?i)present|current|actual`)

// Normalize converts a free-text date to the canonical "YYYY-MM" form.
// It returns the empty string for absent values and for "present/current"
// markers (an open period), and the trimmed input unchanged when nothing
// parses.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || isOpenEnded(s) {
		return ""
	}

	cleaned := translateMonths(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01")
		}
	}
	return s
}

// IsRange reports whether a single date field actually carries a whole
// range, e.g. "Jan 2020 - Present" or "2019 to 2021".
func IsRange(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	return strings.Contains(s, "–") ||
		strings.Contains(s, " - ") ||
		strings.Contains(s, " to ") ||
		isOpenEnded(s)
}

// SplitRange splits a free-text range into normalized start and end values.
// An open-ended range yields an empty end.
func SplitRange(raw string) (start, end string) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, " to ", " - ")

	if isOpenEnded(s) {
		s = openEndedRe.ReplaceAllString(s, "")
		s = strings.TrimRight(strings.TrimSpace(s), "- ")
		return Normalize(s), ""
	}

	parts := strings.SplitN(s, " - ", 2)
	if len(parts) < 2 {
		return Normalize(s), ""
	}
	return Normalize(parts[0]), Normalize(parts[1])
}

func isOpenEnded(s string) bool {
	return openEndedRe.MatchString(s)
}

func translateMonths(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		key := strings.ToLower(strings.Trim(f, ".,"))
		if m, ok := monthNames[key]; ok {
			fields[i] = m
		}
	}
	return strings.Join(fields, " ")
}
