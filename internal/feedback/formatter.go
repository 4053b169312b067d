// Package feedback turns a structured resume review into an email-ready
// draft body.
package feedback

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Feedback is the structured review the backend produces.
type Feedback struct {
	EmailIntro string             `json:"email_intro"`
	Sections   map[string]Section `json:"sections"`
	Closing    string             `json:"closing"`
}

// Section holds the review of one resume area plus an example, which may be
// plain text or a nested structure.
type Section struct {
	Feedback string          `json:"feedback"`
	Example  json.RawMessage `json:"example"`
}

// FormatBody renders structured feedback into plain email text. Sections are
// emitted in name order so the output is stable.
func FormatBody(fb *Feedback) string {
	var b strings.Builder

	b.WriteString(fb.EmailIntro)
	b.WriteString("\n\n")

	names := make([]string, 0, len(fb.Sections))
	for name := range fb.Sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		section := fb.Sections[name]

		b.WriteString(titleWords(strings.ReplaceAll(name, "_", " ")))
		b.WriteString("\n\nFeedback:\n")

		// strip markdown emphasis; bullets become real bullets
		text := strings.ReplaceAll(section.Feedback, "**", "")
		text = strings.ReplaceAll(text, "*", "•")
		b.WriteString(text)

		b.WriteString("\n\nExample:\n")
		b.WriteString(renderExample(section.Example))
		b.WriteString("\n\n")
	}

	b.WriteString(fb.Closing)
	return b.String()
}

// renderExample pretty-prints an example that may be a string, an object or
// a list.
func renderExample(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	if s, ok := v.(string); ok {
		return s
	}
	return formatStructured(v, 0)
}

func formatStructured(v any, indent int) string {
	pad := strings.Repeat("  ", indent)

	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var lines []string
		for _, k := range keys {
			label := titleWords(strings.ReplaceAll(k, "_", " "))
			switch t[k].(type) {
			case map[string]any, []any:
				lines = append(lines, pad+label+":")
				lines = append(lines, formatStructured(t[k], indent+1))
			default:
				lines = append(lines, fmt.Sprintf("%s%s: %v", pad, label, t[k]))
			}
		}
		return strings.Join(lines, "\n")

	case []any:
		var lines []string
		for _, item := range t {
			switch item.(type) {
			case map[string]any, []any:
				lines = append(lines, formatStructured(item, indent+1))
			default:
				lines = append(lines, fmt.Sprintf("%s• %v", pad, item))
			}
		}
		return strings.Join(lines, "\n")

	default:
		return fmt.Sprintf("%s%v", pad, t)
	}
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
