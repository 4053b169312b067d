package feedback

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBody(t *testing.T) {
	fb := &Feedback{
		EmailIntro: "Hi Ada, strong resume overall.",
		Sections: map[string]Section{
			"work_experience": {
				Feedback: "Lead with **impact**.\n* quantify results",
				Example:  json.RawMessage(`"Cut build times by 40%"`),
			},
			"skills": {
				Feedback: "Group related tools.",
				Example:  json.RawMessage(`{"hard_skills": ["Go", "SQL"]}`),
			},
		},
		Closing: "Good luck!",
	}

	body := FormatBody(fb)

	assert.Contains(t, body, "Hi Ada, strong resume overall.")
	assert.Contains(t, body, "Work Experience")
	assert.Contains(t, body, "Skills")
	assert.Contains(t, body, "Cut build times by 40%")
	assert.Contains(t, body, "Good luck!")

	// markdown emphasis is stripped and stars become bullets
	assert.NotContains(t, body, "**")
	assert.Contains(t, body, "• quantify results")

	// sections render in name order
	assert.Less(t, strings.Index(body, "Skills"), strings.Index(body, "Work Experience"))
}

func TestRenderExampleShapes(t *testing.T) {
	assert.Equal(t, "plain text", renderExample(json.RawMessage(`"plain text"`)))
	assert.Equal(t, "", renderExample(nil))

	structured := renderExample(json.RawMessage(`{"title": "Engineer", "highlights": ["shipped v2", "mentored juniors"]}`))
	assert.Contains(t, structured, "Title: Engineer")
	assert.Contains(t, structured, "• shipped v2")

	list := renderExample(json.RawMessage(`["one", "two"]`))
	assert.Contains(t, list, "• one")
	assert.Contains(t, list, "• two")
}

func TestTitleWordsHandlesMultibyteRunes(t *testing.T) {
	assert.Equal(t, "Años De Experiencia", titleWords("años de experiencia"))
	assert.Equal(t, "Índice", titleWords("índice"))
	assert.Equal(t, "Work Experience", titleWords("work experience"))
}
