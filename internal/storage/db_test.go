package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		items []string
	}{
		{"plain", []string{"Go", "SQL", "Kubernetes"}},
		{"single", []string{"Go"}},
		{"value containing a comma", []string{"Planning, organizing", "Go"}},
		{"value containing quotes", []string{`knows "everything"`, "SQL"}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeList(encodeList(tt.items))
			if tt.items == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.items, got)
		})
	}
}

func TestDecodeListBadInput(t *testing.T) {
	assert.Nil(t, decodeList(""))
	assert.Nil(t, decodeList("not json"))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "v1", nullable("v1"))
}
