// Package source supplies resume documents to the batch runner as
// (display name, local path) pairs, from a local folder or an S3/R2 bucket.
package source

import (
	"context"
	"strings"
)

// Document is one fetched resume: its display name and where it lives on
// local disk.
type Document struct {
	Name string
	Path string
}

type Source interface {
	List(ctx context.Context) ([]Document, error)
}

// IsPDF reports whether a display name looks like a PDF document. Anything
// else is skipped before the pipeline sees it.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
