package cv

import (
	"fmt"

	"code.sajari.com/docconv"
)

// ExtractionError means the source document itself could not be opened or
// parsed. An empty text layer is not an extraction error; callers decide what
// to do with zero-length output.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractText pulls the plain text out of a PDF document, all pages
// concatenated in order.
func ExtractText(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	return res.Body, nil
}
