// Package errs defines the error kinds surfaced at the API boundary.
// Services wrap these with fmt.Errorf("%w: ...") so controllers can map
// a failure to an HTTP status with errors.Is.
package errs

import "errors"

var (
	// ErrNotFound covers missing files and missing records.
	ErrNotFound = errors.New("not found")
	// ErrExtraction covers unreadable PDFs and out-of-range page requests.
	ErrExtraction = errors.New("extraction failed")
	// ErrGeneration covers question/explanation service failures and
	// contract violations (wrong count, mismatched lengths).
	ErrGeneration = errors.New("generation failed")
	// ErrGrading covers grading service failures and invalid scores.
	ErrGrading = errors.New("grading failed")
	// ErrValidation covers malformed ids, invalid marks, empty answers
	// and non-PDF uploads.
	ErrValidation = errors.New("validation failed")
)
