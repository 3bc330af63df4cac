// Package extract converts raw uploaded bytes (images, ZIP archives, PDF
// documents) into plain text plus metadata for intake normalization.
package extract

import "errors"

// ErrExtractionFailed marks failures of a format-specific engine: a corrupt
// archive, an invalid PDF, or an OCR engine that could not run. Callers match
// it with errors.Is to distinguish engine failures from precondition errors.
var ErrExtractionFailed = errors.New("extraction failed")
