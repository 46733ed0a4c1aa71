// Package services contains domain services that operate on configuration
// documents without touching infrastructure.
package services

import (
	"encoding/json"
	"fmt"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

// DirtyTracker detects whether the in-memory document or stylesheet differs
// from the last loaded/saved snapshot. Comparison is structural: two
// documents with the same shape compare equal regardless of how their YAML
// was formatted.
type DirtyTracker struct {
	baselineDoc    string
	baselineStyles string
}

// NewDirtyTracker returns a tracker with no baseline; everything is dirty
// until the first Mark.
func NewDirtyTracker() *DirtyTracker {
	return &DirtyTracker{}
}

// Mark records the document as the clean baseline.
func (t *DirtyTracker) Mark(doc *entities.Document) error {
	c, err := canonical(doc)
	if err != nil {
		return err
	}
	t.baselineDoc = c
	return nil
}

// IsDirty reports whether the document differs from the baseline.
func (t *DirtyTracker) IsDirty(doc *entities.Document) bool {
	c, err := canonical(doc)
	if err != nil {
		// A document that cannot be canonicalized cannot equal the baseline.
		return true
	}
	return c != t.baselineDoc
}

// MarkStyles records the stylesheet text as the clean baseline.
func (t *DirtyTracker) MarkStyles(styles string) {
	t.baselineStyles = styles
}

// StylesDirty reports whether the stylesheet text differs from the baseline.
func (t *DirtyTracker) StylesDirty(styles string) bool {
	return styles != t.baselineStyles
}

// canonical produces a stable textual form of the document. encoding/json
// writes map keys in sorted order, which gives structural equality for free.
func canonical(doc *entities.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize document: %w", err)
	}
	return string(data), nil
}
