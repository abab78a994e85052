package insts

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat reports an instruction word that matched no format.
var ErrUnknownFormat = errors.New("unclassifiable instruction word")

// Classifier maps raw 16-bit THUMB words to their encoding format.
// It is stateless and safe for concurrent use.
type Classifier struct{}

// NewClassifier creates a new THUMB format classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the encoding format of a 16-bit THUMB word.
// Formats are tried from most to least constrained; the first format
// whose required-ones mask is fully contained in the word wins. The
// match table ends with an unconstrained mask, so every word
// classifies; a miss is still surfaced as an error rather than a
// bogus format.
func (c *Classifier) Classify(word uint16) (Format, error) {
	for _, d := range matchOrder {
		if word&d.mask == d.mask {
			return d.format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: 0x%04X", ErrUnknownFormat, word)
}
