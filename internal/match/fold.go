package match

import (
	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of name: "HandlerIds" and "handlerIDs"
// fold to the same string.
func Fold(name string) string {
	return cases.Fold().String(name)
}

// Index folds names once for repeated equality lookups.
type Index struct {
	folded []string
}

// NewIndex folds every name in order.
func NewIndex(names []string) Index {
	folded := make([]string, len(names))
	for i, name := range names {
		folded[i] = Fold(name)
	}

	return Index{folded: folded}
}

// Matches reports whether the i-th indexed name equals folded, which must already be folded.
func (x Index) Matches(i int, folded string) bool {
	return x.folded[i] == folded
}
