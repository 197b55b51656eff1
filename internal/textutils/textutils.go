// Package textutils provides text normalization helpers for fuzzy merchant
// matching.
package textutils

import (
	"strings"
)

// Full-width ASCII block (！ through ～). Each code point sits at a fixed
// offset from its ordinary half-width equivalent.
const (
	fullwidthLo     = 0xFF01
	fullwidthHi     = 0xFF5E
	fullwidthOffset = 0xFEE0
)

// FoldFullwidth converts full-width ASCII and punctuation characters to
// their half-width equivalents. Characters outside the full-width forms
// block pass through unchanged.
func FoldFullwidth(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= fullwidthLo && r <= fullwidthHi {
			return r - fullwidthOffset
		}
		return r
	}, s)
}

// Normalize lower-cases the text and folds full-width ASCII to half-width,
// producing the canonical form used for keyword matching.
func Normalize(s string) string {
	return FoldFullwidth(strings.ToLower(s))
}

// StripSpaces removes both ordinary and ideographic (full-width) spaces.
func StripSpaces(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "　", "")
}
