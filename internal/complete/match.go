// Package complete implements prefix-aware contact completion: word
// boundary matching, common-substring merging for incremental completion,
// and the group/expression/name completion paths.
package complete

import (
	"unicode"
)

// Status classifies the outcome of TryComplete.
type Status int

const (
	// StatusNone: no candidate matched, or the matches share no extension
	// beyond the token.
	StatusNone Status = iota
	// StatusMerged: the matches share a common form longer than the token.
	StatusMerged
	// StatusExact: the token already equals a full candidate.
	StatusExact
)

// BoundaryMatch reports whether token occurs inside cand at a word
// boundary: at the start of the string, or immediately after a non-word
// rune. It returns the rune offsets of the first such occurrence.
func BoundaryMatch(token, cand string, fold bool) (start, end int, ok bool) {
	t := []rune(token)
	c := []rune(cand)
	if len(t) == 0 || len(t) > len(c) {
		return 0, 0, false
	}

	for i := 0; i+len(t) <= len(c); i++ {
		if i > 0 && isWordRune(c[i-1]) {
			continue
		}
		if runesEqual(c[i:i+len(t)], t, fold) {
			return i, i + len(t), true
		}
	}
	return 0, 0, false
}

// MergeCommon extends a known-common range of two strings maximally in
// both directions: leftward by comparing what precedes the range in each
// string, rightward by comparing what follows it. It returns the merged
// substring and its new rune offsets within a. The ranges need not sit at
// the same offsets or leave equal amounts of surrounding text.
func MergeCommon(a, b string, aStart, aEnd, bStart, bEnd int) (string, int, int) {
	return mergeCommon([]rune(a), []rune(b), aStart, aEnd, bStart, bEnd, false)
}

func mergeCommon(a, b []rune, aStart, aEnd, bStart, bEnd int, fold bool) (string, int, int) {
	i, j := aStart, bStart
	for i > 0 && j > 0 && runeEqual(a[i-1], b[j-1], fold) {
		i--
		j--
	}
	k, l := aEnd, bEnd
	for k < len(a) && l < len(b) && runeEqual(a[k], b[l], fold) {
		k++
		l++
	}
	return string(a[i:k]), i, k
}

// TryComplete implements the unique-completion test. With exactly one
// boundary match the full candidate is the completion; with several, the
// completion is the common form shared by all of them around the token,
// when such a form extends beyond the token itself.
func TryComplete(token string, cands []string, fold bool) (string, Status) {
	type match struct {
		text       []rune
		start, end int
	}
	var matches []match
	for _, cand := range cands {
		if s, e, ok := BoundaryMatch(token, cand, fold); ok {
			matches = append(matches, match{text: []rune(cand), start: s, end: e})
		}
	}
	if len(matches) == 0 {
		return "", StatusNone
	}

	base := matches[0]
	start, end := 0, len(base.text)
	for _, m := range matches[1:] {
		_, s, e := mergeCommon(base.text, m.text, base.start, base.end, m.start, m.end, fold)
		if s > start {
			start = s
		}
		if e < end {
			end = e
		}
	}

	// Compare exactly, not folded: a case-only correction is still a
	// useful completion step.
	merged := string(base.text[start:end])
	if merged == token {
		// Nothing to extend. Exact when the token is a full candidate.
		for _, m := range matches {
			if m.start == 0 && m.end == len(m.text) {
				return merged, StatusExact
			}
		}
		return merged, StatusNone
	}
	return merged, StatusMerged
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runeEqual(a, b rune, fold bool) bool {
	if a == b {
		return true
	}
	return fold && unicode.ToLower(a) == unicode.ToLower(b)
}

func runesEqual(a, b []rune, fold bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !runeEqual(a[i], b[i], fold) {
			return false
		}
	}
	return true
}
