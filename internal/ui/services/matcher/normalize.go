package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func newFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}

// Normalize lowercases s and strips combining marks after canonical decomposition
func Normalize(s string) string {
	out, _, err := transform.String(newFolder(), strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// folded is a normalised label that remembers which original rune produced each folded rune
type folded struct {
	runes  []rune
	origin []int
}

func fold(label string) folded {
	t := newFolder()
	var f folded
	for i, r := range []rune(label) {
		out, _, err := transform.String(t, strings.ToLower(string(r)))
		if err != nil {
			out = strings.ToLower(string(r))
		}
		for _, fr := range out {
			f.runes = append(f.runes, fr)
			f.origin = append(f.origin, i)
		}
	}
	return f
}

// index returns the folded-rune offset of needle, or -1
func (f folded) index(needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(f.runes); i++ {
		for j, r := range needle {
			if f.runes[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
