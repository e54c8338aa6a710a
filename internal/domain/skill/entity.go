package skill

import (
	"errors"
	"strings"
	"unicode"
)

// UnnamedName is shown for ids that do not resolve to a stored name.
const UnnamedName = "Unnamed"

// PrefixSentinel closes a prefix range: every string starting with p sorts
// in [p, p+PrefixSentinel).
const PrefixSentinel = "\uf8ff"

var ErrNotFound = errors.New("skill not found")

type Skill struct {
	ID         string
	Name       string
	NameSearch string
}

// New builds a Skill with its derived search field.
func New(id, name string) Skill {
	return Skill{ID: id, Name: name, NameSearch: NormalizeSearch(name)}
}

// NormalizeSearch removes all whitespace and lowercases s.
func NormalizeSearch(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// DisplayName maps an empty name to UnnamedName.
func DisplayName(name string) string {
	if name == "" {
		return UnnamedName
	}
	return name
}

// PrefixRange returns the half-open range matched by a normalized prefix.
func PrefixRange(normalized string) (lo, hi string) {
	return normalized, normalized + PrefixSentinel
}
