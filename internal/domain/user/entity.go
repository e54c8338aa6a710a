package user

import (
	"sort"
	"strings"
)

type User struct {
	ID          string
	Name        string
	Skills      []string
	SkillSetKey string
}

// New builds a user record ready for storage: skill ids trimmed and sorted,
// SkillSetKey derived from the sorted list. The name is kept as given.
func New(name string, skills []string) User {
	sorted := NormalizeSkills(skills)
	return User{Name: name, Skills: sorted, SkillSetKey: SkillSetKey(sorted)}
}

// NormalizeSkills trims each id and sorts the result lexicographically.
// Empty ids and duplicates are kept.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, strings.TrimSpace(s))
	}
	sort.Strings(out)
	return out
}

// SkillSetKey joins an already sorted skill list with commas.
func SkillSetKey(sorted []string) string {
	return strings.Join(sorted, ",")
}
