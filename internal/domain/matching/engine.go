package matching

import (
	"fmt"
	"strings"
)

// Policy selects how candidate users are discovered. Both policies return
// exactly the users whose skill set is a superset of the required set.
type Policy string

const (
	// PolicyUnionThenFilter issues one array-contains-any query per chunk of
	// required ids and keeps candidates holding every required skill.
	PolicyUnionThenFilter Policy = "union_then_filter"
	// PolicyIntersectionCount issues one array-contains query per required
	// id and keeps users matched by all of them.
	PolicyIntersectionCount Policy = "intersection_count"

	DefaultPolicy = PolicyUnionThenFilter
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyUnionThenFilter:
		return PolicyUnionThenFilter, nil
	case PolicyIntersectionCount:
		return PolicyIntersectionCount, nil
	default:
		return "", fmt.Errorf("unknown matching policy %q", s)
	}
}

type Candidate struct {
	ID     string
	Name   string
	Skills []string
}

// NormalizeRequired trims ids, drops empty ones and removes duplicates,
// keeping first-seen order.
func NormalizeRequired(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// HasAll reports whether skills contains every id in required.
func HasAll(skills []string, required []string) bool {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}
	for _, r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}

// FilterSuperset dedupes candidates by id (first occurrence wins) and keeps
// those whose skills cover required.
func FilterSuperset(candidates []Candidate, required []string) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		if HasAll(c.Skills, required) {
			out = append(out, c)
		}
	}
	return out
}

// IntersectionCounter accumulates per-skill query results and counts, per
// user, how many distinct required skills matched.
type IntersectionCounter struct {
	counts map[string]int
	seen   map[string]map[string]struct{}
	users  map[string]Candidate
	order  []string
}

func NewIntersectionCounter() *IntersectionCounter {
	return &IntersectionCounter{
		counts: make(map[string]int),
		seen:   make(map[string]map[string]struct{}),
		users:  make(map[string]Candidate),
	}
}

// Add records the users returned by the query for skillID. A user counted
// twice for the same skill is counted once.
func (c *IntersectionCounter) Add(skillID string, batch []Candidate) {
	for _, u := range batch {
		skills, ok := c.seen[u.ID]
		if !ok {
			skills = make(map[string]struct{})
			c.seen[u.ID] = skills
			c.users[u.ID] = u
			c.order = append(c.order, u.ID)
		}
		if _, dup := skills[skillID]; dup {
			continue
		}
		skills[skillID] = struct{}{}
		c.counts[u.ID]++
	}
}

// Result returns users matched by exactly want distinct skills, in order
// of first discovery.
func (c *IntersectionCounter) Result(want int) []Candidate {
	out := make([]Candidate, 0)
	for _, id := range c.order {
		if c.counts[id] == want {
			out = append(out, c.users[id])
		}
	}
	return out
}

// Chunk splits ids into slices of at most size elements.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = len(ids)
	}
	out := make([][]string, 0, (len(ids)+size-1)/max(size, 1))
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
