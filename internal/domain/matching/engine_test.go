package matching

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyUnionThenFilter, p)

	p, err = ParsePolicy(" Intersection_Count ")
	require.NoError(t, err)
	assert.Equal(t, PolicyIntersectionCount, p)

	_, err = ParsePolicy("fuzzy")
	assert.Error(t, err)
}

func TestNormalizeRequired(t *testing.T) {
	got := NormalizeRequired([]string{" s2", "s1", "", "s2", "  "})
	assert.Equal(t, []string{"s2", "s1"}, got)
	assert.Empty(t, NormalizeRequired(nil))
}

func TestFilterSuperset(t *testing.T) {
	cands := []Candidate{
		{ID: "u1", Skills: []string{"s1", "s2"}},
		{ID: "u2", Skills: []string{"s1"}},
		{ID: "u1", Skills: []string{"s1", "s2"}},
		{ID: "u3", Skills: []string{"s2", "s3", "s1"}},
	}

	got := FilterSuperset(cands, []string{"s1", "s2"})
	want := []Candidate{
		{ID: "u1", Skills: []string{"s1", "s2"}},
		{ID: "u3", Skills: []string{"s2", "s3", "s1"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FilterSuperset mismatch (-want +got):\n%s", diff)
	}
}

func TestIntersectionCounter(t *testing.T) {
	c := NewIntersectionCounter()
	u1 := Candidate{ID: "u1", Name: "Ana", Skills: []string{"s1", "s2"}}
	u2 := Candidate{ID: "u2", Name: "Bo", Skills: []string{"s1"}}

	c.Add("s1", []Candidate{u1, u2})
	c.Add("s2", []Candidate{u1})
	c.Add("s2", []Candidate{u1})

	if diff := cmp.Diff([]Candidate{u1}, c.Result(2)); diff != "" {
		t.Fatalf("Result(2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Candidate{u2}, c.Result(1)); diff != "" {
		t.Fatalf("Result(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestChunk(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, Chunk(ids, 2))
	assert.Equal(t, [][]string{{"a", "b", "c", "d", "e"}}, Chunk(ids, 30))
	assert.Empty(t, Chunk(nil, 3))
}

// Both discovery strategies must select the same users for any fixture.
func TestPoliciesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	universe := []string{"s1", "s2", "s3", "s4", "s5", "s6"}

	for round := 0; round < 200; round++ {
		users := make([]Candidate, 0, 12)
		for i := 0; i < 12; i++ {
			var skills []string
			for _, s := range universe {
				if rng.Intn(2) == 0 {
					skills = append(skills, s)
				}
			}
			users = append(users, Candidate{ID: fmt.Sprintf("u%d", i), Skills: skills})
		}

		required := NormalizeRequired([]string{
			universe[rng.Intn(len(universe))],
			universe[rng.Intn(len(universe))],
			universe[rng.Intn(len(universe))],
		})

		counter := NewIntersectionCounter()
		for _, r := range required {
			counter.Add(r, usersWithSkill(users, r))
		}
		byCount := counter.Result(len(required))

		union := usersWithAny(users, required)
		byFilter := FilterSuperset(union, required)

		brute := make([]Candidate, 0)
		for _, u := range users {
			if HasAll(u.Skills, required) {
				brute = append(brute, u)
			}
		}

		assert.ElementsMatch(t, brute, byCount, "round %d intersection", round)
		assert.ElementsMatch(t, brute, byFilter, "round %d union", round)
	}
}

func usersWithSkill(users []Candidate, id string) []Candidate {
	out := make([]Candidate, 0)
	for _, u := range users {
		if HasAll(u.Skills, []string{id}) {
			out = append(out, u)
		}
	}
	return out
}

func usersWithAny(users []Candidate, ids []string) []Candidate {
	out := make([]Candidate, 0)
	for _, u := range users {
		for _, id := range ids {
			if HasAll(u.Skills, []string{id}) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}
