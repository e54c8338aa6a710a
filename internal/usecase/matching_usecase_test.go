package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/user"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatching_BothPoliciesReturnSuperset(t *testing.T) {
	for _, policy := range []matching.Policy{matching.PolicyUnionThenFilter, matching.PolicyIntersectionCount} {
		t.Run(string(policy), func(t *testing.T) {
			f := newFixture(t)
			dir := NewSkillDirectoryUsecase(f.skills, nil, nil)
			uc := NewMatchingUsecase(f.users, dir, policy, nil)

			res, err := uc.Match(context.Background(), MatchInput{SkillIDs: []string{"s1", "s2"}})
			require.NoError(t, err)
			require.Len(t, res.Users, 1)
			assert.Equal(t, f.u1, res.Users[0].ID)
			if diff := cmp.Diff([]string{"Go", "Rust"}, res.Users[0].SkillNames); diff != "" {
				t.Errorf("skill names mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, policy, res.Policy)

			res, err = uc.Match(context.Background(), MatchInput{SkillIDs: []string{"s1"}})
			require.NoError(t, err)
			assert.Len(t, res.Users, 2)
		})
	}
}

func TestMatching_QueryCounts(t *testing.T) {
	f := newFixture(t)
	dir := NewSkillDirectoryUsecase(f.skills, nil, nil)
	uc := NewMatchingUsecase(f.users, dir, matching.PolicyIntersectionCount, nil)
	ctx := context.Background()

	res, err := uc.Match(ctx, MatchInput{SkillIDs: []string{"s1", "s2", "s1"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Queries)
	assert.Equal(t, 2, f.users.single, "one query per distinct skill")

	f.users.reset()
	res, err = uc.Match(ctx, MatchInput{SkillIDs: []string{"s1", "s2"}, Policy: matching.PolicyUnionThenFilter})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Queries)
	assert.Equal(t, 1, f.users.any)
	assert.Equal(t, 0, f.users.single)
}

func TestMatching_ChunksLargeSelections(t *testing.T) {
	f := newFixture(t)
	dir := NewSkillDirectoryUsecase(f.skills, nil, nil)
	uc := NewMatchingUsecase(f.users, dir, matching.PolicyUnionThenFilter, nil)

	ids := []string{"s1"}
	for i := 0; i < 40; i++ {
		ids = append(ids, fmt.Sprintf("x%d", i))
	}
	res, err := uc.Match(context.Background(), MatchInput{SkillIDs: ids})
	assert.ErrorIs(t, err, ErrNoUsersFound)
	assert.Equal(t, 2, res.Queries, "41 ids split into chunks of 30")
}

func TestMatching_EmptySelection(t *testing.T) {
	f := newFixture(t)
	uc := NewMatchingUsecase(f.users, NewSkillDirectoryUsecase(f.skills, nil, nil), "", nil)

	_, err := uc.Match(context.Background(), MatchInput{SkillIDs: []string{"", "  "}})
	assert.ErrorIs(t, err, ErrNoSkillsSelected)
	assert.Zero(t, f.users.single+f.users.any, "no store queries for an empty selection")
}

func TestMatching_NoUsers(t *testing.T) {
	f := newFixture(t)
	uc := NewMatchingUsecase(f.users, NewSkillDirectoryUsecase(f.skills, nil, nil), "", nil)

	_, err := uc.Match(context.Background(), MatchInput{SkillIDs: []string{"s9"}})
	require.ErrorIs(t, err, ErrNoUsersFound)
	assert.Equal(t, MsgNoUsersFound, err.Error())
}

func TestMatching_StoreError(t *testing.T) {
	for _, policy := range []matching.Policy{matching.PolicyUnionThenFilter, matching.PolicyIntersectionCount} {
		t.Run(string(policy), func(t *testing.T) {
			f := newFixture(t)
			f.users.err = errors.New("unavailable")
			uc := NewMatchingUsecase(f.users, NewSkillDirectoryUsecase(f.skills, nil, nil), policy, nil)

			res, err := uc.Match(context.Background(), MatchInput{SkillIDs: []string{"s1"}})
			assert.ErrorIs(t, err, ErrInternal)
			assert.Empty(t, res.Users, "no partial result")
		})
	}
}

func TestMatching_Cancelled(t *testing.T) {
	f := newFixture(t)
	uc := NewMatchingUsecase(f.users, NewSkillDirectoryUsecase(f.skills, nil, nil), "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Match(ctx, MatchInput{SkillIDs: []string{"s1"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatching_UnknownPolicy(t *testing.T) {
	f := newFixture(t)
	uc := NewMatchingUsecase(f.users, NewSkillDirectoryUsecase(f.skills, nil, nil), "", nil)

	_, err := uc.Match(context.Background(), MatchInput{SkillIDs: []string{"s1"}, Policy: "fuzzy"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatching_UsesSessionNames(t *testing.T) {
	f := newFixture(t)
	uc := NewMatchingUsecase(f.users, NewSkillDirectoryUsecase(f.skills, nil, nil), "", nil)
	names := NewNameCache(0, 0)
	names.Set("s1", "Go")
	names.Set("s2", "Rust")

	_, err := uc.Match(context.Background(), MatchInput{SkillIDs: []string{"s1"}, Names: names})
	require.NoError(t, err)
	byID, listAll := f.skills.calls()
	assert.Zero(t, byID+listAll, "names should come from the session cache")
}

type recordingNotifier struct{ got []user.User }

func (n *recordingNotifier) UserRegistered(_ context.Context, u user.User) { n.got = append(n.got, u) }

func TestUserRegistration_Register(t *testing.T) {
	f := newFixture(t)
	n := &recordingNotifier{}
	uc := NewUserRegistrationUsecase(f.users, n, nil)
	ctx := context.Background()

	u, err := uc.Register(ctx, RegisterUserInput{Name: "Cy", Skills: []string{"s2", "s1"}})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "s1,s2", u.SkillSetKey)
	require.Len(t, n.got, 1)
	assert.Equal(t, u.ID, n.got[0].ID)

	doc, err := f.store.Get(ctx, "users", u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, doc.Strings("skills"))

	// Newly registered users are matchable.
	mu := NewMatchingUsecase(f.users, NewSkillDirectoryUsecase(f.skills, nil, nil), "", nil)
	res, err := mu.Match(ctx, MatchInput{SkillIDs: []string{"s2"}})
	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
}

func TestUserRegistration_StoreError(t *testing.T) {
	f := newFixture(t)
	f.users.err = errors.New("write failed")
	n := &recordingNotifier{}
	uc := NewUserRegistrationUsecase(f.users, n, nil)

	_, err := uc.Register(context.Background(), RegisterUserInput{Name: "x"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, n.got)
}
