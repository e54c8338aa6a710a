package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-match/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillDirectory_ResolveName(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)
	ctx := context.Background()

	assert.Equal(t, "Go", d.ResolveName(ctx, "s1"))
	for i := 0; i < 2; i++ {
		assert.Equal(t, skill.UnnamedName, d.ResolveName(ctx, "nope"))
	}
}

func TestSkillDirectory_ResolveName_StoreErrorIsUnnamed(t *testing.T) {
	f := newFixture(t)
	f.skills.err = errors.New("boom")
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)

	assert.Equal(t, skill.UnnamedName, d.ResolveName(context.Background(), "s1"))
}

func TestSkillDirectory_ResolveName_EmptyNameIsUnnamed(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.skills.UpsertSkill(context.Background(), skill.New("s9", "")))
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)

	assert.Equal(t, skill.UnnamedName, d.ResolveName(context.Background(), "s9"))
}

func TestSkillDirectory_ResolveAll_UsesCache(t *testing.T) {
	f := newFixture(t)
	cache := newMapCache()
	d := NewSkillDirectoryUsecase(f.skills, cache, nil)
	ctx := context.Background()

	want := map[string]string{"s1": "Go", "s2": "Rust"}
	for i := 0; i < 2; i++ {
		got, err := d.ResolveAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, listAll := f.skills.calls()
	assert.Equal(t, 1, listAll, "second call should be served from cache")
}

func TestSkillDirectory_ResolveAll_StoreError(t *testing.T) {
	f := newFixture(t)
	f.skills.err = errors.New("boom")
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)

	_, err := d.ResolveAll(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSkillDirectory_Invalidate_PicksUpNewSkills(t *testing.T) {
	f := newFixture(t)
	cache := newMapCache()
	d := NewSkillDirectoryUsecase(f.skills, cache, nil)
	ctx := context.Background()

	_, err := d.ResolveAll(ctx)
	require.NoError(t, err)

	require.NoError(t, f.skills.UpsertSkill(ctx, skill.New("s3", "Python")))
	require.NoError(t, d.Invalidate(ctx))

	got := d.ResolveNames(ctx, []string{"s1", "s3"}, NewNameCache(0, 0))
	assert.Equal(t, map[string]string{"s1": "Go", "s3": "Python"}, got)
	_, listAll := f.skills.calls()
	assert.Equal(t, 2, listAll, "invalidation forces a fresh directory read")
}

func TestSkillDirectory_Invalidate_NoCache(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)

	assert.NoError(t, d.Invalidate(context.Background()))
}

func TestSkillDirectory_ResolveNames_Batches(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)
	session := NewNameCache(0, 0)
	ctx := context.Background()

	got := d.ResolveNames(ctx, []string{"s1", "s2", "s1", "zz"}, session)
	assert.Equal(t, map[string]string{"s1": "Go", "s2": "Rust", "zz": skill.UnnamedName}, got)
	byID, listAll := f.skills.calls()
	assert.Equal(t, 0, byID)
	assert.Equal(t, 1, listAll)

	// Everything is now in the session cache.
	_ = d.ResolveNames(ctx, []string{"s2", "zz"}, session)
	byID, listAll = f.skills.calls()
	assert.Equal(t, 0, byID)
	assert.Equal(t, 1, listAll)
}

func TestSkillDirectory_ResolveNames_SingleMissUsesPointRead(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)

	got := d.ResolveNames(context.Background(), []string{"s2"}, nil)
	assert.Equal(t, "Rust", got["s2"])
	byID, listAll := f.skills.calls()
	assert.Equal(t, 1, byID)
	assert.Equal(t, 0, listAll)
}

func TestSkillDirectory_ResolveNames_SingleMissingSkillIsCached(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)
	session := NewNameCache(0, 0)

	got := d.ResolveNames(context.Background(), []string{"gone"}, session)
	assert.Equal(t, skill.UnnamedName, got["gone"])
	name, ok := session.Get("gone")
	assert.True(t, ok, "a definite miss is authoritative")
	assert.Equal(t, skill.UnnamedName, name)
}

func TestSkillDirectory_ResolveNames_ErrorNotCached(t *testing.T) {
	f := newFixture(t)
	f.skills.err = errors.New("boom")
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)
	session := NewNameCache(0, 0)

	got := d.ResolveNames(context.Background(), []string{"s1", "s2"}, session)
	assert.Equal(t, map[string]string{"s1": skill.UnnamedName, "s2": skill.UnnamedName}, got)
	assert.Equal(t, 0, session.Len())
}

func TestSkillDirectory_ResolveNames_SingleErrorNotCached(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)
	session := NewNameCache(0, 0)
	ctx := context.Background()

	f.skills.setErr(errors.New("transient"))
	got := d.ResolveNames(ctx, []string{"s2"}, session)
	assert.Equal(t, skill.UnnamedName, got["s2"])
	assert.Equal(t, 0, session.Len())

	f.skills.setErr(nil)
	got = d.ResolveNames(ctx, []string{"s2"}, session)
	assert.Equal(t, "Rust", got["s2"], "store recovery must be visible")
	name, ok := session.Get("s2")
	assert.True(t, ok)
	assert.Equal(t, "Rust", name)
}

func TestSkillDirectory_Search(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)
	ctx := context.Background()

	got, err := d.Search(ctx, "ru")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)

	got, err = d.Search(ctx, " R u ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rust", got[0].Name)

	got, err = d.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, got, 2, "blank prefix lists the initial skills")
}

func TestSkillDirectory_Search_SortedByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.skills.UpsertSkill(ctx, skill.New("s3", "Ruby")))
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)

	got, err := d.Search(ctx, "ru")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ruby", got[0].Name)
	assert.Equal(t, "Rust", got[1].Name)
}

func TestSkillDirectory_Search_InitialListingIsCapped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		require.NoError(t, f.skills.UpsertSkill(ctx, skill.New(id, "Skill "+id)))
	}
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)

	got, err := d.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, InitialSkillsLimit)
}

func TestSkillDirectory_Search_Cancelled(t *testing.T) {
	f := newFixture(t)
	d := NewSkillDirectoryUsecase(f.skills, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Search(ctx, "go")
	assert.ErrorIs(t, err, context.Canceled)
}
