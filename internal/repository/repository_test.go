package repository

import (
	"context"
	"errors"
	"testing"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkillRepo(t *testing.T) *DocstoreSkillRepository {
	t.Helper()
	repo := NewDocstoreSkillRepository(docstore.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.UpsertSkill(ctx, skill.New("s1", "Go")))
	require.NoError(t, repo.UpsertSkill(ctx, skill.New("s2", "Rust")))
	require.NoError(t, repo.UpsertSkill(ctx, skill.New("s3", "Ruby on Rails")))
	return repo
}

func TestSkillRepository_FindByID(t *testing.T) {
	repo := newSkillRepo(t)

	s, err := repo.FindByID(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, skill.Skill{ID: "s2", Name: "Rust", NameSearch: "rust"}, s)

	_, err = repo.FindByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, skill.ErrNotFound))
}

func TestSkillRepository_SearchByPrefix(t *testing.T) {
	repo := newSkillRepo(t)

	got, err := repo.SearchByPrefix(context.Background(), "ru")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s3", got[0].ID, "rubyonrails sorts before rust")
	assert.Equal(t, "s2", got[1].ID)

	got, err = repo.SearchByPrefix(context.Background(), "rubyon")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s3", got[0].ID)
}

func TestSkillRepository_ListFirst(t *testing.T) {
	repo := newSkillRepo(t)

	got, err := repo.ListFirst(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := repo.GetAllSkills(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewDocstoreUserRepository(docstore.NewMemoryStore())
	ctx := context.Background()

	id1, err := repo.Create(ctx, user.New("Ana", []string{"s2", "s1"}))
	require.NoError(t, err)
	id2, err := repo.Create(ctx, user.New("Bo", []string{"s1"}))
	require.NoError(t, err)

	got, err := repo.FindBySkill(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, user.User{ID: id1, Name: "Ana", Skills: []string{"s1", "s2"}, SkillSetKey: "s1,s2"}, got[0])

	got, err = repo.FindByAnySkill(ctx, []string{"s1", "s9"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, id1, got[0].ID)
	assert.Equal(t, id2, got[1].ID)
}

func TestUserRepository_CreateWithoutSkills(t *testing.T) {
	repo := NewDocstoreUserRepository(docstore.NewMemoryStore())
	_, err := repo.Create(context.Background(), user.User{Name: "Empty"})
	require.NoError(t, err)

	got, err := repo.FindByAnySkill(context.Background(), []string{"s1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
