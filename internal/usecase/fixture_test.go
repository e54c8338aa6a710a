package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"
	"skill-match/internal/repository"

	"github.com/stretchr/testify/require"
)

// fixture seeds s1 "Go", s2 "Rust" and users u1 [s1 s2], u2 [s1].
type fixture struct {
	store  *docstore.MemoryStore
	skills *countingSkillRepo
	users  *countingUserRepo
	u1, u2 string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	skills := &countingSkillRepo{SkillRepository: repository.NewDocstoreSkillRepository(store)}
	users := &countingUserRepo{Repository: repository.NewDocstoreUserRepository(store)}

	for _, s := range []skill.Skill{skill.New("s1", "Go"), skill.New("s2", "Rust")} {
		require.NoError(t, skills.UpsertSkill(ctx, s))
	}
	u1, err := users.Create(ctx, user.New("Ana", []string{"s2", "s1"}))
	require.NoError(t, err)
	u2, err := users.Create(ctx, user.New("Bo", []string{"s1"}))
	require.NoError(t, err)
	users.reset()
	skills.reset()
	return &fixture{store: store, skills: skills, users: users, u1: u1, u2: u2}
}

type countingSkillRepo struct {
	repository.SkillRepository
	mu      sync.Mutex
	byID    int
	listAll int
	err     error
}

func (r *countingSkillRepo) reset() {
	r.mu.Lock()
	r.byID, r.listAll = 0, 0
	r.mu.Unlock()
}

func (r *countingSkillRepo) setErr(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

func (r *countingSkillRepo) FindByID(ctx context.Context, id string) (skill.Skill, error) {
	r.mu.Lock()
	r.byID++
	err := r.err
	r.mu.Unlock()
	if err != nil {
		return skill.Skill{}, err
	}
	return r.SkillRepository.FindByID(ctx, id)
}

func (r *countingSkillRepo) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	r.mu.Lock()
	r.listAll++
	err := r.err
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return r.SkillRepository.GetAllSkills(ctx)
}

func (r *countingSkillRepo) calls() (byID, listAll int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID, r.listAll
}

type countingUserRepo struct {
	user.Repository
	mu     sync.Mutex
	single int
	any    int
	err    error
}

func (r *countingUserRepo) reset() {
	r.mu.Lock()
	r.single, r.any = 0, 0
	r.mu.Unlock()
}

func (r *countingUserRepo) Create(ctx context.Context, u user.User) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.Repository.Create(ctx, u)
}

func (r *countingUserRepo) FindBySkill(ctx context.Context, skillID string) ([]user.User, error) {
	r.mu.Lock()
	r.single++
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.Repository.FindBySkill(ctx, skillID)
}

func (r *countingUserRepo) FindByAnySkill(ctx context.Context, skillIDs []string) ([]user.User, error) {
	r.mu.Lock()
	r.any++
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.Repository.FindByAnySkill(ctx, skillIDs)
}

// mapCache is an in-process DirectoryCache that stores values by reference.
type mapCache struct {
	mu   sync.Mutex
	data map[string]map[string]string
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]map[string]string)} }

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	p, ok := out.(*map[string]string)
	if !ok {
		return false, nil
	}
	cp := make(map[string]string, len(v))
	for k, name := range v {
		cp[k] = name
	}
	*p = cp
	return true, nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := value.(map[string]string); ok {
		c.data[key] = m
		c.sets++
	}
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
