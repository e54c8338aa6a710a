package usecase

import (
	"context"
	"errors"

	"skill-match/internal/domain/skill"
	"skill-match/internal/logging"
	"skill-match/internal/repository"
)

const (
	// InitialSkillsLimit is how many skills an empty search lists.
	InitialSkillsLimit = 10

	directoryCacheKey = "skills:names"
)

type SkillDirectoryUsecase interface {
	ResolveName(ctx context.Context, id string) string
	ResolveAll(ctx context.Context) (map[string]string, error)
	ResolveNames(ctx context.Context, ids []string, session *NameCache) map[string]string
	Invalidate(ctx context.Context) error
	Search(ctx context.Context, prefix string) ([]skill.Skill, error)
}

type SkillDirectory struct {
	repo   repository.SkillRepository
	cache  DirectoryCache
	logger logging.Logger
}

func NewSkillDirectoryUsecase(repo repository.SkillRepository, cache DirectoryCache, logger logging.Logger) *SkillDirectory {
	return &SkillDirectory{repo: repo, cache: cache, logger: logging.OrNop(logger)}
}

var _ SkillDirectoryUsecase = (*SkillDirectory)(nil)

// ResolveName never fails: missing skills, empty names and lookup errors
// all resolve to skill.UnnamedName.
func (d *SkillDirectory) ResolveName(ctx context.Context, id string) string {
	name, _ := d.lookup(ctx, id)
	return name
}

// lookup reports whether the resolved name is authoritative. Only a hit or a
// definite miss is; transient store errors are not.
func (d *SkillDirectory) lookup(ctx context.Context, id string) (string, bool) {
	s, err := d.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		return skill.DisplayName(s.Name), true
	case errors.Is(err, skill.ErrNotFound):
		return skill.UnnamedName, true
	default:
		d.logger.Warn(ctx, "resolve skill name failed", "skill_id", id, "error", err)
		return skill.UnnamedName, false
	}
}

func (d *SkillDirectory) ResolveAll(ctx context.Context) (map[string]string, error) {
	if d.cache != nil {
		var cached map[string]string
		found, err := d.cache.GetJSON(ctx, directoryCacheKey, &cached)
		if err == nil && found && cached != nil {
			return cached, nil
		}
	}

	items, err := d.repo.GetAllSkills(ctx)
	if err != nil {
		d.logger.Error(ctx, "list skill directory failed", "error", err)
		return nil, ErrInternal
	}

	out := make(map[string]string, len(items))
	for _, it := range items {
		out[it.ID] = skill.DisplayName(it.Name)
	}

	if d.cache != nil {
		if err := d.cache.SetJSON(ctx, directoryCacheKey, out, 0); err != nil {
			d.logger.Debug(ctx, "cache skill directory failed", "error", err)
		}
	}
	return out, nil
}

// Invalidate drops the shared directory snapshot so the next ResolveAll
// rereads the store. Call it after writing skills.
func (d *SkillDirectory) Invalidate(ctx context.Context) error {
	if d.cache == nil {
		return nil
	}
	if err := d.cache.Delete(ctx, directoryCacheKey); err != nil {
		d.logger.Warn(ctx, "invalidate skill directory failed", "error", err)
		return err
	}
	return nil
}

// ResolveNames resolves ids in at most one store round trip. Names already
// in session are reused and newly resolved ones are added to it. A nil
// session disables caching.
func (d *SkillDirectory) ResolveNames(ctx context.Context, ids []string, session *NameCache) map[string]string {
	out := make(map[string]string, len(ids))
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, done := out[id]; done {
			continue
		}
		if name, ok := session.Get(id); ok {
			out[id] = name
			continue
		}
		out[id] = skill.UnnamedName
		missing = append(missing, id)
	}

	switch len(missing) {
	case 0:
		return out
	case 1:
		name, ok := d.lookup(ctx, missing[0])
		out[missing[0]] = name
		if ok && ctx.Err() == nil {
			session.Set(missing[0], name)
		}
		return out
	}

	all, err := d.ResolveAll(ctx)
	if err != nil {
		return out
	}
	for _, id := range missing {
		name, ok := all[id]
		if !ok {
			name = skill.UnnamedName
		}
		out[id] = name
		session.Set(id, name)
	}
	return out
}

// Search lists the first InitialSkillsLimit skills for a blank prefix and
// otherwise runs a prefix-range query over the normalized search field.
func (d *SkillDirectory) Search(ctx context.Context, prefix string) ([]skill.Skill, error) {
	normalized := skill.NormalizeSearch(prefix)

	var (
		items []skill.Skill
		err   error
	)
	if normalized == "" {
		items, err = d.repo.ListFirst(ctx, InitialSkillsLimit)
	} else {
		items, err = d.repo.SearchByPrefix(ctx, normalized)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		d.logger.Error(ctx, "search skills failed", "prefix", normalized, "error", err)
		return nil, ErrInternal
	}

	for i := range items {
		items[i].Name = skill.DisplayName(items[i].Name)
	}
	return items, nil
}
