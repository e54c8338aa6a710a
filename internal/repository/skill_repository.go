package repository

import (
	"context"
	"errors"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/skill"
)

const (
	SkillsCollection = "skills"

	fieldName       = "name"
	fieldNameSearch = "nameSearch"
)

type SkillRepository interface {
	FindByID(ctx context.Context, id string) (skill.Skill, error)
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	ListFirst(ctx context.Context, n int) ([]skill.Skill, error)
	SearchByPrefix(ctx context.Context, normalizedPrefix string) ([]skill.Skill, error)
	UpsertSkill(ctx context.Context, s skill.Skill) error
}

type DocstoreSkillRepository struct {
	store docstore.Store
}

func NewDocstoreSkillRepository(store docstore.Store) *DocstoreSkillRepository {
	return &DocstoreSkillRepository{store: store}
}

var _ SkillRepository = (*DocstoreSkillRepository)(nil)

func (r *DocstoreSkillRepository) FindByID(ctx context.Context, id string) (skill.Skill, error) {
	doc, err := r.store.Get(ctx, SkillsCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return skillFromDoc(doc), nil
}

func (r *DocstoreSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	return r.ListFirst(ctx, 0)
}

func (r *DocstoreSkillRepository) ListFirst(ctx context.Context, n int) ([]skill.Skill, error) {
	docs, err := r.store.List(ctx, SkillsCollection, n)
	if err != nil {
		return nil, err
	}
	return skillsFromDocs(docs), nil
}

func (r *DocstoreSkillRepository) SearchByPrefix(ctx context.Context, normalizedPrefix string) ([]skill.Skill, error) {
	lo, hi := skill.PrefixRange(normalizedPrefix)
	docs, err := r.store.Find(ctx, SkillsCollection, docstore.Query{Filters: []docstore.Filter{
		docstore.Where(fieldNameSearch, docstore.OpGreaterOrEqual, lo),
		docstore.Where(fieldNameSearch, docstore.OpLessThan, hi),
	}})
	if err != nil {
		return nil, err
	}
	return skillsFromDocs(docs), nil
}

func (r *DocstoreSkillRepository) UpsertSkill(ctx context.Context, s skill.Skill) error {
	return r.store.Put(ctx, SkillsCollection, s.ID, docstore.Fields{
		fieldName:       s.Name,
		fieldNameSearch: s.NameSearch,
	})
}

func skillFromDoc(doc docstore.Document) skill.Skill {
	return skill.Skill{
		ID:         doc.ID,
		Name:       doc.String(fieldName),
		NameSearch: doc.String(fieldNameSearch),
	}
}

func skillsFromDocs(docs []docstore.Document) []skill.Skill {
	out := make([]skill.Skill, 0, len(docs))
	for _, d := range docs {
		out = append(out, skillFromDoc(d))
	}
	return out
}
