package repository

import (
	"context"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/user"
)

const (
	UsersCollection = "users"

	fieldSkills      = "skills"
	fieldSkillSetKey = "skillSetKey"
)

type DocstoreUserRepository struct {
	store docstore.Store
}

func NewDocstoreUserRepository(store docstore.Store) *DocstoreUserRepository {
	return &DocstoreUserRepository{store: store}
}

var _ user.Repository = (*DocstoreUserRepository)(nil)

func (r *DocstoreUserRepository) Create(ctx context.Context, u user.User) (string, error) {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return r.store.Create(ctx, UsersCollection, docstore.Fields{
		fieldName:        u.Name,
		fieldSkills:      skills,
		fieldSkillSetKey: u.SkillSetKey,
	})
}

func (r *DocstoreUserRepository) FindBySkill(ctx context.Context, skillID string) ([]user.User, error) {
	docs, err := r.store.Find(ctx, UsersCollection, docstore.Query{Filters: []docstore.Filter{
		docstore.Where(fieldSkills, docstore.OpArrayContains, skillID),
	}})
	if err != nil {
		return nil, err
	}
	return usersFromDocs(docs), nil
}

// FindByAnySkill runs a single array-contains-any query. Callers keep
// skillIDs within docstore.MaxAnyValues.
func (r *DocstoreUserRepository) FindByAnySkill(ctx context.Context, skillIDs []string) ([]user.User, error) {
	docs, err := r.store.Find(ctx, UsersCollection, docstore.Query{Filters: []docstore.Filter{
		docstore.Where(fieldSkills, docstore.OpArrayContainsAny, skillIDs),
	}})
	if err != nil {
		return nil, err
	}
	return usersFromDocs(docs), nil
}

func usersFromDocs(docs []docstore.Document) []user.User {
	out := make([]user.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, user.User{
			ID:          d.ID,
			Name:        d.String(fieldName),
			Skills:      d.Strings(fieldSkills),
			SkillSetKey: d.String(fieldSkillSetKey),
		})
	}
	return out
}
