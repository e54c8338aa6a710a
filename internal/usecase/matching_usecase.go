package usecase

import (
	"context"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"
	"skill-match/internal/logging"
)

type MatchInput struct {
	SkillIDs []string
	// Policy overrides the usecase default when set.
	Policy matching.Policy
	// Names is the caller's session cache; nil disables session caching.
	Names *NameCache
}

type MatchedUser struct {
	ID         string
	Name       string
	Skills     []string
	SkillNames []string
}

type MatchResult struct {
	Policy   matching.Policy
	Required []string
	Users    []MatchedUser
	// Queries counts the user queries issued against the store.
	Queries int
}

type MatchingUsecase interface {
	Match(ctx context.Context, in MatchInput) (MatchResult, error)
}

type NameResolver interface {
	ResolveNames(ctx context.Context, ids []string, session *NameCache) map[string]string
}

type Matching struct {
	users     user.Repository
	directory NameResolver
	policy    matching.Policy
	logger    logging.Logger
}

func NewMatchingUsecase(users user.Repository, directory NameResolver, policy matching.Policy, logger logging.Logger) *Matching {
	if policy == "" {
		policy = matching.DefaultPolicy
	}
	return &Matching{users: users, directory: directory, policy: policy, logger: logging.OrNop(logger)}
}

var _ MatchingUsecase = (*Matching)(nil)

// Match returns the users holding every required skill. An empty selection
// fails with ErrNoSkillsSelected before any query; an empty result fails
// with ErrNoUsersFound; store failures return ErrInternal with no partial
// result. A cancelled ctx returns ctx.Err().
func (u *Matching) Match(ctx context.Context, in MatchInput) (MatchResult, error) {
	required := matching.NormalizeRequired(in.SkillIDs)
	if len(required) == 0 {
		return MatchResult{}, ErrNoSkillsSelected
	}

	policy := in.Policy
	if policy == "" {
		policy = u.policy
	}

	var (
		found   []matching.Candidate
		queries int
		err     error
	)
	switch policy {
	case matching.PolicyIntersectionCount:
		found, queries, err = u.byIntersectionCount(ctx, required)
	case matching.PolicyUnionThenFilter:
		found, queries, err = u.byUnionThenFilter(ctx, required)
	default:
		return MatchResult{}, ErrInvalidInput
	}
	if err != nil {
		if ctx.Err() != nil {
			return MatchResult{}, ctx.Err()
		}
		u.logger.Error(ctx, "query users failed", "policy", string(policy), "required", required, "error", err)
		return MatchResult{}, ErrInternal
	}

	res := MatchResult{Policy: policy, Required: required, Queries: queries}
	if len(found) == 0 {
		return res, ErrNoUsersFound
	}

	ids := make([]string, 0)
	for _, c := range found {
		ids = append(ids, c.Skills...)
	}
	names := u.directory.ResolveNames(ctx, ids, in.Names)
	if err := ctx.Err(); err != nil {
		return MatchResult{}, err
	}

	res.Users = make([]MatchedUser, 0, len(found))
	for _, c := range found {
		skillNames := make([]string, 0, len(c.Skills))
		for _, id := range c.Skills {
			name, ok := names[id]
			if !ok {
				name = skill.UnnamedName
			}
			skillNames = append(skillNames, name)
		}
		res.Users = append(res.Users, MatchedUser{ID: c.ID, Name: c.Name, Skills: c.Skills, SkillNames: skillNames})
	}

	u.logger.Debug(ctx, "users matched", "policy", string(policy), "required", len(required), "matched", len(res.Users), "queries", queries)
	return res, nil
}

func (u *Matching) byIntersectionCount(ctx context.Context, required []string) ([]matching.Candidate, int, error) {
	counter := matching.NewIntersectionCounter()
	queries := 0
	for _, id := range required {
		if err := ctx.Err(); err != nil {
			return nil, queries, err
		}
		users, err := u.users.FindBySkill(ctx, id)
		queries++
		if err != nil {
			return nil, queries, err
		}
		counter.Add(id, toCandidates(users))
	}
	return counter.Result(len(required)), queries, nil
}

func (u *Matching) byUnionThenFilter(ctx context.Context, required []string) ([]matching.Candidate, int, error) {
	all := make([]matching.Candidate, 0)
	queries := 0
	for _, chunk := range matching.Chunk(required, docstore.MaxAnyValues) {
		if err := ctx.Err(); err != nil {
			return nil, queries, err
		}
		users, err := u.users.FindByAnySkill(ctx, chunk)
		queries++
		if err != nil {
			return nil, queries, err
		}
		all = append(all, toCandidates(users)...)
	}
	return matching.FilterSuperset(all, required), queries, nil
}

func toCandidates(users []user.User) []matching.Candidate {
	out := make([]matching.Candidate, 0, len(users))
	for _, it := range users {
		out = append(out, matching.Candidate{ID: it.ID, Name: it.Name, Skills: it.Skills})
	}
	return out
}
