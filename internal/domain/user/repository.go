package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (string, error)
	FindBySkill(ctx context.Context, skillID string) ([]User, error)
	FindByAnySkill(ctx context.Context, skillIDs []string) ([]User, error)
}
