package usecase

import (
	"context"

	"skill-match/internal/domain/user"
	"skill-match/internal/logging"
)

type RegisterUserInput struct {
	Name   string
	Skills []string
}

type UserRegistrationUsecase interface {
	Register(ctx context.Context, in RegisterUserInput) (user.User, error)
}

// RegistrationNotifier is told about every user stored successfully.
type RegistrationNotifier interface {
	UserRegistered(ctx context.Context, u user.User)
}

type UserRegistration struct {
	users    user.Repository
	notifier RegistrationNotifier
	logger   logging.Logger
}

func NewUserRegistrationUsecase(users user.Repository, notifier RegistrationNotifier, logger logging.Logger) *UserRegistration {
	return &UserRegistration{users: users, notifier: notifier, logger: logging.OrNop(logger)}
}

var _ UserRegistrationUsecase = (*UserRegistration)(nil)

// Register stores a user with trimmed, sorted skills and the derived skill
// set key. The name is not validated. No duplicate check is made on the
// skill set key.
func (u *UserRegistration) Register(ctx context.Context, in RegisterUserInput) (user.User, error) {
	usr := user.New(in.Name, in.Skills)

	id, err := u.users.Create(ctx, usr)
	if err != nil {
		if ctx.Err() != nil {
			return user.User{}, ctx.Err()
		}
		u.logger.Error(ctx, "add user failed", "error", err)
		return user.User{}, ErrInternal
	}
	usr.ID = id

	u.logger.Info(ctx, "user added", "user_id", id, "skill_set_key", usr.SkillSetKey)
	if u.notifier != nil {
		u.notifier.UserRegistered(ctx, usr)
	}
	return usr, nil
}
