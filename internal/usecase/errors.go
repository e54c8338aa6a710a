package usecase

import "errors"

// Messages shown to the operator. They double as error texts so handlers
// and sessions can surface err.Error() directly.
const (
	MsgNoSkillsSelected = "Please select at least one skill."
	MsgNoUsersFound     = "No users found with the provided skills."
	MsgQueryFailed      = "Error querying users. Please try again later."
	MsgUserAdded        = "User added successfully!"
	MsgAddUserFailed    = "Error adding user. Please try again."
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
	ErrNoSkillsSelected = errors.New(MsgNoSkillsSelected)
	ErrNoUsersFound     = errors.New(MsgNoUsersFound)
)
