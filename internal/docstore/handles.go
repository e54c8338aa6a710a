package docstore

import "errors"

// Handles carries the two store projects explicitly: one holding users,
// one holding the skill directory. They may point at the same Store.
type Handles struct {
	Users  Store
	Skills Store
}

func (h Handles) Close() error {
	var errs []error
	if h.Users != nil {
		errs = append(errs, h.Users.Close())
	}
	if h.Skills != nil && h.Skills != h.Users {
		errs = append(errs, h.Skills.Close())
	}
	return errors.Join(errs...)
}
