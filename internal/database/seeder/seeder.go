// Package seeder loads administrative fixtures, such as the skill
// directory, into the document stores.
package seeder

import (
	"context"

	"skill-match/internal/docstore"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, stores docstore.Handles) error
}
