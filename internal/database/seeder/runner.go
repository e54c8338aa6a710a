package seeder

import (
	"context"
	"fmt"

	"skill-match/internal/docstore"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, stores docstore.Handles) error {
	if stores.Skills == nil || stores.Users == nil {
		return fmt.Errorf("nil store")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, stores); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
