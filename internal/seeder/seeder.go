package seeder

import (
	"context"
	"errors"

	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/rs/zerolog/log"
)

// SeedRepositories pre-creates registry rows for the configured
// "owner/name" entries. The collector resolves repositories by name before
// ingesting, so they must exist before the first run.
func SeedRepositories(ctx context.Context, repositories usecases.RepositoryUsecase, fullNames []string) error {
	for _, fullName := range fullNames {
		_, err := repositories.RegisterRepository(ctx, usecases.RegisterRepositoryInput{
			FullName: fullName,
			URL:      "https://github.com/" + fullName,
		})
		if err != nil {
			if errors.Is(err, errcodes.ErrDuplicateRecord) {
				continue
			}
			return err
		}
		log.Info().Str("repository", fullName).Msg("seeded repository")
	}
	return nil
}
