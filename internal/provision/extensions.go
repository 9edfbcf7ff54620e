package provision

import (
	"context"

	"github.com/rs/zerolog/log"
)

// extensions lists the required SQL extensions in install order. The
// roads-derivation script depends on all three: pgRouting functions over
// geometry columns with hstore-typed tags produced by the import.
var extensions = []string{"postgis", "hstore", "pgrouting"}

// installExtensions enables each required extension with an idempotent
// CREATE EXTENSION IF NOT EXISTS statement, stopping at the first
// failure. Previously enabled extensions are left in place.
func (p *Provisioner) installExtensions(ctx context.Context) error {
	name := p.cfg.Database.Container

	for _, ext := range extensions {
		cmd := []string{
			"psql",
			"-U", p.cfg.Database.User,
			"-d", p.cfg.Database.Name,
			"-v", "ON_ERROR_STOP=1",
			"-c", "CREATE EXTENSION IF NOT EXISTS " + ext + ";",
		}

		res, err := p.rt.ExecContainer(ctx, name, cmd, nil)
		if err != nil {
			return &ExtensionError{Extension: ext, Err: err}
		}
		if res.ExitCode != 0 {
			return &ExtensionError{Extension: ext, Diag: string(res.Output)}
		}

		log.Info().Str("extension", ext).Msg("Extension enabled")
	}

	return nil
}
