package provision

import (
	"context"

	"github.com/rs/zerolog/log"
)

// waitReady polls pg_isready inside the container until it reports the
// database accepting connections, with a fixed number of attempts and a
// fixed delay between them. No backoff: interval and bound are constants
// from configuration.
func (p *Provisioner) waitReady(ctx context.Context) error {
	name := p.cfg.Database.Container
	attempts := p.cfg.Readiness.Attempts
	interval := p.cfg.Readiness.Interval

	probe := []string{"pg_isready", "-U", p.cfg.Database.User, "-d", p.cfg.Database.Name}

	for attempt := 1; attempt <= attempts; attempt++ {
		res, err := p.rt.ExecContainer(ctx, name, probe, nil)
		if err == nil && res.ExitCode == 0 {
			log.Info().Str("container", name).Int("attempt", attempt).Msg("Database ready")
			return nil
		}

		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Msg("Readiness probe errored")
		} else {
			log.Debug().Int("attempt", attempt).Int("exit_code", res.ExitCode).Msg("Readiness probe not ready")
		}

		if attempt < attempts {
			p.sleep(interval)
		}
	}

	return &TimeoutError{Attempts: attempts, Interval: interval}
}
