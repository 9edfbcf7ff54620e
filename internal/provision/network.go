package provision

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ensureNetwork creates the named network if no network with that name
// exists yet. Existence is decided by listing, not by catching an
// already-exists error, so a re-run performs no creation call at all.
func (p *Provisioner) ensureNetwork(ctx context.Context) error {
	name := p.cfg.Network.Name

	networks, err := p.rt.ListNetworks(ctx)
	if err != nil {
		return &ReconciliationError{Op: "list networks", Err: err}
	}

	for _, net := range networks {
		if net.Name == name {
			log.Debug().Str("network", name).Msg("Network already exists")
			return nil
		}
	}

	if err := p.rt.CreateNetwork(ctx, name, map[string]string{"routepg.managed": "true"}); err != nil {
		return &ReconciliationError{Op: "create network " + name, Err: err}
	}

	return nil
}
