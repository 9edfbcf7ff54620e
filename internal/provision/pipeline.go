// Package provision implements the idempotent provisioning pipeline that
// brings a PostGIS routing database into its desired state: a named
// network, a running database container attached to it, the required SQL
// extensions, an imported OSM extract and a derived routable roads table.
package provision

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/routepg/routepg/internal/config"
	"github.com/routepg/routepg/pkg/runtime"
)

// Step is a single idempotent reconciliation step. Steps run strictly in
// order; the first fatal error aborts the pipeline with no rollback,
// since every prior step is safe to leave applied.
type Step struct {
	Name string
	Skip func() bool
	Run  func(ctx context.Context) error
}

// Provisioner drives the provisioning pipeline against a container
// runtime. It holds no mutable state of its own; everything it observes
// is re-derived from the runtime on each invocation.
type Provisioner struct {
	cfg   *config.Config
	rt    runtime.Runtime
	fs    afero.Fs
	out   io.Writer
	sleep func(time.Duration)
}

// New creates a Provisioner backed by the host filesystem.
func New(cfg *config.Config, rt runtime.Runtime) *Provisioner {
	return &Provisioner{
		cfg:   cfg,
		rt:    rt,
		fs:    afero.NewOsFs(),
		out:   os.Stdout,
		sleep: time.Sleep,
	}
}

// Steps returns the ordered pipeline. The two skip predicates are the
// only branching the pipeline has.
func (p *Provisioner) Steps() []Step {
	never := func() bool { return false }

	return []Step{
		{Name: "ensure-network", Skip: never, Run: p.ensureNetwork},
		{Name: "reconcile-container", Skip: never, Run: p.reconcileContainer},
		{Name: "wait-ready", Skip: never, Run: p.waitReady},
		{Name: "install-extensions", Skip: never, Run: p.installExtensions},
		{Name: "import-data", Skip: func() bool { return p.cfg.Import.Skip }, Run: p.importData},
		{Name: "build-roads", Skip: func() bool { return p.cfg.Roads.Skip }, Run: p.buildRoads},
		{Name: "verify", Skip: never, Run: p.verify},
	}
}

// Run executes the pipeline, short-circuiting on the first fatal error.
func (p *Provisioner) Run(ctx context.Context) error {
	if err := p.rt.Ping(ctx); err != nil {
		return &PreconditionError{Reason: "container runtime not reachable", Err: err}
	}

	for _, step := range p.Steps() {
		if step.Skip() {
			log.Info().Str("step", step.Name).Msg("Step skipped")
			continue
		}

		log.Info().Str("step", step.Name).Msg("Step started")
		if err := step.Run(ctx); err != nil {
			log.Error().Str("step", step.Name).Err(err).Msg("Step failed")
			return err
		}
		log.Info().Str("step", step.Name).Msg("Step completed")
	}

	return nil
}
