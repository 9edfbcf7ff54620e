package provision

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/routepg/routepg/internal/scripts"
)

const (
	roadsStagingDir = "/opt/routepg"
	roadsScriptName = "build_roads.sql"
)

// buildRoads stages the roads-derivation script inside the container and
// executes it against the database. The script itself is an opaque
// collaborator: it reads the imported OSM tables and materializes the
// routable roads table.
func (p *Provisioner) buildRoads(ctx context.Context) error {
	name := p.cfg.Database.Container

	// The staging directory may already exist from a previous run;
	// failing to create it is a warning, not a fatal error.
	if res, err := p.rt.ExecContainer(ctx, name, []string{"mkdir", "-p", roadsStagingDir}, nil); err != nil {
		log.Warn().Err(err).Str("dir", roadsStagingDir).Msg("Could not create staging directory in container")
	} else if res.ExitCode != 0 {
		log.Warn().Str("dir", roadsStagingDir).Str("output", string(res.Output)).Msg("Could not create staging directory in container")
	}

	scriptPath := filepath.Join(p.cfg.Import.Workdir, roadsScriptName)
	if err := afero.WriteFile(p.fs, scriptPath, scripts.RoadsSQL, 0644); err != nil {
		return &RoadsBuildError{Err: err}
	}

	if err := p.rt.CopyToContainer(ctx, name, scriptPath, roadsStagingDir); err != nil {
		return &RoadsBuildError{Err: err}
	}

	cmd := []string{
		"psql",
		"-U", p.cfg.Database.User,
		"-d", p.cfg.Database.Name,
		"-v", "ON_ERROR_STOP=1",
		"-f", roadsStagingDir + "/" + roadsScriptName,
	}

	res, err := p.rt.ExecContainer(ctx, name, cmd, nil)
	if err != nil {
		return &RoadsBuildError{Err: err}
	}
	if res.ExitCode != 0 {
		return &RoadsBuildError{Diag: string(res.Output)}
	}

	log.Info().Str("container", name).Msg("Roads table built")
	return nil
}
