package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/routepg/routepg/pkg/runtime"
)

// mount path of the shared workdir inside the import-tool container
const importMount = "/data"

// importData resolves and stages the OSM extract, then runs the import
// tool as a one-shot container on the shared network. The tool only sees
// paths inside the shared mount, so a source outside the workdir is
// copied in first.
func (p *Provisioner) importData(ctx context.Context) error {
	imp := p.cfg.Import

	src := imp.Source
	if !filepath.IsAbs(src) {
		src = filepath.Join(imp.Workdir, src)
	}

	exists, err := afero.Exists(p.fs, src)
	if err != nil {
		return &PreconditionError{Reason: "cannot check source file " + src, Err: err}
	}
	if !exists {
		return &PreconditionError{Reason: "source file " + src + " does not exist"}
	}

	staged, err := p.stageSource(src)
	if err != nil {
		return &PreconditionError{Reason: "cannot stage source file into workdir", Err: err}
	}

	workdir, err := filepath.Abs(imp.Workdir)
	if err != nil {
		return &PreconditionError{Reason: "cannot resolve workdir " + imp.Workdir, Err: err}
	}

	res, err := p.rt.RunOneShot(ctx, &runtime.RunConfig{
		Image:   imp.Image,
		Cmd:     p.importArgs(filepath.Base(staged)),
		Env:     []string{"PGPASSWORD=" + p.cfg.Database.Password},
		Binds:   map[string]string{workdir: importMount},
		Network: p.cfg.Network.Name,
	})
	if err != nil {
		return &ImportError{Err: err}
	}
	if res.ExitCode != 0 {
		return &ImportError{Diag: string(res.Output)}
	}

	log.Info().Str("source", staged).Msg("OSM extract imported")
	return nil
}

// stageSource copies the resolved source file into the workdir when it
// lives elsewhere and returns the path the import will read. Staging is
// a plain side effect, not a reconciliation state.
func (p *Provisioner) stageSource(src string) (string, error) {
	workdir := filepath.Clean(p.cfg.Import.Workdir)
	if filepath.Dir(src) == workdir {
		return src, nil
	}

	dest := filepath.Join(workdir, filepath.Base(src))
	log.Info().Str("src", src).Str("dest", dest).Msg("Staging source file into workdir")

	data, err := afero.ReadFile(p.fs, src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	if err := afero.WriteFile(p.fs, dest, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}

	return dest, nil
}

// importArgs builds the osm2pgsql argument list: create mode, slim
// (incremental-safe) tables, hstore tag storage and geographic
// coordinates, plus the optional bounding box.
func (p *Provisioner) importArgs(filename string) []string {
	db := p.cfg.Database

	args := []string{
		"--create",
		"--slim",
		"--hstore",
		"--latlong",
		"--database", db.Name,
		"--username", db.User,
		"--host", db.Container,
		"--port", strconv.Itoa(postgresPort),
	}

	if bbox := p.cfg.Import.BBox; len(bbox) == 4 {
		parts := make([]string, len(bbox))
		for i, v := range bbox {
			parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		args = append(args, "--bbox", strings.Join(parts, ","))
	}

	return append(args, filepath.Join(importMount, filename))
}
