package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const roadsTable = "routing_roads"

// verify reports the row count of the derived roads table and prints the
// connection parameters for downstream configuration. It never fails the
// pipeline: any problem is logged and swallowed.
func (p *Provisioner) verify(ctx context.Context) error {
	name := p.cfg.Database.Container

	cmd := []string{
		"psql",
		"-U", p.cfg.Database.User,
		"-d", p.cfg.Database.Name,
		"-tA",
		"-c", "SELECT count(*) FROM " + roadsTable + ";",
	}

	res, err := p.rt.ExecContainer(ctx, name, cmd, nil)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Could not verify roads table")
	case res.ExitCode != 0:
		log.Warn().Str("output", string(res.Output)).Msg("Could not verify roads table")
	default:
		count := strings.TrimSpace(string(res.Output))
		log.Info().Str("table", roadsTable).Str("rows", count).Msg("Roads table verified")
	}

	p.printSummary()
	return nil
}

// printSummary writes the connection parameters to stdout. This is
// documentation for the operator, not a machine-readable contract.
func (p *Provisioner) printSummary() {
	db := p.cfg.Database

	fmt.Fprintln(p.out, "Database provisioned. Connection parameters:")
	fmt.Fprintf(p.out, "  host:     localhost\n")
	fmt.Fprintf(p.out, "  port:     %d\n", db.Port)
	fmt.Fprintf(p.out, "  user:     %s\n", db.User)
	fmt.Fprintf(p.out, "  password: %s\n", db.Password)
	fmt.Fprintf(p.out, "  database: %s\n", db.Name)
}
