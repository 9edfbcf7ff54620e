package provision

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/routepg/routepg/pkg/runtime"
)

const postgresPort = 5432

// reconcileContainer applies the minimal action that moves the database
// container from its observed state to running and attached to the
// target network. An existing container is never destroyed or recreated;
// drift in image or environment is not corrected.
func (p *Provisioner) reconcileContainer(ctx context.Context) error {
	name := p.cfg.Database.Container
	networkName := p.cfg.Network.Name

	snapshot, err := p.rt.FindContainer(ctx, name)
	if err != nil {
		return &ReconciliationError{Op: "inspect container " + name, Err: err}
	}

	state := DetectState(snapshot, networkName)
	log.Info().Str("container", name).Stringer("state", state).Msg("Container state detected")

	switch state {
	case Absent:
		return p.createContainer(ctx)

	case StoppedUnattached:
		if err := p.rt.StartContainer(ctx, snapshot.ID); err != nil {
			return &ReconciliationError{Op: "start container " + name, Err: err}
		}
		if err := p.rt.ConnectNetwork(ctx, snapshot.ID, networkName); err != nil {
			return &ReconciliationError{Op: "connect container " + name + " to network " + networkName, Err: err}
		}

	case StoppedAttached:
		if err := p.rt.StartContainer(ctx, snapshot.ID); err != nil {
			return &ReconciliationError{Op: "start container " + name, Err: err}
		}

	case RunningUnattached:
		if err := p.rt.ConnectNetwork(ctx, snapshot.ID, networkName); err != nil {
			return &ReconciliationError{Op: "connect container " + name + " to network " + networkName, Err: err}
		}

	case RunningAttached:
		log.Debug().Str("container", name).Msg("Container already running and attached")
	}

	return nil
}

func (p *Provisioner) createContainer(ctx context.Context) error {
	db := p.cfg.Database

	present, err := p.rt.ImageExists(ctx, db.Image)
	if err != nil {
		return &ReconciliationError{Op: "inspect image " + db.Image, Err: err}
	}
	if !present {
		if err := p.rt.PullImage(ctx, db.Image); err != nil {
			return &ReconciliationError{Op: "pull image " + db.Image, Err: err}
		}
	}

	created, err := p.rt.CreateContainer(ctx, &runtime.ContainerConfig{
		Image: db.Image,
		Name:  db.Container,
		Env: []string{
			"POSTGRES_DB=" + db.Name,
			"POSTGRES_USER=" + db.User,
			"POSTGRES_PASSWORD=" + db.Password,
		},
		Ports:    map[int]int{db.Port: postgresPort},
		Labels:   map[string]string{"routepg.managed": "true"},
		Network:  p.cfg.Network.Name,
		Hostname: db.Container,
	})
	if err != nil {
		return &ReconciliationError{Op: fmt.Sprintf("create container %s from %s", db.Container, db.Image), Err: err}
	}

	if err := p.rt.StartContainer(ctx, created.ID); err != nil {
		return &ReconciliationError{Op: "start container " + db.Container, Err: err}
	}

	return nil
}
