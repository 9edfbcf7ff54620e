package provision

import (
	"bytes"
	"time"

	"github.com/spf13/afero"

	"github.com/routepg/routepg/internal/config"
	"github.com/routepg/routepg/pkg/runtime"
)

// newTestProvisioner builds a Provisioner on an in-memory filesystem
// with sleeping disabled.
func newTestProvisioner(cfg *config.Config, rt runtime.Runtime) *Provisioner {
	return &Provisioner{
		cfg:   cfg,
		rt:    rt,
		fs:    afero.NewMemMapFs(),
		out:   &bytes.Buffer{},
		sleep: func(time.Duration) {},
	}
}
