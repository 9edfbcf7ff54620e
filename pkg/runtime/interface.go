package runtime

import (
	"context"
)

// Container is an observed snapshot of a container. It is re-derived from
// the runtime on every inspection and never cached across invocations.
type Container struct {
	ID       string
	Image    string
	Name     string
	Running  bool
	Networks []string
	Labels   map[string]string
}

// NetworkInfo represents a virtual network
type NetworkInfo struct {
	ID     string
	Name   string
	Driver string
	Labels map[string]string
}

// ContainerConfig holds configuration for creating a container
type ContainerConfig struct {
	Image    string
	Name     string
	Env      []string
	Ports    map[int]int       // map[hostPort]containerPort
	Binds    map[string]string // map[hostPath]containerPath
	Labels   map[string]string
	Network  string // network to join at creation time
	Hostname string // container hostname for DNS on the network
}

// RunConfig holds configuration for a one-shot container run. The
// container is removed once it exits; only its combined output and exit
// status survive.
type RunConfig struct {
	Image   string
	Cmd     []string
	Env     []string
	Binds   map[string]string // map[hostPath]containerPath
	Network string
}

// ExecResult holds the outcome of a command executed inside a container
// or of a one-shot run: the exit status plus combined stdout/stderr.
type ExecResult struct {
	ExitCode int
	Output   []byte
}

// Runtime defines the contract for container runtime implementations.
// The provisioning pipeline only ever talks to the runtime through this
// interface, so reconciliation logic is testable without a live daemon.
type Runtime interface {
	// Runtime information
	Ping(ctx context.Context) error

	// Network management
	CreateNetwork(ctx context.Context, name string, labels map[string]string) error
	ListNetworks(ctx context.Context) ([]*NetworkInfo, error)

	// Container lifecycle
	FindContainer(ctx context.Context, name string) (*Container, error)
	CreateContainer(ctx context.Context, config *ContainerConfig) (*Container, error)
	StartContainer(ctx context.Context, containerID string) error
	ConnectNetwork(ctx context.Context, containerID, networkName string) error

	// Image operations
	ImageExists(ctx context.Context, imageRef string) (bool, error)
	PullImage(ctx context.Context, imageRef string) error

	// In-container operations
	ExecContainer(ctx context.Context, containerID string, cmd []string, env []string) (*ExecResult, error)
	CopyToContainer(ctx context.Context, containerID, srcPath, destDir string) error

	// One-shot run-and-remove
	RunOneShot(ctx context.Context, config *RunConfig) (*ExecResult, error)
}
