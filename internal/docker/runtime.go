// Package docker implements the runtime capability interface using the
// Docker Engine API.
package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
	"github.com/rs/zerolog/log"

	"github.com/routepg/routepg/pkg/runtime"
)

// Runtime implements the runtime.Runtime interface using the Docker API.
type Runtime struct {
	client *client.Client
}

// Ensure Runtime implements the interface
var _ runtime.Runtime = (*Runtime)(nil)

// NewRuntime creates a new Docker runtime instance.
func NewRuntime() (*Runtime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Runtime{
		client: cli,
	}, nil
}

// NewRuntimeWithClient creates a Docker runtime with a custom client (for testing).
func NewRuntimeWithClient(cli *client.Client) *Runtime {
	return &Runtime{
		client: cli,
	}
}

// Ping checks if the Docker daemon is responsive.
func (r *Runtime) Ping(ctx context.Context) error {
	_, err := r.client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("Docker ping failed: %w", err)
	}
	return nil
}

// CreateNetwork creates a bridge network with the given labels.
func (r *Runtime) CreateNetwork(ctx context.Context, name string, labels map[string]string) error {
	_, err := r.client.NetworkCreate(ctx, name, network.CreateOptions{
		Driver: "bridge",
		Labels: labels,
	})
	if err != nil {
		return fmt.Errorf("failed to create network %s: %w", name, err)
	}

	log.Info().Str("network", name).Msg("Network created")
	return nil
}

// ListNetworks lists all Docker networks.
func (r *Runtime) ListNetworks(ctx context.Context) ([]*runtime.NetworkInfo, error) {
	networks, err := r.client.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	var result []*runtime.NetworkInfo
	for _, net := range networks {
		result = append(result, &runtime.NetworkInfo{
			ID:     net.ID,
			Name:   net.Name,
			Driver: net.Driver,
			Labels: net.Labels,
		})
	}

	return result, nil
}

// FindContainer inspects a container by name. Returns nil without error
// when no container with that name exists.
func (r *Runtime) FindContainer(ctx context.Context, name string) (*runtime.Container, error) {
	resp, err := r.client.ContainerInspect(ctx, name)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to inspect container %s: %w", name, err)
	}

	var networks []string
	if resp.NetworkSettings != nil {
		for netName := range resp.NetworkSettings.Networks {
			networks = append(networks, netName)
		}
	}

	return &runtime.Container{
		ID:       resp.ID,
		Image:    resp.Config.Image,
		Name:     strings.TrimPrefix(resp.Name, "/"),
		Running:  resp.State.Running,
		Networks: networks,
		Labels:   resp.Config.Labels,
	}, nil
}

// CreateContainer creates a new container.
func (r *Runtime) CreateContainer(ctx context.Context, config *runtime.ContainerConfig) (*runtime.Container, error) {
	// Convert ports to Docker format
	exposedPorts := make(nat.PortSet)
	portBindings := make(nat.PortMap)

	for hostPort, containerPort := range config.Ports {
		port := nat.Port(fmt.Sprintf("%d/tcp", containerPort))
		exposedPorts[port] = struct{}{}
		portBindings[port] = []nat.PortBinding{
			{
				HostIP:   "0.0.0.0",
				HostPort: fmt.Sprintf("%d", hostPort),
			},
		}
	}

	var binds []string
	for hostPath, containerPath := range config.Binds {
		binds = append(binds, fmt.Sprintf("%s:%s", hostPath, containerPath))
	}

	containerConfig := &container.Config{
		Image:        config.Image,
		Env:          config.Env,
		ExposedPorts: exposedPorts,
		Labels:       config.Labels,
		Hostname:     config.Hostname,
	}

	hostConfig := &container.HostConfig{
		PortBindings: portBindings,
		Binds:        binds,
	}

	// Attach to the target network at creation time
	var networkConfig *network.NetworkingConfig
	if config.Network != "" {
		networkConfig = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{
				config.Network: {
					Aliases: []string{config.Name},
				},
			},
		}
	}

	resp, err := r.client.ContainerCreate(ctx, containerConfig, hostConfig, networkConfig, nil, config.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	log.Info().Str("id", resp.ID).Str("name", config.Name).Str("image", config.Image).Msg("Container created")

	return r.FindContainer(ctx, resp.ID)
}

// StartContainer starts a container.
func (r *Runtime) StartContainer(ctx context.Context, containerID string) error {
	err := r.client.ContainerStart(ctx, containerID, container.StartOptions{})
	if err != nil {
		return fmt.Errorf("failed to start container %s: %w", containerID, err)
	}

	log.Info().Str("id", containerID).Msg("Container started")
	return nil
}

// ConnectNetwork connects a container to a network.
func (r *Runtime) ConnectNetwork(ctx context.Context, containerID, networkName string) error {
	err := r.client.NetworkConnect(ctx, networkName, containerID, &network.EndpointSettings{})
	if err != nil {
		return fmt.Errorf("failed to connect container %s to network %s: %w", containerID, networkName, err)
	}

	log.Info().Str("id", containerID).Str("network", networkName).Msg("Container connected to network")
	return nil
}

// ImageExists checks whether an image is present locally.
func (r *Runtime) ImageExists(ctx context.Context, imageRef string) (bool, error) {
	_, _, err := r.client.ImageInspectWithRaw(ctx, imageRef)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect image %s: %w", imageRef, err)
	}
	return true, nil
}

// PullImage pulls an image.
func (r *Runtime) PullImage(ctx context.Context, imageRef string) error {
	log.Info().Str("image", imageRef).Msg("Pulling image")

	reader, err := r.client.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageRef, err)
	}
	defer reader.Close()

	// Read the response to completion (this is required for the pull to complete)
	_, err = io.Copy(io.Discard, reader)
	if err != nil {
		return fmt.Errorf("failed to read pull response for image %s: %w", imageRef, err)
	}

	log.Info().Str("image", imageRef).Msg("Image pulled successfully")
	return nil
}

// ExecContainer runs a command inside a running container and returns its
// combined output and exit status.
func (r *Runtime) ExecContainer(ctx context.Context, containerID string, cmd []string, env []string) (*runtime.ExecResult, error) {
	execResp, err := r.client.ContainerExecCreate(ctx, containerID, container.ExecOptions{
		Cmd:          cmd,
		Env:          env,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exec in container %s: %w", containerID, err)
	}

	attach, err := r.client.ContainerExecAttach(ctx, execResp.ID, container.ExecAttachOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to attach exec in container %s: %w", containerID, err)
	}
	defer attach.Close()

	// Stdout and stderr arrive multiplexed on one stream; demux both into
	// the same buffer to keep the combined output in arrival order.
	var output bytes.Buffer
	if _, err := stdcopy.StdCopy(&output, &output, attach.Reader); err != nil {
		return nil, fmt.Errorf("failed to read exec output from container %s: %w", containerID, err)
	}

	inspect, err := r.client.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect exec in container %s: %w", containerID, err)
	}

	return &runtime.ExecResult{
		ExitCode: inspect.ExitCode,
		Output:   output.Bytes(),
	}, nil
}

// CopyToContainer copies a single host file into a directory inside the
// container.
func (r *Runtime) CopyToContainer(ctx context.Context, containerID, srcPath, destDir string) error {
	tar, err := archive.TarWithOptions(filepath.Dir(srcPath), &archive.TarOptions{
		IncludeFiles: []string{filepath.Base(srcPath)},
	})
	if err != nil {
		return fmt.Errorf("failed to tar %s: %w", srcPath, err)
	}
	defer tar.Close()

	if err := r.client.CopyToContainer(ctx, containerID, destDir, tar, container.CopyToContainerOptions{}); err != nil {
		return fmt.Errorf("failed to copy %s into container %s: %w", srcPath, containerID, err)
	}

	log.Info().Str("id", containerID).Str("src", srcPath).Str("dest", destDir).Msg("File copied into container")
	return nil
}

// RunOneShot creates a container, waits for it to exit, collects its
// combined output and removes it.
func (r *Runtime) RunOneShot(ctx context.Context, config *runtime.RunConfig) (*runtime.ExecResult, error) {
	var binds []string
	for hostPath, containerPath := range config.Binds {
		binds = append(binds, fmt.Sprintf("%s:%s", hostPath, containerPath))
	}

	containerConfig := &container.Config{
		Image: config.Image,
		Cmd:   config.Cmd,
		Env:   config.Env,
	}

	hostConfig := &container.HostConfig{
		Binds:       binds,
		NetworkMode: container.NetworkMode(config.Network),
	}

	resp, err := r.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create one-shot container: %w", err)
	}
	defer func() {
		removeErr := r.client.ContainerRemove(context.WithoutCancel(ctx), resp.ID, container.RemoveOptions{Force: true})
		if removeErr != nil {
			log.Warn().Err(removeErr).Str("id", resp.ID).Msg("Failed to remove one-shot container")
		}
	}()

	if err := r.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("failed to start one-shot container: %w", err)
	}

	log.Info().Str("id", resp.ID).Str("image", config.Image).Msg("One-shot container started")

	statusCh, errCh := r.client.ContainerWait(ctx, resp.ID, container.WaitConditionNotRunning)
	var exitCode int
	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("failed to wait for one-shot container: %w", err)
		}
	case status := <-statusCh:
		exitCode = int(status.StatusCode)
	}

	logs, err := r.client.ContainerLogs(ctx, resp.ID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get one-shot container logs: %w", err)
	}
	defer logs.Close()

	var output bytes.Buffer
	if _, err := stdcopy.StdCopy(&output, &output, logs); err != nil {
		return nil, fmt.Errorf("failed to read one-shot container logs: %w", err)
	}

	return &runtime.ExecResult{
		ExitCode: exitCode,
		Output:   output.Bytes(),
	}, nil
}
