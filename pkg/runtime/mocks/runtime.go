package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/routepg/routepg/pkg/runtime"
)

// MockRuntime is a mock implementation of runtime.Runtime
type MockRuntime struct {
	mock.Mock
}

func (m *MockRuntime) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Network management

func (m *MockRuntime) CreateNetwork(ctx context.Context, name string, labels map[string]string) error {
	args := m.Called(ctx, name, labels)
	return args.Error(0)
}

func (m *MockRuntime) ListNetworks(ctx context.Context) ([]*runtime.NetworkInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runtime.NetworkInfo), args.Error(1)
}

// Container lifecycle

func (m *MockRuntime) FindContainer(ctx context.Context, name string) (*runtime.Container, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runtime.Container), args.Error(1)
}

func (m *MockRuntime) CreateContainer(ctx context.Context, config *runtime.ContainerConfig) (*runtime.Container, error) {
	args := m.Called(ctx, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runtime.Container), args.Error(1)
}

func (m *MockRuntime) StartContainer(ctx context.Context, containerID string) error {
	args := m.Called(ctx, containerID)
	return args.Error(0)
}

func (m *MockRuntime) ConnectNetwork(ctx context.Context, containerID, networkName string) error {
	args := m.Called(ctx, containerID, networkName)
	return args.Error(0)
}

// Image operations

func (m *MockRuntime) ImageExists(ctx context.Context, imageRef string) (bool, error) {
	args := m.Called(ctx, imageRef)
	return args.Bool(0), args.Error(1)
}

func (m *MockRuntime) PullImage(ctx context.Context, imageRef string) error {
	args := m.Called(ctx, imageRef)
	return args.Error(0)
}

// In-container operations

func (m *MockRuntime) ExecContainer(ctx context.Context, containerID string, cmd []string, env []string) (*runtime.ExecResult, error) {
	args := m.Called(ctx, containerID, cmd, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runtime.ExecResult), args.Error(1)
}

func (m *MockRuntime) CopyToContainer(ctx context.Context, containerID, srcPath, destDir string) error {
	args := m.Called(ctx, containerID, srcPath, destDir)
	return args.Error(0)
}

// One-shot run-and-remove

func (m *MockRuntime) RunOneShot(ctx context.Context, config *runtime.RunConfig) (*runtime.ExecResult, error) {
	args := m.Called(ctx, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runtime.ExecResult), args.Error(1)
}
