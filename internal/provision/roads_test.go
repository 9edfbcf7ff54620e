package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/routepg/routepg/internal/testutils"
	"github.com/routepg/routepg/pkg/runtime"
	"github.com/routepg/routepg/pkg/runtime/mocks"
)

func TestBuildRoads_StagesAndExecutesScript(t *testing.T) {
	ctx := testutils.TestContext(t)
	cfg := testutils.TestConfig()

	rt := new(mocks.MockRuntime)
	rt.On("ExecContainer", mock.Anything, "routepg-test-db", []string{"mkdir", "-p", roadsStagingDir}, mock.Anything).
		Return(&runtime.ExecResult{ExitCode: 0}, nil)
	rt.On("CopyToContainer", mock.Anything, "routepg-test-db", "/work/build_roads.sql", roadsStagingDir).
		Return(nil)
	rt.On("ExecContainer", mock.Anything, "routepg-test-db", mock.MatchedBy(func(cmd []string) bool {
		return len(cmd) > 0 && cmd[0] == "psql" && cmd[len(cmd)-1] == roadsStagingDir+"/build_roads.sql"
	}), mock.Anything).Return(&runtime.ExecResult{ExitCode: 0}, nil)

	p := newTestProvisioner(cfg, rt)
	require.NoError(t, p.buildRoads(ctx))

	rt.AssertExpectations(t)
}

func TestBuildRoads_MkdirFailureIsNonFatal(t *testing.T) {
	ctx := testutils.TestContext(t)
	cfg := testutils.TestConfig()

	rt := new(mocks.MockRuntime)
	rt.On("ExecContainer", mock.Anything, "routepg-test-db", []string{"mkdir", "-p", roadsStagingDir}, mock.Anything).
		Return(nil, errors.New("exec unavailable"))
	rt.On("CopyToContainer", mock.Anything, "routepg-test-db", mock.Anything, roadsStagingDir).
		Return(nil)
	rt.On("ExecContainer", mock.Anything, "routepg-test-db", mock.MatchedBy(func(cmd []string) bool {
		return len(cmd) > 0 && cmd[0] == "psql"
	}), mock.Anything).Return(&runtime.ExecResult{ExitCode: 0}, nil)

	p := newTestProvisioner(cfg, rt)
	require.NoError(t, p.buildRoads(ctx))
}

func TestBuildRoads_ScriptFailureCarriesOutput(t *testing.T) {
	ctx := testutils.TestContext(t)
	cfg := testutils.TestConfig()

	rt := new(mocks.MockRuntime)
	rt.On("ExecContainer", mock.Anything, "routepg-test-db", []string{"mkdir", "-p", roadsStagingDir}, mock.Anything).
		Return(&runtime.ExecResult{ExitCode: 0}, nil)
	rt.On("CopyToContainer", mock.Anything, "routepg-test-db", mock.Anything, roadsStagingDir).
		Return(nil)
	rt.On("ExecContainer", mock.Anything, "routepg-test-db", mock.MatchedBy(func(cmd []string) bool {
		return len(cmd) > 0 && cmd[0] == "psql"
	}), mock.Anything).Return(&runtime.ExecResult{
		ExitCode: 3,
		Output:   []byte(`ERROR: relation "planet_osm_line" does not exist`),
	}, nil)

	p := newTestProvisioner(cfg, rt)
	err := p.buildRoads(ctx)

	var roadsErr *RoadsBuildError
	require.ErrorAs(t, err, &roadsErr)
	assert.Contains(t, roadsErr.Diag, "planet_osm_line")
}

func TestBuildRoads_CopyFailureIsFatal(t *testing.T) {
	ctx := testutils.TestContext(t)
	cfg := testutils.TestConfig()

	rt := new(mocks.MockRuntime)
	rt.On("ExecContainer", mock.Anything, "routepg-test-db", []string{"mkdir", "-p", roadsStagingDir}, mock.Anything).
		Return(&runtime.ExecResult{ExitCode: 0}, nil)
	rt.On("CopyToContainer", mock.Anything, "routepg-test-db", mock.Anything, roadsStagingDir).
		Return(errors.New("container not running"))

	p := newTestProvisioner(cfg, rt)
	err := p.buildRoads(ctx)

	var roadsErr *RoadsBuildError
	require.ErrorAs(t, err, &roadsErr)
}
