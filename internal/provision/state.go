package provision

import (
	"slices"

	"github.com/routepg/routepg/pkg/runtime"
)

// ContainerState classifies an observed container snapshot relative to
// the desired network attachment.
type ContainerState int

const (
	Absent ContainerState = iota
	StoppedUnattached
	StoppedAttached
	RunningUnattached
	RunningAttached
)

func (s ContainerState) String() string {
	switch s {
	case Absent:
		return "absent"
	case StoppedUnattached:
		return "stopped-unattached"
	case StoppedAttached:
		return "stopped-attached"
	case RunningUnattached:
		return "running-unattached"
	case RunningAttached:
		return "running-attached"
	default:
		return "unknown"
	}
}

// DetectState derives the container state from a snapshot. A nil
// snapshot means no container with the desired name exists.
func DetectState(snapshot *runtime.Container, networkName string) ContainerState {
	if snapshot == nil {
		return Absent
	}

	attached := slices.Contains(snapshot.Networks, networkName)

	switch {
	case snapshot.Running && attached:
		return RunningAttached
	case snapshot.Running:
		return RunningUnattached
	case attached:
		return StoppedAttached
	default:
		return StoppedUnattached
	}
}
