// Package reconcile implements the pure reconciliation heuristic: given a
// Difference, guess which replica (if any) holds the correct, up-to-date
// state that should be propagated to the others.
package reconcile

import "github.com/arbor-sync/arbor/pkg/mirror/detect"

// Operation is the suggested resolution for a Difference.
type Operation struct {
	kind   operationKind
	master int
}

type operationKind uint8

const (
	kindPropagateFromMaster operationKind = iota
	kindChangedOnMultipleReplicas
	kindDiffersWithNoArchive
)

// PropagateFromMaster suggests propagating the state of the replica at
// index master to every other replica.
func PropagateFromMaster(master int) Operation {
	return Operation{kind: kindPropagateFromMaster, master: master}
}

// ChangedOnMultipleReplicas indicates the path changed on two or more
// replicas since the last archived state, so no replica can be trusted as
// the master without external input.
var ChangedOnMultipleReplicas = Operation{kind: kindChangedOnMultipleReplicas}

// DiffersWithNoArchive indicates the path differs across replicas and there
// is no prior archived state to determine which replica is authoritative.
var DiffersWithNoArchive = Operation{kind: kindDiffersWithNoArchive}

// IsPropagateFromMaster reports whether op suggests propagation, and if so,
// from which replica index.
func (op Operation) IsPropagateFromMaster() (int, bool) {
	if op.kind == kindPropagateFromMaster {
		return op.master, true
	}
	return 0, false
}

// String renders the operation for diagnostics.
func (op Operation) String() string {
	switch op.kind {
	case kindPropagateFromMaster:
		return "propagate from master"
	case kindChangedOnMultipleReplicas:
		return "changed on multiple replicas"
	case kindDiffersWithNoArchive:
		return "differs with no archive"
	default:
		return "unknown"
	}
}

// Guess determines which replica (if any) holds the most up-to-date copy of
// a difference's contents.
func Guess(difference detect.Difference) Operation {
	if difference.PreviousState != nil {
		return guessWithPrevious(difference)
	}
	return guessWithoutPrevious(difference)
}

func guessWithPrevious(difference detect.Difference) Operation {
	result := ChangedOnMultipleReplicas
	haveMaster := false
	for i, replica := range difference.CurrentState {
		if replica != difference.PreviousState[i] {
			if haveMaster {
				return ChangedOnMultipleReplicas
			}
			result = PropagateFromMaster(i)
			haveMaster = true
		}
	}
	return result
}

func guessWithoutPrevious(difference detect.Difference) Operation {
	result := DiffersWithNoArchive
	haveMaster := false
	for i, replica := range difference.CurrentState {
		if replica.Exists() {
			if haveMaster {
				return DiffersWithNoArchive
			}
			result = PropagateFromMaster(i)
			haveMaster = true
		}
	}
	return result
}
