package store

import (
	"fmt"

	"programctl/internal/program"
)

// Op names one of the operations that talk to the backend.
type Op int

const (
	OpFetchList Op = iota + 1
	OpFetch
	OpCreate
	OpUpdate
	OpPartialUpdate
	OpDelete
)

// String makes Op satisfy the fmt.Stringer interface.
func (o Op) String() string {
	switch o {
	case OpFetchList:
		return "FetchList"
	case OpFetch:
		return "Fetch"
	case OpCreate:
		return "Create"
	case OpUpdate:
		return "Update"
	case OpPartialUpdate:
		return "PartialUpdate"
	case OpDelete:
		return "Delete"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// IsRead reports whether o only reads from the backend.
func (o Op) IsRead() bool {
	return o == OpFetchList || o == OpFetch
}

// IsWrite reports whether o changes data on the backend.
func (o Op) IsWrite() bool {
	switch o {
	case OpCreate, OpUpdate, OpPartialUpdate, OpDelete:
		return true
	default:
		return false
	}
}

// Phase is the lifecycle position of an operation.
type Phase int

const (
	PhaseRequested Phase = iota + 1
	PhaseSucceeded
	PhaseFailed
)

// String makes Phase satisfy the fmt.Stringer interface.
func (p Phase) String() string {
	switch p {
	case PhaseRequested:
		return "Requested"
	case PhaseSucceeded:
		return "Succeeded"
	case PhaseFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Event is anything the reducer folds into the State. The set is closed:
// Lifecycle, SetBlob and Reset.
type Event interface {
	fmt.Stringer
	isEvent()
}

// Lifecycle reports one phase of an Op. Which payload fields matter depends
// on Op and Phase: Entities/TotalItems for a loaded list, Entity for a
// loaded or saved Program, Err for a failure.
type Lifecycle struct {
	Op    Op
	Phase Phase

	Entities   []program.Program
	TotalItems int
	Entity     program.Program
	Err        error
}

func (Lifecycle) isEvent() {}

func (e Lifecycle) String() string {
	return e.Op.String() + "/" + e.Phase.String()
}

// SetBlob stages a binary field locally; nothing is sent to the backend.
type SetBlob struct {
	Name        string
	Data        []byte
	ContentType string
}

func (SetBlob) isEvent() {}

func (e SetBlob) String() string {
	return "SetBlob/" + e.Name
}

// Reset returns the slice to DefaultState.
type Reset struct{}

func (Reset) isEvent() {}

func (Reset) String() string { return "Reset" }

// Requested starts op.
func Requested(op Op) Lifecycle {
	return Lifecycle{Op: op, Phase: PhaseRequested}
}

// ListLoaded completes OpFetchList.
func ListLoaded(entities []program.Program, total int) Lifecycle {
	return Lifecycle{Op: OpFetchList, Phase: PhaseSucceeded, Entities: entities, TotalItems: total}
}

// EntityLoaded completes OpFetch.
func EntityLoaded(p program.Program) Lifecycle {
	return Lifecycle{Op: OpFetch, Phase: PhaseSucceeded, Entity: p}
}

// Saved completes OpCreate, OpUpdate or OpPartialUpdate with the entity the
// backend answered with.
func Saved(op Op, p program.Program) Lifecycle {
	return Lifecycle{Op: op, Phase: PhaseSucceeded, Entity: p}
}

// Deleted completes OpDelete.
func Deleted() Lifecycle {
	return Lifecycle{Op: OpDelete, Phase: PhaseSucceeded}
}

// Failed ends op with err as the failure payload.
func Failed(op Op, err error) Lifecycle {
	return Lifecycle{Op: op, Phase: PhaseFailed, Err: err}
}
