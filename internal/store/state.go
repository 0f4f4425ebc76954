package store

import (
	"slices"

	"programctl/internal/program"
)

// State is the Program slice: the last loaded page, the Program being
// viewed or edited, in-flight flags and the last failure.
type State struct {
	Entities      []program.Program
	Entity        program.Program
	Loading       bool
	Updating      bool
	UpdateSuccess bool
	Err           error
	TotalItems    int
}

// DefaultState is the slice before anything happened, and after Reset.
func DefaultState() State {
	return State{
		Entities: []program.Program{},
		Entity:   program.Empty(),
	}
}

// clone copies the parts of s a caller could mutate through.
func (s State) clone() State {
	out := s
	out.Entities = slices.Clone(s.Entities)
	if out.Entities == nil {
		out.Entities = []program.Program{}
	}
	return out
}
