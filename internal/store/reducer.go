package store

import "programctl/internal/program"

// Reduce folds e into s and returns the new State. It is a pure function:
// s is never modified and events it does not recognise return s unchanged.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case Lifecycle:
		return reduceLifecycle(s, ev)
	case SetBlob:
		entity, err := s.Entity.WithBlob(ev.Name, ev.Data, ev.ContentType)
		if err != nil {
			return s
		}
		s.Entity = entity
		return s
	case Reset:
		return DefaultState()
	default:
		return s
	}
}

func reduceLifecycle(s State, ev Lifecycle) State {
	switch ev.Phase {
	case PhaseRequested:
		switch {
		case ev.Op.IsRead():
			s.Err = nil
			s.UpdateSuccess = false
			s.Loading = true
		case ev.Op.IsWrite():
			s.Err = nil
			s.UpdateSuccess = false
			s.Updating = true
		}
		return s

	case PhaseFailed:
		if !ev.Op.IsRead() && !ev.Op.IsWrite() {
			return s
		}
		s.Loading = false
		s.Updating = false
		s.UpdateSuccess = false
		s.Err = ev.Err
		return s

	case PhaseSucceeded:
		switch ev.Op {
		case OpFetchList:
			s.Loading = false
			s.Entities = ev.Entities
			s.TotalItems = ev.TotalItems
		case OpFetch:
			s.Loading = false
			s.Entity = ev.Entity
		case OpCreate, OpUpdate, OpPartialUpdate:
			s.Updating = false
			s.UpdateSuccess = true
			s.Entity = ev.Entity
		case OpDelete:
			s.Updating = false
			s.UpdateSuccess = true
			s.Entity = program.Empty()
		}
		return s

	default:
		return s
	}
}
