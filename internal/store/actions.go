package store

import (
	"context"
	"errors"
	"sync"

	"programctl/internal/api"
	"programctl/internal/program"
	"programctl/pkg/logging"
)

// ErrWriteInProgress is returned when a write is attempted while another
// one has not resolved yet. The rejected write dispatches nothing.
var ErrWriteInProgress = errors.New("another write is in progress")

// ProgramService is the backend the actions talk to. *api.Client implements it.
type ProgramService interface {
	ListPrograms(ctx context.Context, q api.ListQuery) (api.Page, error)
	GetProgram(ctx context.Context, id int64) (program.Program, error)
	CreateProgram(ctx context.Context, p program.Program) (program.Program, error)
	UpdateProgram(ctx context.Context, p program.Program) (program.Program, error)
	PatchProgram(ctx context.Context, p program.Program) (program.Program, error)
	DeleteProgram(ctx context.Context, id int64) error
}

// Actions are the operations views call. Each one issues a single backend
// call and dispatches its Requested event, then Succeeded or Failed. Errors
// are both recorded in State.Err and returned.
type Actions struct {
	store   *Store
	service ProgramService

	// RefreshAfterWrite makes CreateEntity and DeleteEntity reload the list
	// (with an empty query) once they succeed. The reload is not awaited by
	// the caller; Wait blocks until it has resolved.
	RefreshAfterWrite bool

	// pending counts running refreshes; idle is closed whenever it drops
	// to zero. New refreshes may start while another goroutine waits.
	mu      sync.Mutex
	pending int
	idle    chan struct{}
}

// NewActions binds service to st. RefreshAfterWrite starts enabled.
func NewActions(st *Store, service ProgramService) *Actions {
	return &Actions{store: st, service: service, RefreshAfterWrite: true}
}

// Store returns the store the actions dispatch to.
func (a *Actions) Store() *Store {
	return a.store
}

// GetEntities loads a page of Programs.
func (a *Actions) GetEntities(ctx context.Context, q api.ListQuery) error {
	a.store.Dispatch(Requested(OpFetchList))

	page, err := a.service.ListPrograms(ctx, q)
	if err != nil {
		a.store.Dispatch(Failed(OpFetchList, err))
		return err
	}
	a.store.Dispatch(ListLoaded(page.Items, page.TotalCount))
	return nil
}

// GetEntity loads one Program into State.Entity.
func (a *Actions) GetEntity(ctx context.Context, id int64) error {
	a.store.Dispatch(Requested(OpFetch))

	p, err := a.service.GetProgram(ctx, id)
	if err != nil {
		a.store.Dispatch(Failed(OpFetch, err))
		return err
	}
	a.store.Dispatch(EntityLoaded(p))
	return nil
}

// CreateEntity stores a new Program and, with RefreshAfterWrite, reloads the list.
func (a *Actions) CreateEntity(ctx context.Context, p program.Program) (program.Program, error) {
	created, err := a.write(ctx, OpCreate, func(ctx context.Context) (program.Program, error) {
		return a.service.CreateProgram(ctx, p)
	})
	if err == nil {
		a.refresh(ctx)
	}
	return created, err
}

// UpdateEntity replaces the Program with p.ID. The list is not reloaded.
func (a *Actions) UpdateEntity(ctx context.Context, p program.Program) (program.Program, error) {
	return a.write(ctx, OpUpdate, func(ctx context.Context) (program.Program, error) {
		return a.service.UpdateProgram(ctx, p)
	})
}

// PartialUpdate merges the non-empty fields of p into the stored Program.
func (a *Actions) PartialUpdate(ctx context.Context, p program.Program) (program.Program, error) {
	return a.write(ctx, OpPartialUpdate, func(ctx context.Context) (program.Program, error) {
		return a.service.PatchProgram(ctx, p)
	})
}

// DeleteEntity removes a Program, clears State.Entity and, with
// RefreshAfterWrite, reloads the list.
func (a *Actions) DeleteEntity(ctx context.Context, id int64) error {
	_, err := a.write(ctx, OpDelete, func(ctx context.Context) (program.Program, error) {
		return program.Empty(), a.service.DeleteProgram(ctx, id)
	})
	if err == nil {
		a.refresh(ctx)
	}
	return err
}

// SetBlob stages a binary field into State.Entity without any network call.
// Passing nil data and an empty content type clears it.
func (a *Actions) SetBlob(name string, data []byte, contentType string) {
	a.store.Dispatch(SetBlob{Name: name, Data: data, ContentType: contentType})
}

// Reset returns the slice to DefaultState.
func (a *Actions) Reset() {
	a.store.Dispatch(Reset{})
}

// Wait blocks until every list refresh started by a write has resolved.
func (a *Actions) Wait() {
	_ = a.WaitContext(context.Background())
}

// WaitContext is Wait bounded by ctx. It returns ctx.Err() when ctx ends
// first; the refreshes keep running.
func (a *Actions) WaitContext(ctx context.Context) error {
	for {
		a.mu.Lock()
		if a.pending == 0 {
			a.mu.Unlock()
			return nil
		}
		idle := a.idle
		a.mu.Unlock()

		select {
		case <-idle:
			// A refresh may have started since; check again.
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *Actions) refreshStarted() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == 0 {
		a.idle = make(chan struct{})
	}
	a.pending++
}

func (a *Actions) refreshDone() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending--
	if a.pending == 0 {
		close(a.idle)
	}
}

func (a *Actions) write(ctx context.Context, op Op, call func(context.Context) (program.Program, error)) (program.Program, error) {
	if _, err := a.store.dispatchIf(Requested(op), noWriteInFlight); err != nil {
		logging.Warn("Store", "%s rejected: %v", op, err)
		return program.Empty(), err
	}

	p, err := call(ctx)
	if err != nil {
		a.store.Dispatch(Failed(op, err))
		return program.Empty(), err
	}

	if op == OpDelete {
		a.store.Dispatch(Deleted())
	} else {
		a.store.Dispatch(Saved(op, p))
	}
	return p, nil
}

func (a *Actions) refresh(ctx context.Context) {
	if !a.RefreshAfterWrite {
		return
	}
	// The caller's cancellation must not cut the reload short.
	ctx = context.WithoutCancel(ctx)

	a.refreshStarted()
	go func() {
		defer a.refreshDone()
		if err := a.GetEntities(ctx, api.ListQuery{}); err != nil {
			logging.Warn("Store", "list refresh after write failed: %v", err)
		}
	}()
}

func noWriteInFlight(s State) error {
	if s.Updating {
		return ErrWriteInProgress
	}
	return nil
}
