package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"programctl/internal/api"
	"programctl/internal/program"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu      sync.Mutex
	queries []api.ListQuery
	writes  int

	page    api.Page
	listErr error
	getErr  error
	saveErr error
	release chan struct{}
	// listGate, when set, holds every list call until it is closed.
	listGate chan struct{}
}

func (f *fakeService) ListPrograms(_ context.Context, q api.ListQuery) (api.Page, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page, f.listErr
}

func (f *fakeService) GetProgram(_ context.Context, id int64) (program.Program, error) {
	if f.getErr != nil {
		return program.Empty(), f.getErr
	}
	return sample(id, "Fetched program"), nil
}

func (f *fakeService) save(p program.Program) (program.Program, error) {
	f.mu.Lock()
	f.writes++
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	if f.saveErr != nil {
		return program.Empty(), f.saveErr
	}
	if p.ID == 0 {
		p.ID = 100
	}
	return p, nil
}

func (f *fakeService) CreateProgram(_ context.Context, p program.Program) (program.Program, error) {
	return f.save(p)
}

func (f *fakeService) UpdateProgram(_ context.Context, p program.Program) (program.Program, error) {
	return f.save(p)
}

func (f *fakeService) PatchProgram(_ context.Context, p program.Program) (program.Program, error) {
	return f.save(p)
}

func (f *fakeService) DeleteProgram(_ context.Context, _ int64) error {
	_, err := f.save(program.Empty())
	return err
}

func (f *fakeService) listCalls() []api.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.ListQuery(nil), f.queries...)
}

func TestActions_GetEntities(t *testing.T) {
	svc := &fakeService{page: api.Page{Items: []program.Program{sample(1, "First program")}, TotalCount: 12}}
	a := NewActions(New(), svc)

	q := api.ListQuery{Page: 1, Size: 20, Sort: "id,asc"}
	require.NoError(t, a.GetEntities(context.Background(), q))

	st := a.Store().State()
	assert.False(t, st.Loading)
	assert.Equal(t, 12, st.TotalItems)
	assert.Len(t, st.Entities, 1)
	assert.Equal(t, []api.ListQuery{q}, svc.listCalls())
}

func TestActions_GetEntityFailureKeepsList(t *testing.T) {
	boom := errors.New("not reachable")
	svc := &fakeService{getErr: boom}
	s := New()
	s.Dispatch(ListLoaded([]program.Program{sample(1, "First program")}, 1))
	a := NewActions(s, svc)

	err := a.GetEntity(context.Background(), 5)
	assert.ErrorIs(t, err, boom)

	st := s.State()
	assert.False(t, st.Loading)
	assert.ErrorIs(t, st.Err, boom)
	assert.Len(t, st.Entities, 1)
	assert.Equal(t, 1, st.TotalItems)
}

func TestActions_CreateRefreshesList(t *testing.T) {
	svc := &fakeService{}
	s := New()
	sub := s.Subscribe()
	defer s.Unsubscribe(sub)
	a := NewActions(s, svc)

	created, err := a.CreateEntity(context.Background(), sample(0, "A new program"))
	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	a.Wait()

	var seen []string
	for len(sub.Channel) > 0 {
		seen = append(seen, (<-sub.Channel).Event.String())
	}
	assert.Equal(t, []string{
		"Create/Requested",
		"Create/Succeeded",
		"FetchList/Requested",
		"FetchList/Succeeded",
	}, seen)

	st := s.State()
	assert.True(t, st.UpdateSuccess)
	assert.False(t, st.Updating)
	assert.Equal(t, int64(100), st.Entity.ID)
	assert.Equal(t, []api.ListQuery{{}}, svc.listCalls())
}

func TestActions_RefreshSurvivesCancelledContext(t *testing.T) {
	svc := &fakeService{}
	a := NewActions(New(), svc)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := a.CreateEntity(ctx, sample(0, "A new program"))
	require.NoError(t, err)
	cancel()
	a.Wait()

	assert.Len(t, svc.listCalls(), 1)
}

func TestActions_RefreshDisabled(t *testing.T) {
	svc := &fakeService{}
	a := NewActions(New(), svc)
	a.RefreshAfterWrite = false

	require.NoError(t, a.DeleteEntity(context.Background(), 3))
	a.Wait()

	assert.Empty(t, svc.listCalls())
}

func TestActions_UpdateDoesNotRefresh(t *testing.T) {
	svc := &fakeService{}
	a := NewActions(New(), svc)

	p := sample(42, "Updated program")
	got, err := a.UpdateEntity(context.Background(), p)
	require.NoError(t, err)
	a.Wait()

	assert.Equal(t, p, got)
	assert.Empty(t, svc.listCalls())
	assert.Equal(t, p, a.Store().State().Entity)

	_, err = a.PartialUpdate(context.Background(), program.Program{ID: 42, Tags: "go"})
	require.NoError(t, err)
	assert.True(t, a.Store().State().UpdateSuccess)
}

func TestActions_DeleteEmptiesEntity(t *testing.T) {
	svc := &fakeService{}
	s := New()
	s.Dispatch(EntityLoaded(sample(3, "Program three")))
	a := NewActions(s, svc)

	require.NoError(t, a.DeleteEntity(context.Background(), 3))
	a.Wait()

	st := s.State()
	assert.True(t, st.Entity.IsEmpty())
	assert.True(t, st.UpdateSuccess)
}

func TestActions_WriteFailure(t *testing.T) {
	boom := errors.New("rejected")
	svc := &fakeService{saveErr: boom}
	a := NewActions(New(), svc)

	_, err := a.CreateEntity(context.Background(), sample(0, "A new program"))
	assert.ErrorIs(t, err, boom)
	a.Wait()

	st := a.Store().State()
	assert.False(t, st.Updating)
	assert.False(t, st.UpdateSuccess)
	assert.ErrorIs(t, st.Err, boom)
	assert.Empty(t, svc.listCalls())
}

func TestActions_OverlappingWriteRejected(t *testing.T) {
	svc := &fakeService{release: make(chan struct{})}
	a := NewActions(New(), svc)
	a.RefreshAfterWrite = false

	done := make(chan error, 1)
	go func() {
		_, err := a.UpdateEntity(context.Background(), sample(1, "First program"))
		done <- err
	}()

	require.Eventually(t, func() bool { return a.Store().State().Updating }, time.Second, 5*time.Millisecond)

	_, err := a.PartialUpdate(context.Background(), program.Program{ID: 1, Tags: "abc"})
	assert.ErrorIs(t, err, ErrWriteInProgress)

	close(svc.release)
	require.NoError(t, <-done)

	svc.mu.Lock()
	assert.Equal(t, 1, svc.writes)
	svc.mu.Unlock()
	assert.True(t, a.Store().State().UpdateSuccess)
}

func TestActions_WaitCoversRefreshStartedWhileWaiting(t *testing.T) {
	gate := make(chan struct{})
	svc := &fakeService{listGate: gate}
	a := NewActions(New(), svc)

	require.NoError(t, a.DeleteEntity(context.Background(), 1))

	waited := make(chan struct{})
	go func() {
		a.Wait()
		close(waited)
	}()

	// Wait is already blocked on the first refresh when the second one starts.
	_, err := a.CreateEntity(context.Background(), sample(0, "A new program"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(svc.listCalls()) == 2 }, time.Second, 5*time.Millisecond)

	select {
	case <-waited:
		t.Fatal("Wait returned while refreshes were still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(gate)
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the refreshes resolved")
	}
}

func TestActions_WaitContextGivesUpOnHungRefresh(t *testing.T) {
	gate := make(chan struct{})
	svc := &fakeService{listGate: gate}
	a := NewActions(New(), svc)
	defer func() {
		close(gate)
		a.Wait()
	}()

	require.NoError(t, a.DeleteEntity(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.WaitContext(ctx), context.DeadlineExceeded)
}

func TestActions_WaitWithoutRefreshes(t *testing.T) {
	a := NewActions(New(), &fakeService{})
	assert.NoError(t, a.WaitContext(context.Background()))
}

func TestActions_SetBlobAndReset(t *testing.T) {
	a := NewActions(New(), &fakeService{})

	a.SetBlob(program.CoverField, []byte("png"), "image/png")
	assert.Equal(t, "image/png", a.Store().State().Entity.CoverContentType)

	a.SetBlob("unknown", []byte("x"), "text/plain")
	assert.Equal(t, []byte("png"), a.Store().State().Entity.Cover)

	a.Reset()
	assert.True(t, a.Store().State().Entity.IsEmpty())
}
