// Package store holds the Program slice and the operations that change it.
//
// State changes only through Reduce, a pure function of the current State
// and an Event. Events are a closed set: a Lifecycle event per backend
// operation (Op) and phase (Requested, Succeeded, Failed), plus the local
// SetBlob and Reset. Anything else leaves the State unchanged.
//
// A Store owns one State. It applies dispatched events one at a time and
// notifies subscribers with the before/after States, which is how views
// learn they must re-render. Actions wrap the backend calls: each
// dispatches Requested, performs one call, then dispatches Succeeded or
// Failed.
//
// # Writes
//
// Only one write (create, update, partial update, delete) may be in flight.
// A second write started while State.Updating is true fails with
// ErrWriteInProgress and issues no request. After a successful create or
// delete the list is reloaded in the background when RefreshAfterWrite is
// set; Actions.Wait blocks until those reloads have resolved.
package store
