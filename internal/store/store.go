package store

import (
	"sync"
	"time"

	"programctl/pkg/logging"

	"github.com/google/uuid"
)

const subscriptionBuffer = 100

// Change is delivered to subscribers after every dispatch.
type Change struct {
	Event Event
	Old   State
	New   State
}

// Subscription receives Changes until it is closed.
type Subscription struct {
	ID      string
	Channel chan Change

	mu     sync.RWMutex
	closed bool
}

// Close closes the subscription channel. Closing twice is safe.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.Channel)
		s.closed = true
	}
}

// IsClosed returns whether the subscription is closed.
func (s *Subscription) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Metrics tracks dispatch and delivery counts.
type Metrics struct {
	Dispatched          int64
	LastDispatch        time.Time
	ActiveSubscriptions int
	EventsDelivered     int64
	DroppedEvents       int64
}

// Store owns one Program slice. Every Dispatch applies Reduce under a lock,
// so concurrent dispatches are serialised into a sequence of transitions.
type Store struct {
	mu            sync.RWMutex
	state         State
	subscriptions map[string]*Subscription
	metrics       Metrics
}

// New creates a Store holding DefaultState.
func New() *Store {
	return &Store{
		state:         DefaultState(),
		subscriptions: make(map[string]*Subscription),
	}
}

// State returns a copy of the current slice.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch folds e into the slice, notifies subscribers and returns the
// resulting State.
func (s *Store) Dispatch(e Event) State {
	next, _ := s.dispatchIf(e, nil)
	return next
}

// dispatchIf dispatches e only when guard accepts the current State. The
// check and the transition happen under the same lock.
func (s *Store) dispatchIf(e Event, guard func(State) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if guard != nil {
		if err := guard(s.state); err != nil {
			return s.state.clone(), err
		}
	}

	old := s.state
	s.state = Reduce(s.state, e)

	s.metrics.Dispatched++
	s.metrics.LastDispatch = time.Now()
	logging.Debug("Store", "dispatched %s", e)

	s.notifySubscribers(Change{Event: e, Old: old.clone(), New: s.state.clone()})
	return s.state.clone(), nil
}

// Subscribe creates a subscription to all future changes.
func (s *Store) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription{
		ID:      uuid.NewString(),
		Channel: make(chan Change, subscriptionBuffer),
	}
	s.subscriptions[sub.ID] = sub
	s.metrics.ActiveSubscriptions++
	return sub
}

// Unsubscribe removes and closes a subscription.
func (s *Store) Unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.ID]; exists {
		sub.Close()
		delete(s.subscriptions, sub.ID)
		s.metrics.ActiveSubscriptions--
	}
}

// Metrics returns a snapshot of the store metrics.
func (s *Store) Metrics() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// notifySubscribers must be called with s.mu held.
func (s *Store) notifySubscribers(c Change) {
	for id, sub := range s.subscriptions {
		delivered, closed := sub.offer(c)
		switch {
		case closed:
			delete(s.subscriptions, id)
			s.metrics.ActiveSubscriptions--
		case delivered:
			s.metrics.EventsDelivered++
		default:
			s.metrics.DroppedEvents++
		}
	}
}

// offer sends c without blocking; a slow subscriber loses changes rather
// than stalling the store.
func (s *Subscription) offer(c Change) (delivered, closed bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, true
	}
	select {
	case s.Channel <- c:
		return true, false
	default:
		return false, false
	}
}
