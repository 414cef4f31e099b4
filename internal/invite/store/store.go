// Package store provides an in-process holder for the invite form state.
package store

import (
	"slices"
	"sync"

	"github.com/festy23/team_invite/internal/invite/model"
)

// Reducer computes the next state for an action.
type Reducer interface {
	Reduce(state model.FormState, action model.Action) model.FormState
}

// Listener is notified with every new snapshot, in dispatch order.
type Listener func(state model.FormState)

// Store holds the current FormState and replaces it on every dispatch.
// Dispatch calls are serialized; listeners run under the store lock and
// must not dispatch.
type Store struct {
	mu        sync.Mutex
	reducer   Reducer
	state     model.FormState
	listeners map[int]Listener
	nextID    int
}

// New creates a store holding a freshly mounted form.
func New(r Reducer) *Store {
	return NewWithState(r, model.NewFormState())
}

// NewWithState creates a store holding initial.
func NewWithState(r Reducer, initial model.FormState) *Store {
	return &Store{
		reducer:   r,
		state:     initial.Clone(),
		listeners: make(map[int]Listener),
	}
}

// State returns the current snapshot.
func (s *Store) State() model.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies action and returns the new snapshot.
func (s *Store) Dispatch(action model.Action) model.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.reducer.Reduce(s.state, action)
	for _, id := range s.order() {
		s.listeners[id](s.state.Clone())
	}
	return s.state.Clone()
}

// Subscribe registers l and returns a function that unregisters it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// order returns listener ids in subscription order.
func (s *Store) order() []int {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
