package flow

import (
	"sync"

	"go.uber.org/zap"
)

// Store owns the canonical State and serializes every dispatch through the
// reducer. All callers share one Store per editing session; components
// outside this package only read cloned projections or dispatch actions,
// never hold a mutable reference to the node or edge slices.
type Store struct {
	mu     sync.Mutex
	state  State
	logger *zap.Logger
}

// NewStore creates a store seeded with the given state.
func NewStore(initial State, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:  initial,
		logger: logger,
	}
}

// Dispatch applies an action through the reducer and returns a clone of the
// resulting state. Dispatches are serialized; a transition never suspends.
func (st *Store) Dispatch(action Action) State {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.state = Reduce(st.state, action)

	st.logger.Debug("action dispatched",
		zap.String("action", action.Name()),
		zap.Int("nodes", len(st.state.Nodes)),
		zap.Int("edges", len(st.state.Edges)),
	)

	return st.state.Clone()
}

// State returns a clone of the current state.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Clone()
}
