package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophgate/internal/client/models"
	"github.com/dmitrijs2005/gophgate/internal/logging"
)

var ErrIllegalTransition = errors.New("illegal state transition")

var legal = map[State][]State{
	StateInitializing:    {StateAuthenticated, StateUnauthenticated},
	StateUnauthenticated: {StateAuthenticated},
	StateAuthenticated:   {StateUnauthenticated},
}

// CanTransition reports whether the gate may move from one state to another.
// Staying in the same state is always allowed.
func CanTransition(from, to State) bool {
	if from == to {
		return true
	}
	for _, s := range legal[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Gate remembers the last observed state so transitions can be checked and
// logged.
type Gate struct {
	mu     sync.Mutex
	last   State
	logger logging.Logger
}

func NewGate(l logging.Logger) *Gate {
	return &Gate{last: StateInitializing, logger: l.With("module", "router")}
}

// Observe resolves st for the current route and records the state change.
// An illegal change is reported as ErrIllegalTransition and not recorded; the
// returned decision then names the previous state and moves nowhere.
func (g *Gate) Observe(ctx context.Context, st models.SessionState, current Route) (Decision, error) {
	d := Resolve(st, current)

	g.mu.Lock()
	defer g.mu.Unlock()

	if d.State == g.last {
		return d, nil
	}

	if !CanTransition(g.last, d.State) {
		g.logger.Error(ctx, "Illegal route state transition", "from", g.last.String(), "to", d.State.String())
		return Decision{State: g.last}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, g.last, d.State)
	}

	g.logger.Debug(ctx, "Route state changed", "from", g.last.String(), "to", d.State.String())
	g.last = d.State
	return d, nil
}
