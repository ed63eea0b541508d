package watchlist

import (
	"fmt"
	"strings"
	"sync"
)

// checkerRegistry implements CheckerRegistry.
type checkerRegistry struct {
	checkersByType map[string]Checker
	mu             sync.RWMutex
}

// NewCheckerRegistry builds a registry keyed by each checker's Type().
func NewCheckerRegistry(checkers ...Checker) CheckerRegistry {
	reg := &checkerRegistry{checkersByType: make(map[string]Checker)}
	for _, c := range checkers {
		reg.register(c)
	}
	return reg
}

func (r *checkerRegistry) register(c Checker) {
	if c == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(c.Type()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.checkersByType[key] = c
	r.mu.Unlock()
}

// CheckerFor selects the checker for the given watch based on its type.
func (r *checkerRegistry) CheckerFor(w Watch) (Checker, error) {
	if r == nil {
		return nil, fmt.Errorf("checker registry is nil")
	}
	if strings.TrimSpace(w.ID) == "" {
		return nil, fmt.Errorf("watch id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.checkersByType[strings.ToLower(strings.TrimSpace(w.Type))]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("no checker registered for watch %q (type %q)", w.ID, w.Type)
}

// DefaultCheckerRegistry wires up the breach and paste checkers against api.
func DefaultCheckerRegistry(api API) CheckerRegistry {
	return NewCheckerRegistry(
		NewBreachChecker(api),
		NewPasteChecker(api),
	)
}
