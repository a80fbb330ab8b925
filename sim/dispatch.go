package sim

import (
	"fmt"
)

// DispatchPolicy decides which intermediate router receives a packet leaving the dispatcher.
// Implementations return the router index, or ErrNoAvailableRouter when every router is full.
type DispatchPolicy interface {
	Select(routers []*RouterQueue, maxSize int) (int, error)
}

// ValidDispatchPolicies is the set of recognized dispatch policy names.
// Shared by SimConfig.Validate() and NewDispatchPolicy().
var ValidDispatchPolicies = map[string]bool{"": true, "least-loaded": true, "round-robin": true}

// NewDispatchPolicy creates a dispatch policy by name. Empty selects least-loaded.
// Panics on an unknown name; callers validate through SimConfig.Validate() first.
func NewDispatchPolicy(name string) DispatchPolicy {
	switch name {
	case "", "least-loaded":
		return &LeastLoaded{}
	case "round-robin":
		return &RoundRobin{}
	default:
		panic(fmt.Sprintf("unknown dispatch policy %q", name))
	}
}

// LeastLoaded routes each packet to the router with the fewest queued packets.
type LeastLoaded struct{}

// Select implements DispatchPolicy for LeastLoaded.
func (ll *LeastLoaded) Select(routers []*RouterQueue, maxSize int) (int, error) {
	return SelectLeastLoaded(routers, maxSize)
}

// SelectLeastLoaded returns the index of the shortest router whose length is
// strictly below maxSize. Ties are broken by first occurrence (lowest index).
// Fails with ErrNoAvailableRouter when every router is at or above maxSize.
func SelectLeastLoaded(routers []*RouterQueue, maxSize int) (int, error) {
	index := -1
	emptiest := maxSize
	for i, r := range routers {
		if r.Len() < emptiest {
			index = i
			emptiest = r.Len()
		}
	}
	if index == -1 {
		return -1, fmt.Errorf("all %d routers are full: %w", len(routers), ErrNoAvailableRouter)
	}
	return index, nil
}

// RoundRobin rotates across routers, skipping those at capacity.
type RoundRobin struct {
	next int
}

// Select implements DispatchPolicy for RoundRobin.
func (rr *RoundRobin) Select(routers []*RouterQueue, maxSize int) (int, error) {
	n := len(routers)
	for k := 0; k < n; k++ {
		i := (rr.next + k) % n
		if routers[i].Len() < maxSize {
			rr.next = (i + 1) % n
			return i, nil
		}
	}
	return -1, fmt.Errorf("all %d routers are full: %w", n, ErrNoAvailableRouter)
}
