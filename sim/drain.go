package sim

import "fmt"

// SelectMostStarved picks the router allowed to send one packet to the destination.
//
// Routers are scanned in order. A router whose head still owes transit delay
// has its wait time reset and is skipped. A router whose head is ready is a
// candidate; the candidate with the strictly greatest wait time wins, so ties
// go to the lowest index. Every ready router's wait time is then incremented,
// and the winner's is reset to zero.
//
// The scan stops at the first empty router: routers after it are neither
// considered nor have their counters touched for this call. Candidates found
// before the empty router are kept.
//
// Fails with ErrNoAvailableRouter when no candidate was found.
func SelectMostStarved(routers []*RouterQueue) (int, error) {
	best := -1
	bestWait := -1
	for i, r := range routers {
		head := r.Peek()
		if head == nil {
			break
		}
		if !head.Ready() {
			r.waitTime = 0
			continue
		}
		if best == -1 || r.waitTime > bestWait {
			best = i
			bestWait = r.waitTime
		}
		r.waitTime++
	}
	if best == -1 {
		return -1, fmt.Errorf("no router can send: %w", ErrNoAvailableRouter)
	}
	routers[best].waitTime = 0
	return best, nil
}
