// Package trace provides decision-trace recording for dispatch and drain analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RouterLoad captures one router's state at the moment a decision was made.
type RouterLoad struct {
	RouterID  int
	Length    int
	WaitTime  int
	HeadDelay int // remaining delay of the head packet; -1 when the router is empty
}

// DispatchRecord captures a single dispatch decision for a packet leaving the dispatcher.
type DispatchRecord struct {
	PacketID     int64
	Tick         int64
	ChosenRouter int  // 1-based router id; -1 when the packet was dropped
	Dropped      bool
	IdleEntry    bool         // the chosen router was empty before this packet
	Candidates   []RouterLoad // every router, before the packet was enqueued
}

// DrainRecord captures a single drain decision.
type DrainRecord struct {
	Tick         int64
	ChosenRouter int          // 1-based router id
	WaitTime     int          // starvation counter of the winner before it was reset
	Candidates   []RouterLoad // every router, before the selector ran
}
