// Package sim provides the discrete-time packet network simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - packet.go: Packet state (size, arrival tick, remaining transit delay) and the per-run id counter
//   - queue.go: RouterQueue, the FIFO buffer used for the dispatcher and every intermediate router
//   - dispatch.go, drain.go: the two selectors that decide where packets go
//   - simulator.go: the per-tick loop (arrivals, dispatch, transit decay, drain)
//
// # Model
//
// Packets arrive at an unbounded dispatcher queue, are routed into one of N
// bounded intermediate routers and leave toward a single destination, at most
// Bandwidth packets per tick. A packet may only leave once it sits at the
// head of its router with no transit delay left; only heads decay.
//
// # Key Interfaces
//   - DispatchPolicy: choose the router for a packet leaving the dispatcher
//   - RandomSource / SourceFactory: seedable random draws, one source per subsystem
//   - Observer: receive the per-tick Event stream and the final Summary
//
// Sub-packages:
//   - sim/trace/: dispatch and drain decision records
//   - sim/report/: console and JSON reporting observers
package sim
