package sim

import "errors"

var (
	// ErrEmptyQueue is returned when removing from a queue that holds no packets.
	// Every simulator call site checks length first, so seeing it at runtime
	// means an internal invariant is broken.
	ErrEmptyQueue = errors.New("queue is empty")

	// ErrQueueFull is returned when enqueueing onto a bounded queue at capacity.
	ErrQueueFull = errors.New("queue is full")

	// ErrNoAvailableRouter is returned by both selectors when no router can
	// take (dispatch) or send (drain) a packet. Always recovered in the loop.
	ErrNoAvailableRouter = errors.New("no available router")

	// ErrInvalidArgument guards construction-time arguments such as a negative
	// packet counter reset or an out-of-range configuration value.
	ErrInvalidArgument = errors.New("invalid argument")
)
