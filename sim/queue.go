// Implements the RouterQueue, the FIFO packet buffer used for both the dispatcher
// and the intermediate routers.

package sim

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// DispatcherID is the router id reserved for the dispatcher queue.
const DispatcherID = -1

// RouterQueue is a FIFO buffer of packets with an optional capacity bound and
// a starvation counter used by the drain selector.
// A capacity of 0 means unbounded; only the dispatcher is built that way.
type RouterQueue struct {
	ID       int
	capacity int
	queue    []*Packet
	waitTime int // consecutive drain scans in which the ready head was not chosen
}

// NewRouterQueue creates an intermediate router holding at most capacity packets.
// Panics if capacity is not positive.
func NewRouterQueue(id int, capacity int) *RouterQueue {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewRouterQueue: capacity must be > 0, got %d", capacity))
	}
	return &RouterQueue{ID: id, capacity: capacity}
}

// NewDispatcherQueue creates the unbounded entry queue.
func NewDispatcherQueue() *RouterQueue {
	return &RouterQueue{ID: DispatcherID}
}

// Enqueue adds a packet to the back of the queue.
// Returns ErrQueueFull when a bounded queue is already at capacity.
func (q *RouterQueue) Enqueue(p *Packet) error {
	if p == nil {
		panic("Enqueue: packet must not be nil")
	}
	if q.Full() {
		return fmt.Errorf("router %d holds %d packets: %w", q.ID, len(q.queue), ErrQueueFull)
	}
	q.queue = append(q.queue, p)
	return nil
}

// Dequeue removes and returns the packet at the front of the queue.
// Returns ErrEmptyQueue when there is nothing to remove.
func (q *RouterQueue) Dequeue() (*Packet, error) {
	if len(q.queue) == 0 {
		return nil, fmt.Errorf("router %d: %w", q.ID, ErrEmptyQueue)
	}
	head := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return head, nil
}

// Peek returns the packet at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *RouterQueue) Peek() *Packet {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Len returns the number of packets in the queue.
func (q *RouterQueue) Len() int {
	return len(q.queue)
}

// Capacity returns the capacity bound, or 0 for an unbounded queue.
func (q *RouterQueue) Capacity() int {
	return q.capacity
}

// Full reports whether a bounded queue has reached its capacity.
func (q *RouterQueue) Full() bool {
	return q.capacity > 0 && len(q.queue) >= q.capacity
}

// WaitTime returns the current starvation counter.
func (q *RouterQueue) WaitTime() int {
	return q.waitTime
}

// Packets returns a copy of the queued packets in send order.
func (q *RouterQueue) Packets() []*Packet {
	return slices.Clone(q.queue)
}

// Snapshot returns a value copy of the queue for observers.
func (q *RouterQueue) Snapshot() RouterSnapshot {
	views := make([]PacketView, len(q.queue))
	for i, p := range q.queue {
		views[i] = p.View()
	}
	return RouterSnapshot{ID: q.ID, Packets: views, WaitTime: q.waitTime}
}

func (q *RouterQueue) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, p := range q.queue {
		sb.WriteString(p.String())
		if i < len(q.queue)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// RouterSnapshot is a value copy of one router at the end of a tick.
type RouterSnapshot struct {
	ID       int          `json:"id"`
	Packets  []PacketView `json:"packets"`
	WaitTime int          `json:"wait_time"`
}

func (s RouterSnapshot) String() string {
	parts := make([]string, len(s.Packets))
	for i, v := range s.Packets {
		parts[i] = v.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
