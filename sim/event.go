package sim

// Event defines the interface for everything the simulator reports while it runs.
// Each event carries the tick (Timestamp) at which it happened.
type Event interface {
	Timestamp() int64
}

// Observer receives the per-tick event stream and the final summary.
// Observers are called synchronously from the simulation loop.
type Observer interface {
	Observe(ev Event)
	Finish(summary Summary)
}

// TickStartEvent opens a tick.
type TickStartEvent struct {
	Time int64
}

// Timestamp returns the tick of the TickStartEvent.
func (e TickStartEvent) Timestamp() int64 { return e.Time }

// ArrivalEvent lists the packets that arrived at the dispatcher this tick.
// Packets is empty when no packet arrived.
type ArrivalEvent struct {
	Time    int64
	Packets []PacketView
}

// Timestamp returns the tick of the ArrivalEvent.
func (e ArrivalEvent) Timestamp() int64 { return e.Time }

// DispatchEvent records a packet moving from the dispatcher into a router.
type DispatchEvent struct {
	Time        int64
	Packet      PacketView // state after the idle-entry bonus
	RouterIndex int        // 0-based index into the router list
	RouterID    int        // 1-based router id
	IdleEntry   bool       // true when the router was empty before this packet
}

// Timestamp returns the tick of the DispatchEvent.
func (e DispatchEvent) Timestamp() int64 { return e.Time }

// DropEvent records a packet dropped because every router was full.
type DropEvent struct {
	Time   int64
	Packet PacketView
}

// Timestamp returns the tick of the DropEvent.
func (e DropEvent) Timestamp() int64 { return e.Time }

// DeliveryEvent records a packet reaching the destination.
type DeliveryEvent struct {
	Time        int64
	Packet      PacketView
	RouterIndex int
	RouterID    int
	ServiceTime int64 // Time - Packet.ArrivalTime
}

// Timestamp returns the tick of the DeliveryEvent.
func (e DeliveryEvent) Timestamp() int64 { return e.Time }

// TickEndEvent closes a tick with a snapshot of every intermediate router.
type TickEndEvent struct {
	Time    int64
	Routers []RouterSnapshot
}

// Timestamp returns the tick of the TickEndEvent.
func (e TickEndEvent) Timestamp() int64 { return e.Time }
