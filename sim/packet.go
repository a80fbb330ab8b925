// Defines the Packet struct that models a single packet moving through the network.
// Tracks arrival time, size and the transit delay still owed at the head of a router.

package sim

import (
	"fmt"
)

// DelayDivisor converts a packet size into its initial transit delay (size / 100 ticks).
const DelayDivisor = 100

// Packet models a single packet's lifecycle in the simulation.
// A packet is created at the dispatcher, moved by ownership transfer into one
// intermediate router and destroyed when it is delivered or dropped.
type Packet struct {
	ID          int64 // Unique identifier within a run, starting at 1
	Size        int   // Packet size in arbitrary units (> 0)
	ArrivalTime int64 // Tick at which the packet entered the dispatcher

	remainingDelay int // Ticks still needed at the head of a router before it may drain; never negative
}

// NewPacket creates a packet whose remaining delay is size/100 (truncating).
func NewPacket(id int64, size int, arrivalTime int64) *Packet {
	p := &Packet{
		ID:          id,
		Size:        size,
		ArrivalTime: arrivalTime,
	}
	p.SetRemainingDelay(size / DelayDivisor)
	return p
}

// RemainingDelay returns the ticks the packet still has to wait before it can leave its router.
func (p *Packet) RemainingDelay() int {
	return p.remainingDelay
}

// SetRemainingDelay sets the remaining delay, clamping negative values to zero.
func (p *Packet) SetRemainingDelay(d int) {
	p.remainingDelay = max(0, d)
}

// SetSize sets the packet size. The remaining delay is left untouched.
func (p *Packet) SetSize(size int) {
	p.Size = size
}

// SetArrivalTime sets the tick at which the packet entered the dispatcher.
func (p *Packet) SetArrivalTime(t int64) {
	p.ArrivalTime = t
}

// Ready reports whether the packet has no transit delay left.
func (p *Packet) Ready() bool {
	return p.remainingDelay == 0
}

// View returns an immutable copy of the packet state for observers.
func (p *Packet) View() PacketView {
	return PacketView{
		ID:             p.ID,
		Size:           p.Size,
		ArrivalTime:    p.ArrivalTime,
		RemainingDelay: p.remainingDelay,
	}
}

// String renders the packet as [id, arrivalTime, remainingDelay].
func (p *Packet) String() string {
	return p.View().String()
}

// PacketView is a value snapshot of a Packet.
type PacketView struct {
	ID             int64 `json:"id"`
	Size           int   `json:"size"`
	ArrivalTime    int64 `json:"arrival_time"`
	RemainingDelay int   `json:"remaining_delay"`
}

func (v PacketView) String() string {
	return fmt.Sprintf("[%d, %d, %d]", v.ID, v.ArrivalTime, v.RemainingDelay)
}

// PacketCounter hands out packet identities for one simulation run.
// The zero value is ready to use and emits 1 first.
type PacketCounter struct {
	count int64
}

// Next returns the next packet id.
func (c *PacketCounter) Next() int64 {
	c.count++
	return c.count
}

// Count returns the number of ids handed out since the last reset.
func (c *PacketCounter) Count() int64 {
	return c.count
}

// Reset sets the counter so that the next id is n+1. Negative values are rejected.
func (c *PacketCounter) Reset(n int64) error {
	if n < 0 {
		return fmt.Errorf("packet count cannot be negative, got %d: %w", n, ErrInvalidArgument)
	}
	c.count = n
	return nil
}
