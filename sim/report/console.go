// Package report renders simulation events and summaries for people and files.
package report

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/packet-sim/packet-sim/sim"
	"github.com/packet-sim/packet-sim/sim/trace"
)

// ConsoleReporter prints the per-tick event stream and the final summary in
// the simulator's console format. With Quiet set only the summary is printed.
type ConsoleReporter struct {
	w     io.Writer
	Quiet bool
}

// NewConsoleReporter creates a ConsoleReporter writing to w.
func NewConsoleReporter(w io.Writer, quiet bool) *ConsoleReporter {
	if w == nil {
		panic("NewConsoleReporter: writer must not be nil")
	}
	return &ConsoleReporter{w: w, Quiet: quiet}
}

// Observe implements sim.Observer.
func (c *ConsoleReporter) Observe(ev sim.Event) {
	if c.Quiet {
		return
	}
	switch e := ev.(type) {
	case sim.TickStartEvent:
		fmt.Fprintf(c.w, "Time: %d\n", e.Time)
	case sim.ArrivalEvent:
		if len(e.Packets) == 0 {
			fmt.Fprintln(c.w, "No packets arrived.")
			return
		}
		for _, p := range e.Packets {
			fmt.Fprintf(c.w, "Packet %d arrives at dispatcher with size %d.\n", p.ID, p.Size)
		}
	case sim.DispatchEvent:
		fmt.Fprintf(c.w, "Packet %d sent to router %d.\n", e.Packet.ID, e.RouterID)
	case sim.DropEvent:
		fmt.Fprintf(c.w, "Network is congested. Packet %d is dropped.\n", e.Packet.ID)
	case sim.DeliveryEvent:
		fmt.Fprintf(c.w, "Packet %d has successfully reached its destination: +%d\n", e.Packet.ID, e.ServiceTime)
	case sim.TickEndEvent:
		for _, r := range e.Routers {
			fmt.Fprintf(c.w, "R%d: %s\n", r.ID, r)
		}
		fmt.Fprintln(c.w)
	}
}

// Finish implements sim.Observer.
func (c *ConsoleReporter) Finish(s sim.Summary) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, "Simulation ending...")
	fmt.Fprintf(c.w, "Total service time: %d\n", s.TotalServiceTime)
	fmt.Fprintf(c.w, "Total packets served: %d\n", s.TotalPacketsDelivered)
	fmt.Fprintf(c.w, "Average service time per packet: %.2f\n", s.AverageServiceTime)
	fmt.Fprintf(c.w, "Total packets dropped: %d\n", s.TotalPacketsDropped)
}

// PrintTraceSummary writes the aggregated decision trace.
func PrintTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace Summary ===")
	fmt.Fprintf(w, "Dispatch decisions   : %d\n", ts.TotalDispatches)
	fmt.Fprintf(w, "Dropped              : %d\n", ts.DroppedCount)
	fmt.Fprintf(w, "Idle router entries  : %d\n", ts.IdleEntries)
	fmt.Fprintf(w, "Drain decisions      : %d\n", ts.TotalDrains)
	fmt.Fprintf(w, "Mean drain wait      : %.2f\n", ts.MeanDrainWait)
	fmt.Fprintf(w, "Max drain wait       : %d\n", ts.MaxDrainWait)
	fmt.Fprintf(w, "Unique targets       : %d\n", ts.UniqueTargets)
	for _, id := range sortedKeys(ts.DispatchDistribution) {
		fmt.Fprintf(w, "  R%d: dispatched=%d drained=%d\n", id, ts.DispatchDistribution[id], ts.DrainDistribution[id])
	}
}

// sortedKeys returns map keys in ascending order for deterministic output.
func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
