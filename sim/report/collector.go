package report

import "github.com/packet-sim/packet-sim/sim"

// SummaryCollector keeps every summary it is handed, for writing results after
// several runs. Events are ignored.
type SummaryCollector struct {
	Summaries []sim.Summary
}

// Observe implements sim.Observer.
func (c *SummaryCollector) Observe(sim.Event) {}

// Finish implements sim.Observer.
func (c *SummaryCollector) Finish(s sim.Summary) {
	c.Summaries = append(c.Summaries, s)
}
