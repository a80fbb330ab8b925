package sim

import (
	"testing"

	"github.com/packet-sim/packet-sim/sim/internal/testutil"
)

// routersWithLengths builds routers of the given capacity pre-filled to each length.
func routersWithLengths(t *testing.T, capacity int, lengths ...int) []*RouterQueue {
	t.Helper()
	var id int64
	routers := make([]*RouterQueue, len(lengths))
	for i, n := range lengths {
		routers[i] = NewRouterQueue(i+1, capacity)
		for j := 0; j < n; j++ {
			id++
			if err := routers[i].Enqueue(NewPacket(id, 100, 0)); err != nil {
				t.Fatalf("filling router %d: %v", i+1, err)
			}
		}
	}
	return routers
}

// routerWithHead builds a router whose head has the given delay and whose
// starvation counter is waitTime. A negative delay leaves the router empty.
func routerWithHead(t *testing.T, id int, headDelay int, waitTime int) *RouterQueue {
	t.Helper()
	r := NewRouterQueue(id, 10)
	if headDelay >= 0 {
		p := NewPacket(int64(id), 100, 0)
		p.SetRemainingDelay(headDelay)
		if err := r.Enqueue(p); err != nil {
			t.Fatalf("filling router %d: %v", id, err)
		}
	}
	r.waitTime = waitTime
	return r
}

// scriptedRNG returns a PartitionedRNG that hands out the given sources.
func scriptedRNG(arrivals, sizes RandomSource) *PartitionedRNG {
	return NewPartitionedRNG(NewSimulationKey(0), func(name string, _ int64) RandomSource {
		if name == SubsystemArrivals {
			return arrivals
		}
		return sizes
	})
}

// baseConfig returns a valid single-router configuration with 100-unit packets (delay 1).
func baseConfig() SimConfig {
	return SimConfig{
		NumRouters:         1,
		ArrivalProbability: 0.5,
		ArrivalSlots:       3,
		MaxBufferSize:      5,
		MinPacketSize:      100,
		MaxPacketSize:      100,
		Bandwidth:          1,
		Duration:           2,
	}
}

// newScriptedSimulator builds a simulator whose arrival trials replay floats
// and then fail; sizes always take the minimum.
func newScriptedSimulator(t *testing.T, cfg SimConfig, floats []float64, opts ...SimOption) *Simulator {
	t.Helper()
	arrivals := testutil.NoArrivals()
	arrivals.Floats = floats
	s, err := NewSimulator(cfg, scriptedRNG(arrivals, &testutil.ScriptedSource{}), opts...)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// eventRecorder is an Observer that keeps everything it sees.
type eventRecorder struct {
	events    []Event
	summaries []Summary
}

func (r *eventRecorder) Observe(ev Event) { r.events = append(r.events, ev) }
func (r *eventRecorder) Finish(s Summary) { r.summaries = append(r.summaries, s) }

func (r *eventRecorder) deliveries() []DeliveryEvent {
	var out []DeliveryEvent
	for _, ev := range r.events {
		if d, ok := ev.(DeliveryEvent); ok {
			out = append(out, d)
		}
	}
	return out
}
