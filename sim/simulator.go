// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/packet-sim/packet-sim/sim/trace"
)

type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateFinished
)

// Simulator is the core object that holds simulation time, the dispatcher,
// the intermediate routers and the running statistics of one run.
type Simulator struct {
	Clock   int64
	Horizon int64
	Config  SimConfig
	// Dispatcher collects the arrivals of the current tick; it is empty between ticks.
	Dispatcher *RouterQueue
	// Routers are the intermediate routers, in scan order for both selectors.
	Routers []*RouterQueue
	Metrics *Metrics

	ids       PacketCounter
	policy    DispatchPolicy
	arrivals  *ArrivalGenerator
	rng       *PartitionedRNG
	observers []Observer
	trace     *trace.SimulationTrace
	state     runState
}

// SimOption configures optional Simulator collaborators.
type SimOption func(*Simulator)

// WithObserver registers an observer of the event stream. Observers are
// notified in registration order.
func WithObserver(o Observer) SimOption {
	return func(s *Simulator) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithTrace records dispatch and drain decisions into st when its level enables it.
func WithTrace(st *trace.SimulationTrace) SimOption {
	return func(s *Simulator) {
		if st != nil && st.Config.Enabled() {
			s.trace = st
		}
	}
}

// NewSimulator validates cfg and builds a fresh simulator. Every run owns its
// own routers, counters and packet ids. Panics if rng is nil.
func NewSimulator(cfg SimConfig, rng *PartitionedRNG, opts ...SimOption) (*Simulator, error) {
	if rng == nil {
		panic("NewSimulator: rng must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	routers := make([]*RouterQueue, cfg.NumRouters)
	for i := range routers {
		routers[i] = NewRouterQueue(i+1, cfg.MaxBufferSize)
	}

	s := &Simulator{
		Clock:      0,
		Horizon:    cfg.Duration,
		Config:     cfg,
		Dispatcher: NewDispatcherQueue(),
		Routers:    routers,
		Metrics:    NewMetrics(cfg.NumRouters),
		policy:     NewDispatchPolicy(cfg.DispatchPolicy),
		rng:        rng,
		arrivals: NewArrivalGenerator(cfg.slots(), cfg.ArrivalProbability, cfg.MinPacketSize, cfg.MaxPacketSize,
			rng.ForSubsystem(SubsystemArrivals), rng.ForSubsystem(SubsystemSizes)),
		state: stateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run advances the simulation from tick 1 through Horizon and returns the summary.
// A Simulator runs once; calling Run again panics.
func (sim *Simulator) Run() Summary {
	if sim.state != stateIdle {
		panic("Simulator.Run: simulator has already run")
	}
	sim.state = stateRunning
	if err := sim.ids.Reset(0); err != nil {
		panic(err)
	}

	runID := xid.New().String()
	logrus.Infof("Starting run %s: routers=%d, buffer=%d, bandwidth=%d, duration=%d, arrivalProb=%.3f",
		runID, sim.Config.NumRouters, sim.Config.MaxBufferSize, sim.Config.Bandwidth, sim.Horizon, sim.Config.ArrivalProbability)

	for sim.Clock < sim.Horizon {
		sim.Clock++
		sim.step(sim.Clock)
	}
	sim.state = stateFinished

	summary := sim.Metrics.Summarize(sim.Clock, sim.inFlight())
	summary.RunID = runID
	summary.Seed = int64(sim.rng.Key())
	for _, o := range sim.observers {
		o.Finish(summary)
	}
	logrus.Infof("[tick %07d] Simulation ended: delivered=%d, dropped=%d, avgServiceTime=%.2f",
		sim.Clock, summary.TotalPacketsDelivered, summary.TotalPacketsDropped, summary.AverageServiceTime)
	return summary
}

// step executes one tick: arrivals, dispatch, transit decay, drain.
func (sim *Simulator) step(tick int64) {
	logrus.Debugf("[tick %07d] Executing tick", tick)
	sim.emit(TickStartEvent{Time: tick})

	sim.generateArrivals(tick)

	// Dispatch order is FIFO arrival order within the tick
	for sim.Dispatcher.Len() > 0 {
		sim.dispatch(tick, mustDequeue(sim.Dispatcher))
	}

	// Only the head of each router decays
	for _, r := range sim.Routers {
		if head := r.Peek(); head != nil {
			head.SetRemainingDelay(head.RemainingDelay() - 1)
		}
	}

	for i := 0; i < sim.Config.Bandwidth; i++ {
		if !sim.drainOne(tick) {
			break
		}
	}

	snapshots := make([]RouterSnapshot, len(sim.Routers))
	for i, r := range sim.Routers {
		snapshots[i] = r.Snapshot()
	}
	sim.emit(TickEndEvent{Time: tick, Routers: snapshots})
}

// generateArrivals creates this tick's packets and places them at the dispatcher.
func (sim *Simulator) generateArrivals(tick int64) {
	packets := sim.arrivals.Generate(tick, &sim.ids)
	views := make([]PacketView, len(packets))
	for i, p := range packets {
		mustEnqueue(sim.Dispatcher, p)
		views[i] = p.View()
		logrus.Debugf("[tick %07d] << Arrival: packet %d with size %d", tick, p.ID, p.Size)
	}
	sim.Metrics.CreatedPackets += int64(len(packets))
	sim.emit(ArrivalEvent{Time: tick, Packets: views})
}

// dispatch routes one packet from the dispatcher, or drops it when every router is full.
func (sim *Simulator) dispatch(tick int64, p *Packet) {
	var candidates []trace.RouterLoad
	if sim.trace != nil {
		candidates = sim.routerLoads()
	}

	idx, err := sim.policy.Select(sim.Routers, sim.Config.MaxBufferSize)
	if err != nil {
		if !errors.Is(err, ErrNoAvailableRouter) {
			panic(fmt.Sprintf("dispatch: unexpected selector error: %v", err))
		}
		sim.Metrics.DroppedPackets++
		logrus.Warnf("[tick %07d] Network is congested, packet %d dropped", tick, p.ID)
		if sim.trace != nil {
			sim.trace.RecordDispatch(trace.DispatchRecord{
				PacketID: p.ID, Tick: tick, ChosenRouter: -1, Dropped: true, Candidates: candidates,
			})
		}
		sim.emit(DropEvent{Time: tick, Packet: p.View()})
		return
	}

	r := sim.Routers[idx]
	idle := r.Len() == 0
	if idle {
		// Entering an idle router costs one tick of routing setup
		p.SetRemainingDelay(p.RemainingDelay() + 1)
	}
	mustEnqueue(r, p)
	sim.Metrics.RecordDispatch(idx, r.Len())
	logrus.Debugf("[tick %07d] Packet %d sent to router %d", tick, p.ID, r.ID)

	if sim.trace != nil {
		sim.trace.RecordDispatch(trace.DispatchRecord{
			PacketID: p.ID, Tick: tick, ChosenRouter: r.ID, IdleEntry: idle, Candidates: candidates,
		})
	}
	sim.emit(DispatchEvent{Time: tick, Packet: p.View(), RouterIndex: idx, RouterID: r.ID, IdleEntry: idle})
}

// drainOne lets the most starved ready router send one packet. Returns false
// when no router can send, which ends the drain phase for the tick.
func (sim *Simulator) drainOne(tick int64) bool {
	var candidates []trace.RouterLoad
	if sim.trace != nil {
		candidates = sim.routerLoads()
	}

	idx, err := SelectMostStarved(sim.Routers)
	if err != nil {
		if !errors.Is(err, ErrNoAvailableRouter) {
			panic(fmt.Sprintf("drain: unexpected selector error: %v", err))
		}
		return false
	}

	r := sim.Routers[idx]
	p := mustDequeue(r)
	serviceTime := tick - p.ArrivalTime
	sim.Metrics.RecordDelivery(idx, serviceTime)
	logrus.Debugf("[tick %07d] Packet %d delivered from router %d: +%d", tick, p.ID, r.ID, serviceTime)

	if sim.trace != nil {
		sim.trace.RecordDrain(trace.DrainRecord{
			Tick: tick, ChosenRouter: r.ID, WaitTime: candidates[idx].WaitTime, Candidates: candidates,
		})
	}
	sim.emit(DeliveryEvent{Time: tick, Packet: p.View(), RouterIndex: idx, RouterID: r.ID, ServiceTime: serviceTime})
	return true
}

// routerLoads captures the decision-time state of every router for the trace.
func (sim *Simulator) routerLoads() []trace.RouterLoad {
	loads := make([]trace.RouterLoad, len(sim.Routers))
	for i, r := range sim.Routers {
		headDelay := -1
		if head := r.Peek(); head != nil {
			headDelay = head.RemainingDelay()
		}
		loads[i] = trace.RouterLoad{RouterID: r.ID, Length: r.Len(), WaitTime: r.WaitTime(), HeadDelay: headDelay}
	}
	return loads
}

// inFlight counts packets still buffered in intermediate routers.
func (sim *Simulator) inFlight() int64 {
	var n int64
	for _, r := range sim.Routers {
		n += int64(r.Len())
	}
	return n
}

func (sim *Simulator) emit(ev Event) {
	for _, o := range sim.observers {
		o.Observe(ev)
	}
}

// mustDequeue removes the head of a queue the caller has proven non-empty.
func mustDequeue(q *RouterQueue) *Packet {
	p, err := q.Dequeue()
	if err != nil {
		panic(fmt.Sprintf("invariant violated: %v", err))
	}
	return p
}

// mustEnqueue appends to a queue the caller has proven not full.
func mustEnqueue(q *RouterQueue, p *Packet) {
	if err := q.Enqueue(p); err != nil {
		panic(fmt.Sprintf("invariant violated: %v", err))
	}
}
