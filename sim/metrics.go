// Tracks simulation-wide packet statistics: arrivals, deliveries, drops and service times.

package sim

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	CreatedPackets   int64 // Packets generated at the dispatcher
	DeliveredPackets int64 // Packets that reached the destination
	DroppedPackets   int64 // Packets dropped because every router was full
	TotalServiceTime int64 // Sum of (delivery tick - arrival tick) over delivered packets

	ServiceTimes        []int64 // Per-delivery service time, in delivery order
	DeliveredPerRouter  []int64 // Deliveries per router index
	DispatchedPerRouter []int64 // Dispatches per router index
	PeakQueueLength     []int   // Max queue length seen per router index
}

// NewMetrics creates Metrics for numRouters intermediate routers.
func NewMetrics(numRouters int) *Metrics {
	return &Metrics{
		ServiceTimes:        make([]int64, 0),
		DeliveredPerRouter:  make([]int64, numRouters),
		DispatchedPerRouter: make([]int64, numRouters),
		PeakQueueLength:     make([]int, numRouters),
	}
}

// RecordDispatch counts a packet entering router idx, whose length is now length.
func (m *Metrics) RecordDispatch(idx int, length int) {
	m.DispatchedPerRouter[idx]++
	if length > m.PeakQueueLength[idx] {
		m.PeakQueueLength[idx] = length
	}
}

// RecordDelivery counts a delivered packet and its service time.
func (m *Metrics) RecordDelivery(idx int, serviceTime int64) {
	m.DeliveredPackets++
	m.TotalServiceTime += serviceTime
	m.ServiceTimes = append(m.ServiceTimes, serviceTime)
	m.DeliveredPerRouter[idx]++
}

// AverageServiceTime returns TotalServiceTime / DeliveredPackets, or 0 with no deliveries.
func (m *Metrics) AverageServiceTime() float64 {
	if m.DeliveredPackets == 0 {
		return 0
	}
	return float64(m.TotalServiceTime) / float64(m.DeliveredPackets)
}

// Summary is the final report of one simulation run.
type Summary struct {
	RunID                 string       `json:"run_id"`
	Seed                  int64        `json:"seed"`
	Ticks                 int64        `json:"ticks"`
	TotalPacketsCreated   int64        `json:"total_packets_created"`
	TotalPacketsDelivered int64        `json:"total_packets_delivered"`
	TotalPacketsDropped   int64        `json:"total_packets_dropped"`
	TotalServiceTime      int64        `json:"total_service_time"`
	AverageServiceTime    float64      `json:"average_service_time"`
	ServiceTime           Distribution `json:"service_time"`
	InFlightPackets       int64        `json:"in_flight_packets"` // still queued in routers at the end
	DeliveredPerRouter    []int64      `json:"delivered_per_router"`
	DispatchedPerRouter   []int64      `json:"dispatched_per_router"`
	PeakQueueLength       []int        `json:"peak_queue_length"`
}

// Summarize builds the Summary for a finished run.
func (m *Metrics) Summarize(ticks int64, inFlight int64) Summary {
	return Summary{
		Ticks:                 ticks,
		TotalPacketsCreated:   m.CreatedPackets,
		TotalPacketsDelivered: m.DeliveredPackets,
		TotalPacketsDropped:   m.DroppedPackets,
		TotalServiceTime:      m.TotalServiceTime,
		AverageServiceTime:    m.AverageServiceTime(),
		ServiceTime:           NewDistribution(m.ServiceTimes),
		InFlightPackets:       inFlight,
		DeliveredPerRouter:    append([]int64(nil), m.DeliveredPerRouter...),
		DispatchedPerRouter:   append([]int64(nil), m.DispatchedPerRouter...),
		PeakQueueLength:       append([]int(nil), m.PeakQueueLength...),
	}
}
