package sim

// DefaultArrivalSlots is the number of independent arrival trials per tick.
const DefaultArrivalSlots = 3

// ArrivalGenerator creates the packets that arrive at the dispatcher in one tick.
type ArrivalGenerator struct {
	slots       int
	probability float64
	minSize     int
	maxSize     int
	trials      RandomSource
	sizes       RandomSource
}

// NewArrivalGenerator builds a generator with slots Bernoulli trials per tick and
// uniform packet sizes in [minSize, maxSize]. Panics on a nil source.
func NewArrivalGenerator(slots int, probability float64, minSize, maxSize int, trials, sizes RandomSource) *ArrivalGenerator {
	if trials == nil || sizes == nil {
		panic("NewArrivalGenerator: random sources must not be nil")
	}
	return &ArrivalGenerator{
		slots:       slots,
		probability: probability,
		minSize:     minSize,
		maxSize:     maxSize,
		trials:      trials,
		sizes:       sizes,
	}
}

// Count runs the per-slot trials and returns how many packets arrive.
func (g *ArrivalGenerator) Count() int {
	n := 0
	for i := 0; i < g.slots; i++ {
		if g.trials.Float64() < g.probability {
			n++
		}
	}
	return n
}

// SampleSize draws a packet size uniformly from [minSize, maxSize].
func (g *ArrivalGenerator) SampleSize() int {
	return g.minSize + g.sizes.Intn(g.maxSize-g.minSize+1)
}

// Generate creates this tick's arrivals. Ids come from ids in creation order.
// All trials run before any size is drawn.
func (g *ArrivalGenerator) Generate(tick int64, ids *PacketCounter) []*Packet {
	n := g.Count()
	if n == 0 {
		return nil
	}
	packets := make([]*Packet, n)
	for i := range packets {
		packets[i] = NewPacket(ids.Next(), g.SampleSize(), tick)
	}
	return packets
}
