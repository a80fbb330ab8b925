package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/iti/rngstream"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey, the math backend and identical
// configuration MUST produce identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemArrivals drives the per-slot Bernoulli arrival trials.
	// Uses the master seed directly.
	SubsystemArrivals = "arrivals"

	// SubsystemSizes drives packet size draws.
	SubsystemSizes = "sizes"
)

// === Random sources ===

// RandomSource is the random draw surface the simulator needs.
// *rand.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}

// SourceFactory builds the source for one subsystem.
type SourceFactory func(subsystem string, seed int64) RandomSource

const (
	// RandomBackendMath seeds math/rand sources from the SimulationKey.
	RandomBackendMath = "math"
	// RandomBackendStream uses one L'Ecuyer MRG32k3a stream per subsystem.
	// Stream states advance per process, so the seed is ignored.
	RandomBackendStream = "stream"
)

// ValidRandomBackends is the set of recognized random backend names.
var ValidRandomBackends = map[string]bool{"": true, RandomBackendMath: true, RandomBackendStream: true}

// NewSourceFactory returns the factory for a backend name. Empty selects math.
func NewSourceFactory(backend string) (SourceFactory, error) {
	switch backend {
	case "", RandomBackendMath:
		return MathSourceFactory, nil
	case RandomBackendStream:
		return StreamSourceFactory, nil
	default:
		return nil, fmt.Errorf("unknown random backend %q: %w", backend, ErrInvalidArgument)
	}
}

// MathSourceFactory returns a math/rand source seeded with seed.
func MathSourceFactory(_ string, seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// StreamSourceFactory returns a named rngstream source. The seed is ignored.
func StreamSourceFactory(subsystem string, _ int64) RandomSource {
	return &streamSource{strm: rngstream.New(subsystem)}
}

type streamSource struct {
	strm *rngstream.RngStream
}

func (s *streamSource) Float64() float64 {
	return s.strm.RandU01()
}

func (s *streamSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("Intn: n must be > 0, got %d", n))
	}
	v := int(s.strm.RandU01() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random sources per subsystem.
//
// Derivation formula:
//   - For SubsystemArrivals: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	factory    SourceFactory
	subsystems map[string]RandomSource
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
// A nil factory selects MathSourceFactory.
func NewPartitionedRNG(key SimulationKey, factory SourceFactory) *PartitionedRNG {
	if factory == nil {
		factory = MathSourceFactory
	}
	return &PartitionedRNG{
		key:        key,
		factory:    factory,
		subsystems: make(map[string]RandomSource),
	}
}

// ForSubsystem returns the source for the named subsystem.
// The same subsystem name always returns the same instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) RandomSource {
	if src, ok := p.subsystems[name]; ok {
		return src
	}

	var derivedSeed int64
	if name == SubsystemArrivals {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	src := p.factory(name, derivedSeed)
	p.subsystems[name] = src
	return src
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
