package sim

import "fmt"

// SimConfig groups the parameters of one simulation run.
type SimConfig struct {
	NumRouters         int     // number of intermediate routers (> 0)
	ArrivalProbability float64 // per-slot arrival probability in [0, 1]
	ArrivalSlots       int     // arrival trials per tick (0 = DefaultArrivalSlots)
	MaxBufferSize      int     // capacity shared by every intermediate router (> 0)
	MinPacketSize      int     // smallest packet size (> 0)
	MaxPacketSize      int     // largest packet size (>= MinPacketSize)
	Bandwidth          int     // max packets drained per tick (> 0)
	Duration           int64   // ticks to simulate (> 0)
	DispatchPolicy     string  // "least-loaded" (default) or "round-robin"
}

// slots returns the effective number of arrival trials per tick.
func (c SimConfig) slots() int {
	if c.ArrivalSlots == 0 {
		return DefaultArrivalSlots
	}
	return c.ArrivalSlots
}

// Validate checks every parameter range. Errors wrap ErrInvalidArgument.
func (c SimConfig) Validate() error {
	if c.NumRouters <= 0 {
		return fmt.Errorf("number of routers must be greater than 0, got %d: %w", c.NumRouters, ErrInvalidArgument)
	}
	if c.ArrivalProbability < 0 || c.ArrivalProbability > 1 {
		return fmt.Errorf("arrival probability must be between 0 and 1, got %f: %w", c.ArrivalProbability, ErrInvalidArgument)
	}
	if c.ArrivalSlots < 0 {
		return fmt.Errorf("arrival slots must be non-negative, got %d: %w", c.ArrivalSlots, ErrInvalidArgument)
	}
	if c.MaxBufferSize <= 0 {
		return fmt.Errorf("max buffer size must be greater than 0, got %d: %w", c.MaxBufferSize, ErrInvalidArgument)
	}
	if c.MinPacketSize <= 0 || c.MaxPacketSize <= 0 {
		return fmt.Errorf("packet sizes must be greater than 0, got min=%d max=%d: %w", c.MinPacketSize, c.MaxPacketSize, ErrInvalidArgument)
	}
	if c.MinPacketSize > c.MaxPacketSize {
		return fmt.Errorf("min packet size %d exceeds max packet size %d: %w", c.MinPacketSize, c.MaxPacketSize, ErrInvalidArgument)
	}
	if c.Bandwidth <= 0 {
		return fmt.Errorf("bandwidth must be greater than 0, got %d: %w", c.Bandwidth, ErrInvalidArgument)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than 0, got %d: %w", c.Duration, ErrInvalidArgument)
	}
	if !ValidDispatchPolicies[c.DispatchPolicy] {
		return fmt.Errorf("unknown dispatch policy %q: %w", c.DispatchPolicy, ErrInvalidArgument)
	}
	return nil
}
