package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches      int
	DroppedCount         int
	IdleEntries          int
	TotalDrains          int
	MeanDrainWait        float64
	MaxDrainWait         int
	UniqueTargets        int
	DispatchDistribution map[int]int // router id → packets dispatched to it
	DrainDistribution    map[int]int // router id → packets drained from it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchDistribution: make(map[int]int),
		DrainDistribution:    make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		if d.Dropped {
			summary.DroppedCount++
			continue
		}
		summary.DispatchDistribution[d.ChosenRouter]++
		if d.IdleEntry {
			summary.IdleEntries++
		}
	}

	if len(st.Drains) > 0 {
		totalWait := 0
		for _, d := range st.Drains {
			summary.DrainDistribution[d.ChosenRouter]++
			totalWait += d.WaitTime
			if d.WaitTime > summary.MaxDrainWait {
				summary.MaxDrainWait = d.WaitTime
			}
		}
		summary.TotalDrains = len(st.Drains)
		summary.MeanDrainWait = float64(totalWait) / float64(len(st.Drains))
	}

	summary.UniqueTargets = len(summary.DispatchDistribution)

	return summary
}
