package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRuns_RepeatedRuns(t *testing.T) {
	// GIVEN two quiet runs with decision tracing
	cfg := DefaultRunConfig()
	cfg.Runs = 2
	cfg.Duration = 10
	cfg.TraceLevel = "decisions"
	var out bytes.Buffer

	// WHEN they execute
	summaries, err := executeRuns(cfg, &out, RunOptions{Quiet: true, SummarizeTrace: true})

	// THEN each run is headed, summarized and seeded with seed+i
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, int64(42), summaries[0].Seed)
	assert.Equal(t, int64(43), summaries[1].Seed)
	assert.NotEqual(t, summaries[0].RunID, summaries[1].RunID)

	text := out.String()
	assert.Contains(t, text, "=== Run 1 of 2 ===\n")
	assert.Contains(t, text, "=== Run 2 of 2 ===\n")
	assert.Equal(t, 2, strings.Count(text, "Simulation ending..."))
	assert.Equal(t, 2, strings.Count(text, "=== Decision Trace Summary ==="))
	assert.NotContains(t, text, "Time: 1\n", "quiet runs print no ticks")
}

func TestExecuteRuns_SingleRun_PrintsTicks(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Duration = 3
	var out bytes.Buffer

	summaries, err := executeRuns(cfg, &out, RunOptions{})

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	text := out.String()
	assert.NotContains(t, text, "=== Run")
	assert.True(t, strings.HasPrefix(text, "Time: 1\n"))
	assert.Contains(t, text, "Time: 3\n")
	assert.Contains(t, text, "R4: ")
	assert.NotContains(t, text, "Decision Trace Summary")
}

func TestExecuteRuns_SameSeed_SameOutput(t *testing.T) {
	cfg := DefaultRunConfig()
	var a, b bytes.Buffer

	_, err := executeRuns(cfg, &a, RunOptions{})
	require.NoError(t, err)
	_, err = executeRuns(cfg, &b, RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestExecuteRuns_UnknownBackend(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.RNG = "dice"
	_, err := executeRuns(cfg, &bytes.Buffer{}, RunOptions{})
	assert.Error(t, err)
}
