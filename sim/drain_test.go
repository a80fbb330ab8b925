package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMostStarved_CandidateBeforeEmptyRouter_Wins(t *testing.T) {
	// GIVEN router 0 with a ready head and waitTime 3, router 1 empty
	routers := []*RouterQueue{
		routerWithHead(t, 1, 0, 3),
		routerWithHead(t, 2, -1, 0),
	}

	// WHEN the drain selector scans and stops at router 1
	idx, err := SelectMostStarved(routers)

	// THEN router 0, found before the early stop, still wins and is reset
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, routers[0].WaitTime())
}

func TestSelectMostStarved_NotReadyHead_ResetsAndIsSkipped(t *testing.T) {
	// GIVEN router 0 whose head still owes delay, router 1 ready
	routers := []*RouterQueue{
		routerWithHead(t, 1, 2, 5),
		routerWithHead(t, 2, 0, 0),
	}

	idx, err := SelectMostStarved(routers)

	// THEN router 1 is chosen and router 0's counter is reset
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, routers[0].WaitTime())
	assert.Equal(t, 0, routers[1].WaitTime())
}

func TestSelectMostStarved_StrictMaxWaitWins(t *testing.T) {
	// GIVEN three ready routers with wait times [2, 4, 4]
	routers := []*RouterQueue{
		routerWithHead(t, 1, 0, 2),
		routerWithHead(t, 2, 0, 4),
		routerWithHead(t, 3, 0, 4),
	}

	idx, err := SelectMostStarved(routers)

	// THEN the first router with the greatest wait wins; every other ready router waits one more
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []int{3, 0, 5}, waitTimes(routers))
}

func TestSelectMostStarved_TieGoesToLowestIndex(t *testing.T) {
	routers := []*RouterQueue{
		routerWithHead(t, 1, 0, 0),
		routerWithHead(t, 2, 0, 0),
		routerWithHead(t, 3, 0, 0),
	}

	idx, err := SelectMostStarved(routers)

	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []int{0, 1, 1}, waitTimes(routers))
}

func TestSelectMostStarved_EmptyRouterTruncatesScan(t *testing.T) {
	// GIVEN a not-ready router, an empty router, then a long-starved ready router
	routers := []*RouterQueue{
		routerWithHead(t, 1, 1, 3),
		routerWithHead(t, 2, -1, 0),
		routerWithHead(t, 3, 0, 7),
	}

	_, err := SelectMostStarved(routers)

	// THEN the ready router after the empty one is never considered
	if !errors.Is(err, ErrNoAvailableRouter) {
		t.Fatalf("got %v, want ErrNoAvailableRouter", err)
	}
	assert.Equal(t, 0, routers[0].WaitTime(), "scanned not-ready router is reset")
	assert.Equal(t, 7, routers[2].WaitTime(), "routers after the empty one are untouched")
}

func TestSelectMostStarved_AllEmpty_ReturnsErrNoAvailableRouter(t *testing.T) {
	routers := routersWithLengths(t, 5, 0, 0)

	idx, err := SelectMostStarved(routers)

	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, ErrNoAvailableRouter)
}

func TestSelectMostStarved_NeverSelectsNotReadyHead(t *testing.T) {
	routers := []*RouterQueue{
		routerWithHead(t, 1, 1, 9),
		routerWithHead(t, 2, 3, 9),
	}

	_, err := SelectMostStarved(routers)

	assert.ErrorIs(t, err, ErrNoAvailableRouter)
	assert.Equal(t, []int{0, 0}, waitTimes(routers))
}

func TestSelectMostStarved_RepeatedDrains_Alternate(t *testing.T) {
	// GIVEN two routers full of ready packets
	routers := routersWithLengths(t, 10, 4, 4)
	for _, r := range routers {
		for _, p := range r.Packets() {
			p.SetRemainingDelay(0)
		}
	}

	// WHEN four packets are drained one at a time
	var chosen []int
	for i := 0; i < 4; i++ {
		idx, err := SelectMostStarved(routers)
		require.NoError(t, err)
		_, err = routers[idx].Dequeue()
		require.NoError(t, err)
		chosen = append(chosen, idx)
	}

	// THEN the starvation counter makes them take turns
	assert.Equal(t, []int{0, 1, 0, 1}, chosen)
}

func waitTimes(routers []*RouterQueue) []int {
	out := make([]int, len(routers))
	for i, r := range routers {
		out[i] = r.WaitTime()
	}
	return out
}
