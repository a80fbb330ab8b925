package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLeastLoaded_TwoRoutersCapacityOne_FillsInOrderThenFails(t *testing.T) {
	// GIVEN 2 empty routers with capacity 1
	routers := routersWithLengths(t, 1, 0, 0)

	// WHEN three packets are dispatched in the same tick
	first, err := SelectLeastLoaded(routers, 1)
	require.NoError(t, err)
	require.NoError(t, routers[first].Enqueue(NewPacket(1, 100, 1)))

	second, err := SelectLeastLoaded(routers, 1)
	require.NoError(t, err)
	require.NoError(t, routers[second].Enqueue(NewPacket(2, 100, 1)))

	_, err = SelectLeastLoaded(routers, 1)

	// THEN the first goes to router 0, the second to router 1 and the third fails
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	if !errors.Is(err, ErrNoAvailableRouter) {
		t.Errorf("third dispatch: got %v, want ErrNoAvailableRouter", err)
	}
}

func TestSelectLeastLoaded_TieGoesToLowestIndex(t *testing.T) {
	routers := routersWithLengths(t, 5, 2, 1, 3, 1)

	idx, err := SelectLeastLoaded(routers, 5)

	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSelectLeastLoaded_IgnoresRoutersAtCapacity(t *testing.T) {
	// GIVEN routers with lengths [2, 2, 1] and capacity 2
	routers := routersWithLengths(t, 2, 2, 2, 1)

	idx, err := SelectLeastLoaded(routers, 2)

	// THEN only the router strictly below capacity is eligible
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestSelectLeastLoaded_AllFull_ReturnsErrNoAvailableRouter(t *testing.T) {
	routers := routersWithLengths(t, 2, 2, 2, 2)

	idx, err := SelectLeastLoaded(routers, 2)

	assert.Equal(t, -1, idx)
	if !errors.Is(err, ErrNoAvailableRouter) {
		t.Errorf("got %v, want ErrNoAvailableRouter", err)
	}
}

func TestRoundRobin_RotatesAndSkipsFullRouters(t *testing.T) {
	// GIVEN 3 routers with capacity 1, the middle one full
	routers := routersWithLengths(t, 1, 0, 1, 0)
	policy := NewDispatchPolicy("round-robin")

	// WHEN two packets are dispatched
	first, err := policy.Select(routers, 1)
	require.NoError(t, err)
	require.NoError(t, routers[first].Enqueue(NewPacket(10, 100, 0)))
	second, err := policy.Select(routers, 1)
	require.NoError(t, err)
	require.NoError(t, routers[second].Enqueue(NewPacket(11, 100, 0)))

	// THEN router 0 then router 2 are chosen, and a third attempt fails
	assert.Equal(t, 0, first)
	assert.Equal(t, 2, second)
	_, err = policy.Select(routers, 1)
	assert.ErrorIs(t, err, ErrNoAvailableRouter)
}

func TestRoundRobin_WrapsAround(t *testing.T) {
	routers := routersWithLengths(t, 10, 0, 0, 0)
	policy := NewDispatchPolicy("round-robin")

	var got []int
	for i := 0; i < 5; i++ {
		idx, err := policy.Select(routers, 10)
		require.NoError(t, err)
		got = append(got, idx)
	}

	assert.Equal(t, []int{0, 1, 2, 0, 1}, got)
}

func TestNewDispatchPolicy_DefaultIsLeastLoaded(t *testing.T) {
	assert.IsType(t, &LeastLoaded{}, NewDispatchPolicy(""))
	assert.IsType(t, &LeastLoaded{}, NewDispatchPolicy("least-loaded"))
	assert.Panics(t, func() { NewDispatchPolicy("random") })
}
