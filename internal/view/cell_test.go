package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_ResolveSettlesData(t *testing.T) {
	cell := NewCell[[]string]()

	token := cell.Begin()
	assert.True(t, cell.Snapshot().Loading)

	require.True(t, cell.Resolve(token, []string{"a", "b"}))

	snap := cell.Snapshot()
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
	assert.True(t, snap.HasData)
	assert.Equal(t, []string{"a", "b"}, snap.Data)
}

func TestCell_FailSettlesError(t *testing.T) {
	cell := NewCell[int]()

	token := cell.Begin()
	require.True(t, cell.Fail(token, errors.New("upstream down")))

	snap := cell.Snapshot()
	assert.False(t, snap.Loading)
	assert.Error(t, snap.Err)
	assert.False(t, snap.HasData)
}

func TestCell_StaleResolveDiscarded(t *testing.T) {
	cell := NewCell[string]()

	stale := cell.Begin()
	latest := cell.Begin()

	assert.False(t, cell.Resolve(stale, "old"))
	require.True(t, cell.Resolve(latest, "new"))

	snap := cell.Snapshot()
	assert.Equal(t, "new", snap.Data)
}

func TestCell_StaleFailureDiscarded(t *testing.T) {
	cell := NewCell[string]()

	stale := cell.Begin()
	latest := cell.Begin()

	require.True(t, cell.Resolve(latest, "fresh"))
	assert.False(t, cell.Fail(stale, errors.New("slow request finally failed")))

	snap := cell.Snapshot()
	assert.NoError(t, snap.Err)
	assert.Equal(t, "fresh", snap.Data)
}

func TestCell_StatesMutuallyExclusive(t *testing.T) {
	cell := NewCell[int]()

	token := cell.Begin()
	require.True(t, cell.Fail(token, errors.New("boom")))

	// A new request clears the previous error while loading.
	token = cell.Begin()
	snap := cell.Snapshot()
	assert.True(t, snap.Loading)
	assert.NoError(t, snap.Err)

	require.True(t, cell.Resolve(token, 42))
	snap = cell.Snapshot()
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
	assert.Equal(t, 42, snap.Data)
}

func TestCell_SubscribeAndUnsubscribe(t *testing.T) {
	cell := NewCell[int]()

	var events []Snapshot[int]
	unsubscribe := cell.Subscribe(func(s Snapshot[int]) {
		events = append(events, s)
	})

	token := cell.Begin()
	cell.Resolve(token, 7)

	require.Len(t, events, 2)
	assert.True(t, events[0].Loading)
	assert.Equal(t, 7, events[1].Data)

	unsubscribe()
	cell.Begin()
	assert.Len(t, events, 2)
}
