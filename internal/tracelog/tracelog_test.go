package tracelog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxa/partscript/internal/engine"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func sampleFiring(seq, tick int64, thingID string) engine.Firing {
	return engine.Firing{
		Seq:       seq,
		Tick:      tick,
		ThingID:   thingID,
		ThingName: "button",
		PartID:    "part-1",
		State:     0,
		Event:     "touches",
		Actions:   2,
	}
}

func TestLog_RecordRoundTrip(t *testing.T) {
	log := openTestLog(t)

	log.Record(sampleFiring(1, 0, "thing-1"))
	log.Record(sampleFiring(2, 1, "thing-1"))
	require.NoError(t, log.Err())

	firings, err := log.Firings(context.Background(), All())
	require.NoError(t, err)
	require.Len(t, firings, 2)
	assert.Equal(t, sampleFiring(1, 0, "thing-1"), firings[0])
	assert.Equal(t, sampleFiring(2, 1, "thing-1"), firings[1])
}

func TestLog_RecordIgnoresDuplicateSeq(t *testing.T) {
	log := openTestLog(t)

	log.Record(sampleFiring(1, 0, "thing-1"))
	log.Record(sampleFiring(1, 5, "thing-2"))
	require.NoError(t, log.Err())

	n, err := log.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	firings, err := log.Firings(context.Background(), All())
	require.NoError(t, err)
	assert.Equal(t, int64(0), firings[0].Tick, "first insert wins")
}

func TestLog_FiringsFilters(t *testing.T) {
	log := openTestLog(t)

	log.Record(sampleFiring(1, 0, "a"))
	log.Record(sampleFiring(2, 1, "a"))
	log.Record(sampleFiring(3, 1, "b"))
	require.NoError(t, log.Err())

	byTick, err := log.Firings(context.Background(), Filter{Tick: 1})
	require.NoError(t, err)
	assert.Len(t, byTick, 2)

	byThing, err := log.Firings(context.Background(), Filter{Tick: -1, ThingID: "b"})
	require.NoError(t, err)
	require.Len(t, byThing, 1)
	assert.Equal(t, int64(3), byThing[0].Seq)

	both, err := log.Firings(context.Background(), Filter{Tick: 1, ThingID: "a"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, int64(2), both[0].Seq)
}

func TestLog_FiringsEmptyIsNotNil(t *testing.T) {
	log := openTestLog(t)

	firings, err := log.Firings(context.Background(), All())
	require.NoError(t, err)
	assert.NotNil(t, firings)
	assert.Empty(t, firings)
}
