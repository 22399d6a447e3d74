package logstream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_RetainsAtMostMaxEntries(t *testing.T) {
	stream := New()

	for i := 0; i < maxEntries+20; i++ {
		stream.Info(fmt.Sprintf("entry %d", i), nil)
	}

	entries := stream.Entries()
	require.Len(t, entries, maxEntries)
	// Oldest entries are dropped first.
	assert.Equal(t, "entry 20", entries[0].Message)
	assert.Equal(t, fmt.Sprintf("entry %d", maxEntries+19), entries[len(entries)-1].Message)
}

func TestStream_LevelsAndData(t *testing.T) {
	stream := New()

	stream.Info("info", nil)
	stream.Warn("warn", "detail")
	stream.Error("error", nil)
	stream.Success("success", nil)

	entries := stream.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, LevelInfo, entries[0].Level)
	assert.Equal(t, LevelWarn, entries[1].Level)
	assert.Equal(t, "detail", entries[1].Data)
	assert.Equal(t, LevelError, entries[2].Level)
	assert.Equal(t, LevelSuccess, entries[3].Level)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestStream_Clear(t *testing.T) {
	stream := New()
	stream.Info("something", nil)

	stream.Clear()

	assert.Empty(t, stream.Entries())
}

func TestStream_SubscribeReceivesNewEntries(t *testing.T) {
	stream := New()
	ch, cancel := stream.Subscribe()
	defer cancel()

	stream.Success("bot started", nil)

	entry := <-ch
	assert.Equal(t, LevelSuccess, entry.Level)
	assert.Equal(t, "bot started", entry.Message)
}

func TestStream_SlowSubscriberDoesNotBlock(t *testing.T) {
	stream := New()
	_, cancel := stream.Subscribe()
	defer cancel()

	// Fill the subscriber buffer well past capacity; Log must not block.
	for i := 0; i < 100; i++ {
		stream.Info("burst", nil)
	}

	assert.Len(t, stream.Entries(), 100)
}

func TestStream_CancelIsIdempotent(t *testing.T) {
	stream := New()
	_, cancel := stream.Subscribe()

	cancel()
	assert.NotPanics(t, cancel)

	stream.Info("after cancel", nil)
}
