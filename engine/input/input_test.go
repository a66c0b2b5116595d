package input_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/engine/input"
)

type collector struct {
	mu     sync.Mutex
	events []input.Event
}

func (c *collector) Notify(e input.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collector) Events() []input.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]input.Event(nil), c.events...)
}

func TestKeyDownNotifiesOnce(t *testing.T) {
	c := &collector{}
	n := input.NewNotifier(c)

	consumed := n.KeyDown(65)

	assert.True(t, consumed)
	assert.Equal(t, []input.Event{{Direction: input.Down, Code: 65}}, c.Events())
}

func TestKeyUpNotifies(t *testing.T) {
	c := &collector{}
	n := input.NewNotifier(c)

	assert.True(t, n.KeyDown(32))
	assert.True(t, n.KeyUp(32))

	assert.Equal(t, []input.Event{
		{Direction: input.Down, Code: 32},
		{Direction: input.Up, Code: 32},
	}, c.Events())
}

func TestNilSinkStillConsumes(t *testing.T) {
	n := input.NewNotifier(nil)
	assert.True(t, n.KeyDown(1))
	assert.True(t, n.KeyUp(1))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := input.NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	input.NewNotifier(sink).KeyDown(65)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "key event", entry["msg"])
	assert.Equal(t, "down", entry["direction"])
	assert.EqualValues(t, 65, entry["code"])
	assert.Equal(t, "A", entry["key"])
}

func TestAsyncSinkPreservesOrder(t *testing.T) {
	c := &collector{}
	sink := input.NewAsyncSink(c, 4)
	defer sink.Close()
	n := input.NewNotifier(sink)

	for code := range uint32(50) {
		n.KeyDown(code)
		n.KeyUp(code)
	}
	sink.Flush()

	events := c.Events()
	require.Len(t, events, 100)
	for i, e := range events {
		assert.Equal(t, uint32(i/2), e.Code)
		if i%2 == 0 {
			assert.Equal(t, input.Down, e.Direction)
		} else {
			assert.Equal(t, input.Up, e.Direction)
		}
	}
}

func TestAsyncSinkDropsAfterClose(t *testing.T) {
	c := &collector{}
	sink := input.NewAsyncSink(c, 0)

	sink.Notify(input.Event{Direction: input.Down, Code: 1})
	sink.Close()
	sink.Close()
	sink.Notify(input.Event{Direction: input.Down, Code: 2})

	assert.Equal(t, []input.Event{{Direction: input.Down, Code: 1}}, c.Events())
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "down", input.Down.String())
	assert.Equal(t, "up", input.Up.String())
}
