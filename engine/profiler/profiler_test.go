package profiler_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-triangle/engine/profiler"
)

func TestTickLogsEachInterval(t *testing.T) {
	var buf bytes.Buffer
	now := time.Unix(0, 0)
	p := profiler.NewProfiler(
		profiler.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		profiler.WithInterval(time.Second),
		profiler.WithTimeSource(func() time.Time { return now }),
	)

	for range 49 {
		now = now.Add(20 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = now.Add(20 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.InDelta(t, 50, p.Last().FPS, 1e-9)
	assert.Contains(t, buf.String(), "[Profiler]")
	assert.Contains(t, buf.String(), "fps=")
}

func TestCounterResetsAfterLog(t *testing.T) {
	now := time.Unix(0, 0)
	p := profiler.NewProfiler(
		profiler.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		profiler.WithTimeSource(func() time.Time { return now }),
	)

	now = now.Add(2 * time.Second)
	assert.True(t, p.Tick())
	assert.InDelta(t, 0.5, p.Last().FPS, 1e-9)

	now = now.Add(500 * time.Millisecond)
	assert.False(t, p.Tick())
}
