package telemetry

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.Child("child").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background()).(noOpCollector)
	assert.True(t, ok)

	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)
	retrieved, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.True(t, retrieved == collector)
}

func TestTimingCollectorNesting(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = fakeClock(time.Millisecond)

	run := collector.Start("run")
	load := collector.Start("loader.load")
	parse := collector.Start("parser.parse")
	parse.End()
	load.End()
	save := collector.Start("loader.save")
	save.End()
	run.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	expected := "run: 7ms\n" +
		"├─ loader.load: 3ms\n" +
		"│  └─ parser.parse: 1ms\n" +
		"└─ loader.save: 1ms\n"
	assert.Equal(t, expected, buf.String())
}

func TestTimerChild(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = fakeClock(time.Millisecond)

	root := collector.Start("check")
	child := root.Child("validate")
	child.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Contains(t, buf.String(), "└─ validate: 1ms")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5ms", formatDuration(5*time.Millisecond))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
}
