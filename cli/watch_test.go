package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/spendlog/formatter"
	"github.com/robinvdvleuten/spendlog/loader"
)

func TestWatchFileCallsOnChange(t *testing.T) {
	filename := writeRecords(t, "Balance: 0\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- watchFile(ctx, filename, zerolog.Nop(), func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// The watcher may not be registered yet, so keep writing until it
	// reports a change.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for done := false; !done; {
		select {
		case <-changed:
			done = true
		case <-ticker.C:
			assert.NoError(t, os.WriteFile(filename, []byte("bonus gift 5\nBalance: 0\n"), 0o644))
		case <-deadline:
			t.Fatal("timed out waiting for change")
		}
	}

	cancel()
	assert.NoError(t, <-errc)
}

func TestWatchFileIgnoresOtherFiles(t *testing.T) {
	filename := writeRecords(t, "Balance: 0\n")
	other := filepath.Join(filepath.Dir(filename), "other.txt")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	calls := 0
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(other, []byte("x"), 0o644)
	}()

	assert.NoError(t, watchFile(ctx, filename, zerolog.Nop(), func() { calls++ }))
	assert.Equal(t, 0, calls)
}

func TestRenderView(t *testing.T) {
	filename := writeRecords(t, "meal lunch -10\npets dog 5\nBalance: 100\n")
	var stdout, stderr bytes.Buffer

	renderView(context.Background(), loader.New(), formatter.New(), filename, &stdout, &stderr)

	assert.Contains(t, stdout.String(), "Now you have 90 dollars.")
	assert.Contains(t, stderr.String(), `records.txt:2: invalid category "pets"`)
}
