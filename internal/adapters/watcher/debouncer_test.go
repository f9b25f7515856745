package watcher_test

import (
	"slices"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/mason/internal/adapters/watcher"
)

func TestDebouncer_Add_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("src/main.js")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"src/main.js"}, receivedPaths)
	})
}

func TestDebouncer_Add_BurstCoalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("src/a.js")
		time.Sleep(50 * time.Millisecond)
		d.Add("src/b.js")
		time.Sleep(50 * time.Millisecond)
		d.Add("src/a.js")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		slices.Sort(receivedPaths)
		assert.Equal(t, []string{"src/a.js", "src/b.js"}, receivedPaths)
	})
}

func TestDebouncer_Add_WindowResetsPerEvent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
		})

		// Events keep arriving inside the window, so nothing fires yet.
		for range 5 {
			d.Add("src/a.js")
			time.Sleep(60 * time.Millisecond)
		}
		require.Equal(t, 0, callCount)

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	var receivedPaths []string

	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		receivedPaths = paths
	})

	d.Add("src/a.js")
	d.Flush()

	assert.Equal(t, []string{"src/a.js"}, receivedPaths)
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	var callCount int

	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		callCount++
	})

	d.Flush()
	assert.Equal(t, 0, callCount)
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("src/a.js")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
	})
}
