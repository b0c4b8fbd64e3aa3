package parallel_test

import (
	"sync/atomic"
	"testing"

	"github.com/quatnn-ml/quatnn/internal/parallel"
)

func TestForCoversAllIndices(t *testing.T) {
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	const n = 1000

	var counter int64
	seen := make([]int32, n)
	parallel.For(n, func(i int) {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	if counter != n {
		t.Fatalf("executed %d iterations, want %d", counter, n)
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d executed %d times", i, c)
		}
	}
}

func TestForSequentialFallback(t *testing.T) {
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 100}

	// Below MinChunkSize the loop runs in order on the calling goroutine.
	var order []int
	parallel.For(10, func(i int) { order = append(order, i) }, cfg)

	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestForRangeCoversAllIndices(t *testing.T) {
	cfg := parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 16}
	const n = 500

	seen := make([]int32, n)
	parallel.ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	}, cfg)

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d covered %d times", i, c)
		}
	}
}

func TestForRangeDisabled(t *testing.T) {
	cfg := parallel.Config{Enabled: false}

	var calls int
	parallel.ForRange(50, func(start, end int) {
		calls++
		if start != 0 || end != 50 {
			t.Fatalf("range [%d,%d), want [0,50)", start, end)
		}
	}, cfg)

	if calls != 1 {
		t.Fatalf("callback ran %d times, want 1", calls)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := parallel.DefaultConfig()
	if cfg.NumWorkers < 1 {
		t.Fatalf("NumWorkers = %d", cfg.NumWorkers)
	}
	if cfg.MinChunkSize < 1 {
		t.Fatalf("MinChunkSize = %d", cfg.MinChunkSize)
	}
}
