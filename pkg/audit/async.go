package audit

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// writeTimeout bounds each background insert.
const writeTimeout = 5 * time.Second

// AsyncSink wraps a Sink with bounded fire-and-forget writes. At capacity,
// records are dropped and counted rather than queued without limit: audit
// loss is acceptable, unbounded goroutine growth is not.
type AsyncSink struct {
	sink    Sink
	sem     chan struct{}
	dropped atomic.Int64
	wg      sync.WaitGroup
}

// NewAsyncSink wraps sink with at most capacity in-flight writes.
func NewAsyncSink(sink Sink, capacity int) *AsyncSink {
	if capacity <= 0 {
		capacity = 100
	}
	return &AsyncSink{
		sink: sink,
		sem:  make(chan struct{}, capacity),
	}
}

// Record schedules a background write. Returns immediately; reports false
// when the record was dropped due to capacity.
func (a *AsyncSink) Record(rec Record) bool {
	select {
	case a.sem <- struct{}{}:
	default:
		a.dropped.Add(1)
		return false
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() { <-a.sem }()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := a.sink.Write(ctx, rec); err != nil {
			log.Printf("audit write failed: %v", err)
		}
	}()
	return true
}

// Dropped returns the number of records dropped due to capacity.
func (a *AsyncSink) Dropped() int64 {
	return a.dropped.Load()
}

// Close waits for in-flight writes and closes the wrapped sink.
func (a *AsyncSink) Close() {
	a.wg.Wait()
	a.sink.Close()
}
