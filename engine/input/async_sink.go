package input

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// AsyncSink hands events to a single background worker so a slow sink never stalls the host's
// event callback. Events reach the wrapped sink in submission order.
type AsyncSink struct {
	next    Sink
	pool    worker.DynamicWorkerPool
	pending sync.WaitGroup

	mu     sync.Mutex
	closed bool
	seq    int
}

var _ Sink = &AsyncSink{}

// NewAsyncSink creates an AsyncSink in front of next.
//
// Parameters:
//   - next: the sink that performs the actual work
//   - queueSize: how many events may wait before Notify blocks (values below 1 use 64)
//
// Returns:
//   - *AsyncSink: the running sink; call Close when done
func NewAsyncSink(next Sink, queueSize int) *AsyncSink {
	if queueSize < 1 {
		queueSize = 64
	}
	return &AsyncSink{
		next: next,
		// One worker keeps delivery FIFO.
		pool: worker.NewDynamicWorkerPool(1, queueSize, time.Second),
	}
}

// Notify queues e for delivery. Events after Close are dropped.
func (s *AsyncSink) Notify(e Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	id := s.seq
	s.pending.Add(1)
	s.mu.Unlock()

	s.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: e,
		Do: func() (any, error) {
			defer s.pending.Done()
			s.next.Notify(e)
			return nil, nil
		},
	})
}

// Flush blocks until every queued event has been delivered.
func (s *AsyncSink) Flush() {
	s.pending.Wait()
}

// Close delivers what is queued and stops the worker. It is safe to call more than once.
func (s *AsyncSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.Flush()
	s.pool.Stop()
}
