package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/api/metrics"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrClosed is reported to the Done callback of a save enqueued after Drain.
var ErrClosed = errors.New("save dispatcher closed")

// Dispatcher routes block saves to a fixed set of workers using consistent
// hashing on the page id, so two saves of one page never run concurrently and
// reach the backend in the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.SaveJob
	saver   ports.BlockSaver
	log     zerolog.Logger
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, saver ports.BlockSaver, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SaveJob, numWorkers),
		saver:   saver,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SaveJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		i, ch := i, ch
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
}

// Drain stops accepting saves and waits until the queued ones were sent or
// ctx expires. Saves enqueued afterwards are dropped.
func (d *Dispatcher) Drain(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue sends a save to the worker responsible for its page.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.SaveJob) {
	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.log.Warn().Str("page_id", job.PageID).Msg("save dropped after drain")
		metrics.AutosaveFlushedTotal.WithLabelValues("dropped").Inc()
		if job.Done != nil {
			job.Done(nil, ErrClosed)
		}
		return
	}
	idx := d.shardIndex(job.PageID)
	d.workers[idx] <- job
	d.mu.RUnlock()
	metrics.SaveQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a page id deterministically to a worker index.
func (d *Dispatcher) shardIndex(pageID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(pageID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SaveJob) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.SaveQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			page, err := d.saver.UpdatePageBlocks(ctx, job.PageID, job.Blocks)
			metrics.AutosaveFlushedTotal.WithLabelValues(metrics.Result(err)).Inc()
			if err != nil {
				d.log.Error().Err(err).
					Str("page_id", job.PageID).
					Int("worker_id", id).
					Msg("block save failed")
			}
			if job.Done != nil {
				job.Done(page, err)
			}
		}
	}
}
