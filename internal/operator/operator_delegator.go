package operator

import (
	"context"
	"sync"
)

// OperatorDelegator manages the queue, starts/stops Operators (workers), and
// enqueues jobs on behalf of callers.
type OperatorDelegator struct {
	queue      chan jobItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewOperatorDelegator(numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		queue:      make(chan jobItem, 1000),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process enqueues the job and blocks until a worker finishes it or the
// context is cancelled.
func (d *OperatorDelegator) Process(ctx context.Context, job Job) error {
	respCh := make(chan jobResponse, 1)
	item := jobItem{
		ctx:      ctx,
		job:      job,
		response: respCh,
	}

	d.queue <- item

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
