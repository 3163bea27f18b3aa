// Package operator runs jobs through a bounded worker pool. Callers block
// until their job completes, so each job executes as an isolated unit of
// work without the caller managing goroutines.
package operator

import (
	"context"
)

// Job is a unit of work executed by an Operator. Each validation run is one
// job; jobs never share mutable state with each other.
type Job interface {
	Perform(ctx context.Context) error
}

// Operator is the worker that processes jobs from the queue.
type Operator struct {
	queue chan jobItem
}

func NewOperator(queue chan jobItem) *Operator {
	return &Operator{queue: queue}
}

// Run listens to the queue and processes jobs. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- jobResponse{err: item.job.Perform(item.ctx)}
	}
}

type jobItem struct {
	ctx      context.Context
	job      Job
	response chan jobResponse
}

type jobResponse struct {
	err error
}
