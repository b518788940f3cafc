package core

import (
	"context"
)

// JobDispatcher defines the contract for a system that can accept and queue
// refresh requests for asynchronous processing. This interface decouples the
// event source (e.g., a webhook handler) from the job execution mechanism.
type JobDispatcher interface {
	// Dispatch queues a refresh request. It returns an error if the job cannot
	// be queued, for example if the queue is full.
	Dispatch(ctx context.Context, req RefreshRequest) error
	// Stop drains the queue and waits for in-flight jobs.
	Stop()
}

// Job is a single, executable unit of work processed by the dispatcher.
type Job interface {
	Run(ctx context.Context, req RefreshRequest) error
}
