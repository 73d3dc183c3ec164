package worker

import "context"

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}
