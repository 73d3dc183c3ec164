package leaderboard

import (
	"context"
	"time"

	"builderid/core"

	"github.com/fox-one/pkg/logger"
)

// Syncer keeps the holders leaderboard cache warm and logs mint totals.
// It reads through the cache decorator so the holders endpoint serves
// from a warm entry between runs.
type Syncer struct {
	builders core.BuilderStore
	interval time.Duration

	lastCount int64
}

// New new leaderboard syncer
func New(builders core.BuilderStore, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Syncer{
		builders: builders,
		interval: interval,
	}
}

// Run worker run
func (w *Syncer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "leaderboard")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := w.run(ctx); err == nil {
				dur = w.interval
			} else {
				dur = time.Second
			}
		}
	}
}

func (w *Syncer) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := w.builders.Count(ctx)
	if err != nil {
		log.WithError(err).Errorln("builders.Count")
		return err
	}

	if _, err := w.builders.List(ctx, 100, 0); err != nil {
		log.WithError(err).Errorln("builders.List")
		return err
	}

	if count != w.lastCount {
		log.WithField("total", count).Infoln("builder ids minted:", count-w.lastCount)
		w.lastCount = count
	}

	return nil
}
