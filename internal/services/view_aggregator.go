package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/metrics"
	"github.com/grvbrk/provideo_server/internal/store"
)

// ViewAggregator derives videos.views from the view event log.
// Each run is a full re-aggregation, so a failed or skipped run is corrected by the next one.
type ViewAggregator struct {
	views    store.ViewEventStore
	videos   store.VideoStore
	interval time.Duration
	logger   zerolog.Logger
}

func NewViewAggregator(views store.ViewEventStore, videos store.VideoStore, interval time.Duration, logger zerolog.Logger) *ViewAggregator {
	return &ViewAggregator{
		views:    views,
		videos:   videos,
		interval: interval,
		logger:   logger,
	}
}

// RunOnce aggregates non-bot views and returns how many videos were counted.
func (a *ViewAggregator) RunOnce(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveAggregation(time.Since(start), err)
	}()

	counts, err := a.views.CountViewsByVideo(ctx)
	if err != nil {
		return 0, err
	}

	err = a.videos.SetViews(ctx, counts)
	if err != nil {
		return 0, err
	}

	return len(counts), nil
}

// Run aggregates on every tick until ctx is cancelled. A non-positive interval disables it.
func (a *ViewAggregator) Run(ctx context.Context) {
	if a.interval <= 0 {
		a.logger.Info().Msg("view aggregation disabled")
		return
	}

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info().Dur("interval", a.interval).Msg("view aggregator started")

	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("view aggregator stopped")
			return
		case <-ticker.C:
			n, err := a.RunOnce(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				a.logger.Error().Err(err).Msg("view aggregation failed")
				continue
			}
			a.logger.Debug().Int("videos", n).Msg("view counts aggregated")
		}
	}
}
