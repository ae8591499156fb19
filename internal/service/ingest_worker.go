package service

import (
	"context"
	"log"
	"time"
)

// IngestWorker is a periodic background job that re-runs the configured
// source queries against the video platform and upserts the results.
type IngestWorker struct {
	svc      *IngestService
	queries  []string
	interval time.Duration
	stopCh   chan struct{}
}

// NewIngestWorker creates a worker that ticks every interval.
func NewIngestWorker(svc *IngestService, queries []string, interval time.Duration) *IngestWorker {
	return &IngestWorker{
		svc:      svc,
		queries:  queries,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic ingestion loop. It runs one tick immediately,
// then every interval.
func (w *IngestWorker) Start(ctx context.Context) {
	log.Printf("ingest-worker: starting (interval=%s, queries=%d)", w.interval, len(w.queries))

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("ingest-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("ingest-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *IngestWorker) Stop() {
	close(w.stopCh)
}

// tick runs one cycle over every configured query. A failing query is
// logged and skipped; the remaining queries still run.
func (w *IngestWorker) tick(ctx context.Context) {
	start := time.Now()

	var fetched, upserted, tagged, defects int
	for _, query := range w.queries {
		report, err := w.svc.Run(ctx, query)
		if err != nil {
			log.Printf("ingest-worker: query %q failed: %v", query, err)
			continue
		}
		fetched += report.Fetched
		upserted += report.Upserted
		tagged += report.Tagged
		defects += len(report.Skipped)
	}

	elapsed := time.Since(start)
	log.Printf("ingest-worker: tick complete: %d fetched, %d upserted, %d tags added, %d defects (%s)",
		fetched, upserted, tagged, defects, elapsed.Round(time.Millisecond))
}
