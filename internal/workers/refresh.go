// Package workers runs the background refresh job that keeps the state
// store supplied with fresh glucose readings.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"glucoterm/internal/libreview"
	"glucoterm/internal/logger"
	"glucoterm/internal/state"
)

const defaultRefreshInterval = 5 * time.Minute

// GraphFetcher is the slice of the API client the refresh job needs.
type GraphFetcher interface {
	GraphData(ctx context.Context, patientID, version string) (*libreview.GraphPayload, error)
}

// RefreshJob periodically fetches the latest graph payload into a
// state.Store. The job owns a single goroutine, so calls into the API
// client never overlap.
type RefreshJob struct {
	client   GraphFetcher
	store    *state.Store
	log      *logger.Logger
	onUpdate func()

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a RefreshJob that fetches via client and publishes
// into store. onUpdate, if non-nil, is invoked after every store update so
// the UI can redraw. The job is idle until Start is called.
func NewRefreshJob(client GraphFetcher, store *state.Store, log *logger.Logger, onUpdate func()) *RefreshJob {
	if log == nil {
		log = logger.Nop()
	}
	return &RefreshJob{client: client, store: store, log: log, onUpdate: onUpdate}
}

// Start stops any previously running job, then launches a background
// goroutine that refreshes immediately and again every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *RefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			j.refresh(jobCtx)
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *RefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// refresh performs one poll cycle. Errors are recorded in the store and
// logged; they never stop the job.
func (j *RefreshJob) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	log := &logger.Logger{Logger: j.log.With().Str("trace_id", uuid.NewString()).Logger()}

	payload, err := j.client.GraphData(ctx, "", "")
	if err != nil {
		log.Error().Err(err).Msg("error fetching graph data")
		j.store.Update(nil, err)
	} else {
		readings := 0
		if payload != nil {
			readings = len(payload.GraphData)
		}
		log.Debug().Int("readings", readings).Msg("refreshed graph data")
		j.store.Update(payload, nil)
	}

	if j.onUpdate != nil {
		j.onUpdate()
	}
}
