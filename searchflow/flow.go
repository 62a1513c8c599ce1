package searchflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDelay  = 500 * time.Millisecond
	DefaultOrigin = "search page"
)

type Options struct {
	// Delay is the debounce window. Zero means DefaultDelay.
	Delay time.Duration
	// Origin is reported with every analytics event.
	Origin    string
	Analytics Analytics
	// OnChange receives a snapshot after every state change. It may be called
	// from several goroutines at once; observers keep the highest Version.
	OnChange func(Snapshot)
	Log      *zap.SugaredLogger
}

// Snapshot is an immutable view of the flow. Slices are never mutated after
// being published.
type Snapshot struct {
	Version uint64
	// Query is the latest typed text; Settled is the debounced query the
	// results belong to.
	Query     string
	Settled   string
	State     State
	Original  []ResultRecord
	Filtered  []ResultRecord
	Selection Selection
	Err       error
}

// Flow wires debouncer, fetcher, band filter and presenter together.
type Flow struct {
	fetcher   Fetcher
	opts      Options
	log       *zap.SugaredLogger
	debouncer *Debouncer[string]

	mu        sync.Mutex
	closed    bool
	version   uint64
	query     string
	settled   string
	seq       uint64
	cancel    context.CancelFunc
	loading   bool
	err       error
	original  []ResultRecord
	filtered  []ResultRecord
	selection Selection

	inflight sync.WaitGroup
}

func New(fetcher Fetcher, opts Options) *Flow {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.Analytics == nil {
		opts.Analytics = NopAnalytics{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}

	f := &Flow{
		fetcher: fetcher,
		opts:    opts,
		log:     opts.Log,
	}
	f.debouncer = NewDebouncer(opts.Delay, f.settleDebounced)
	return f
}

// Type records a keystroke. Non-empty text is debounced; clearing the input
// clears the results at once without touching the network.
func (f *Flow) Type(query string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.query = query
	f.version++
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.publish(snap)

	if query == "" {
		f.debouncer.Cancel()
		f.settle("")
		return
	}
	f.debouncer.Push(query)
}

// Search skips the debounce window and searches for query right away.
func (f *Flow) Search(query string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.query = query
	f.mu.Unlock()

	f.debouncer.Cancel()
	f.settle(query)
}

// settle makes query the current search. Any older fetch is cancelled and its
// result will be ignored.
func (f *Flow) settle(query string) {
	f.start(query, false)
}

// settleDebounced is the debouncer's delivery. A timer can fire just as the
// input changes, so text the input no longer holds is dropped here, under the
// same lock Type and Search take.
func (f *Flow) settleDebounced(query string) {
	f.start(query, true)
}

func (f *Flow) start(query string, onlyIfCurrent bool) {
	f.mu.Lock()
	if f.closed || (onlyIfCurrent && query != f.query) {
		f.mu.Unlock()
		return
	}

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
	seq := f.seq
	f.settled = query
	f.err = nil
	f.original = nil
	f.filtered = nil

	if query == "" {
		f.loading = false
		f.version++
		snap := f.snapshotLocked()
		f.mu.Unlock()
		f.publish(snap)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.loading = true
	f.version++
	snap := f.snapshotLocked()
	f.inflight.Add(1)
	f.mu.Unlock()

	f.publish(snap)
	f.log.Debugw("search started", "query", query, "seq", seq)

	go func() {
		defer f.inflight.Done()
		records, err := f.fetcher.Fetch(ctx, query)
		f.complete(seq, query, records, err)
	}()
}

func (f *Flow) complete(seq uint64, query string, records []ResultRecord, err error) {
	f.mu.Lock()
	if f.closed || seq != f.seq {
		f.mu.Unlock()
		f.log.Debugw("stale search response discarded", "query", query, "seq", seq)
		return
	}

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.loading = false
	if err != nil {
		f.err = err
		f.original = nil
		f.filtered = nil
	} else {
		if records == nil {
			records = []ResultRecord{}
		}
		f.original = records
		f.filtered = FilterByBand(records, f.selection)
	}
	f.version++
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.publish(snap)

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			f.log.Warnw("search failed", "query", query, "error", err)
		}
		return
	}
	f.opts.Analytics.Capture(EventSearch, map[string]any{
		"origin":       f.opts.Origin,
		"search query": query,
	})
}

// ToggleBand selects band id, or clears it when it is already selected.
func (f *Flow) ToggleBand(id int) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}

	next, selected, err := f.selection.Toggle(id)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.selection = next
	f.filtered = FilterByBand(f.original, next)
	f.version++
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.publish(snap)

	if band, ok := next.Band(); ok && selected {
		f.opts.Analytics.Capture(EventSetSearchFilter, map[string]any{
			"origin":       f.opts.Origin,
			"filter query": band.Label,
		})
	}
	return nil
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Flow) snapshotLocked() Snapshot {
	return Snapshot{
		Version:   f.version,
		Query:     f.query,
		Settled:   f.settled,
		State:     Present(f.settled, f.loading, f.err, f.original, f.filtered, f.selection),
		Original:  f.original,
		Filtered:  f.filtered,
		Selection: f.selection,
		Err:       f.err,
	}
}

func (f *Flow) publish(snap Snapshot) {
	if f.opts.OnChange != nil {
		f.opts.OnChange(snap)
	}
}

// Close stops the debouncer, cancels the running fetch and waits for it.
// The flow ignores every call after Close.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mu.Unlock()

	f.debouncer.Stop()
	f.inflight.Wait()
}
