package reconcile

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/conorfennell/burydays/internal/host"
	"github.com/conorfennell/burydays/internal/storage"
)

// DefaultSweepEvery is the 1-in-N chance of running an expiry sweep on a
// reconcile pass. Amortized cleanup instead of a timer: the store grows
// only with stale rows between sweeps, which is cheap at this scale.
const DefaultSweepEvery = 10

// Reconciler re-asserts the host scheduler's bury state from the durable
// store. The store is the source of truth; the scheduler's own in-memory
// bury state does not survive restarts and is re-derived here on start
// and around each sync.
type Reconciler struct {
	store    *storage.DB
	sched    host.Scheduler
	notifier host.Notifier

	sweepEvery int
	rng        *rand.Rand
	now        func() int64
}

// New builds a reconciler with the default sweep cadence and clock.
func New(store *storage.DB, sched host.Scheduler, notifier host.Notifier) *Reconciler {
	return &Reconciler{
		store:      store,
		sched:      sched,
		notifier:   notifier,
		sweepEvery: DefaultSweepEvery,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:        func() int64 { return time.Now().Unix() },
	}
}

// WithSweepEvery overrides the 1-in-N sweep cadence. n = 1 sweeps on every
// pass; useful for maintenance tooling and tests.
func (r *Reconciler) WithSweepEvery(n int) *Reconciler {
	r.sweepEvery = n
	return r
}

// WithClock overrides the time source for tests.
func (r *Reconciler) WithClock(now func() int64) *Reconciler {
	r.now = now
	return r
}

// Run brings the scheduler back in sync with the store: every card whose
// bury has not expired is re-asserted as buried. Cards the scheduler
// already has buried are a no-op; nothing outside the active set is
// touched. With low probability, expired rows are swept afterwards.
func (r *Reconciler) Run() error {
	now := r.now()

	active, err := r.store.SelectActive(now)
	if err != nil {
		return fmt.Errorf("failed to load active bury records: %w", err)
	}

	if len(active) > 0 {
		changed, err := r.sched.BuryCards(active)
		if err != nil {
			return fmt.Errorf("failed to re-bury %d cards: %w", len(active), err)
		}
		slog.Info("reconciled bury state", "active", len(active), "changed", changed)

		if changed > 0 {
			if changed == len(active) {
				r.notifier.Tooltip(fmt.Sprintf("Re-buried %d cards.", changed))
			} else {
				r.notifier.Tooltip(fmt.Sprintf("Re-buried %d of %d cards.", changed, len(active)))
			}
		}
	}

	if r.rng.IntN(r.sweepEvery) == 0 {
		if err := r.store.DeleteExpired(now); err != nil {
			slog.Warn("failed to sweep expired bury records", "error", err)
		}
	}

	return nil
}
