// Package addon wires the bury mechanism together and attaches it to the
// host's lifecycle: the reconciler runs on start and around each sync,
// and the bury action is exposed for the host's menu glue to invoke.
package addon

import (
	"log/slog"

	"github.com/conorfennell/burydays/internal/bury"
	"github.com/conorfennell/burydays/internal/config"
	"github.com/conorfennell/burydays/internal/events"
	"github.com/conorfennell/burydays/internal/host"
	"github.com/conorfennell/burydays/internal/reconcile"
	"github.com/conorfennell/burydays/internal/storage"
)

// Addon holds the constructed components for one process.
type Addon struct {
	store      *storage.DB
	queue      *events.Queue
	reconciler *reconcile.Reconciler
	action     *bury.Action
}

// New builds the addon on an already-opened store. The caller owns the
// store's lifetime; Close releases only what New created.
func New(cfg *config.Config, store *storage.DB, sched host.Scheduler, notifier host.Notifier) *Addon {
	queue := events.NewQueue()
	return &Addon{
		store:      store,
		queue:      queue,
		reconciler: reconcile.New(store, sched, notifier).WithSweepEvery(cfg.SweepEvery),
		action:     bury.New(store, sched, queue),
	}
}

// Register attaches the reconciler to every lifecycle trigger. Each pass
// is serialized through the event queue so it never overlaps an in-flight
// bury dispatch.
func (a *Addon) Register(lc host.Lifecycle) {
	run := func() {
		a.queue.Submit(a.reconciler.Run, func(err error) {
			if err != nil {
				slog.Error("bury reconciliation failed", "error", err)
			}
		})
	}
	lc.OnStart(run)
	lc.OnSyncStart(run)
	lc.OnSyncFinish(run)
}

// BuryAction returns the user-triggered bury flow for menu glue.
func (a *Addon) BuryAction() *bury.Action {
	return a.action
}

// Close drains the event queue.
func (a *Addon) Close() {
	a.queue.Close()
}
