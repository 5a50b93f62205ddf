package bury

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/conorfennell/burydays/internal/days"
	"github.com/conorfennell/burydays/internal/domain"
	"github.com/conorfennell/burydays/internal/events"
	"github.com/conorfennell/burydays/internal/host"
	"github.com/conorfennell/burydays/internal/storage"
)

const secondsPerDay = 86400

const dialogTitle = "Bury N days"

// Action orchestrates one user-initiated bury: select cards, prompt for a
// duration, persist the records, then hand the cards to the host
// scheduler. The durable write always happens before the scheduler call
// is issued; if the process dies in between, the next reconcile pass
// re-asserts the bury from the store.
type Action struct {
	store   *storage.DB
	sched   host.Scheduler
	queue   *events.Queue
	sampler *days.Sampler
	now     func() int64
}

// New builds an action with the process clock and a fresh sampler.
func New(store *storage.DB, sched host.Scheduler, queue *events.Queue) *Action {
	return &Action{
		store:   store,
		sched:   sched,
		queue:   queue,
		sampler: days.NewSampler(),
		now:     func() int64 { return time.Now().Unix() },
	}
}

// WithSampler overrides the duration sampler for tests.
func (a *Action) WithSampler(s *days.Sampler) *Action {
	a.sampler = s
	return a
}

// WithClock overrides the time source for tests.
func (a *Action) WithClock(now func() int64) *Action {
	a.now = now
	return a
}

// Run executes the bury flow against the given host context. Cancellation
// at any prompt aborts with no state mutated; invalid duration text warns
// and re-prompts. Storage failures propagate to the caller.
func (a *Action) Run(hc host.Context) error {
	ids := hc.SelectedCards()
	if len(ids) == 0 {
		hc.Info(dialogTitle, "No cards selected.")
		return nil
	}

	r, ok := a.promptRange(hc)
	if !ok {
		return nil
	}

	now := a.now()
	records := make(map[int64]int64, len(ids))
	for _, id := range ids {
		d := a.sampler.Sample(r)
		records[id] = now + int64(d)*secondsPerDay
	}

	if err := a.store.UpsertMany(records); err != nil {
		return fmt.Errorf("failed to persist bury records: %w", err)
	}

	// The scheduler call is dispatched async; its completion shows the
	// tooltip. Nothing waits on it.
	a.queue.Submit(func() error {
		_, err := a.sched.BuryCards(ids)
		return err
	}, func(err error) {
		if err != nil {
			slog.Error("host scheduler failed to bury cards", "cards", len(ids), "error", err)
			return
		}
		hc.Tooltip(buriedMessage(len(ids), r))
	})

	return nil
}

// promptRange asks for a duration until the user supplies a valid one or
// cancels. ok is false on cancellation or empty input.
func (a *Action) promptRange(hc host.Context) (domain.Range, bool) {
	for {
		text, ok := hc.AskDuration(dialogTitle, "Enter number of days (e.g. '10' or '1-100'):")
		if !ok || strings.TrimSpace(text) == "" {
			return domain.Range{}, false
		}

		r, err := days.ParseRange(text)
		if err != nil {
			if errors.Is(err, days.ErrInvalid) {
				hc.Warn(dialogTitle, "Invalid input. Please enter a number or range like '1-100'.")
				continue
			}
			return domain.Range{}, false
		}
		return r, true
	}
}

func buriedMessage(count int, r domain.Range) string {
	if r.Fixed() {
		return fmt.Sprintf("Buried %d cards for %d days.", count, r.Low)
	}
	return fmt.Sprintf("Buried %d cards for between %d–%d days.", count, r.Low, r.High)
}
