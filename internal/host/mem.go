package host

// In-memory fakes for tests and the CLI's dry-run path.

// MemScheduler implements Scheduler over a set of buried ids. It mirrors
// the host contract: burying an already-buried card is a no-op and does
// not count toward the changed total.
type MemScheduler struct {
	Buried map[int64]bool
	Calls  [][]int64
	Err    error
}

func NewMemScheduler() *MemScheduler {
	return &MemScheduler{Buried: make(map[int64]bool)}
}

func (s *MemScheduler) BuryCards(ids []int64) (int, error) {
	s.Calls = append(s.Calls, ids)
	if s.Err != nil {
		return 0, s.Err
	}
	changed := 0
	for _, id := range ids {
		if !s.Buried[id] {
			s.Buried[id] = true
			changed++
		}
	}
	return changed, nil
}

// MemContext implements Context with scripted prompt answers.
type MemContext struct {
	Selection []int64
	// Answers are consumed front-to-back by AskDuration; when exhausted,
	// the prompt reports cancellation.
	Answers  []string
	Tooltips []string
	Infos    []string
	Warns    []string
}

func (c *MemContext) SelectedCards() []int64 { return c.Selection }

func (c *MemContext) AskDuration(title, prompt string) (string, bool) {
	if len(c.Answers) == 0 {
		return "", false
	}
	text := c.Answers[0]
	c.Answers = c.Answers[1:]
	return text, true
}

func (c *MemContext) Tooltip(msg string)     { c.Tooltips = append(c.Tooltips, msg) }
func (c *MemContext) Info(title, msg string) { c.Infos = append(c.Infos, msg) }
func (c *MemContext) Warn(title, msg string) { c.Warns = append(c.Warns, msg) }

// MemNotifier records tooltips.
type MemNotifier struct {
	Tooltips []string
}

func (n *MemNotifier) Tooltip(msg string) { n.Tooltips = append(n.Tooltips, msg) }

// MemLifecycle collects registered callbacks and lets tests fire the
// triggers explicitly.
type MemLifecycle struct {
	Starts       []func()
	SyncStarts   []func()
	SyncFinishes []func()
}

func (l *MemLifecycle) OnStart(fn func())      { l.Starts = append(l.Starts, fn) }
func (l *MemLifecycle) OnSyncStart(fn func())  { l.SyncStarts = append(l.SyncStarts, fn) }
func (l *MemLifecycle) OnSyncFinish(fn func()) { l.SyncFinishes = append(l.SyncFinishes, fn) }

// FireStart invokes every registered start callback in order.
func (l *MemLifecycle) FireStart() {
	for _, fn := range l.Starts {
		fn()
	}
}

// FireSyncStart invokes every registered sync-start callback in order.
func (l *MemLifecycle) FireSyncStart() {
	for _, fn := range l.SyncStarts {
		fn()
	}
}

// FireSyncFinish invokes every registered sync-finish callback in order.
func (l *MemLifecycle) FireSyncFinish() {
	for _, fn := range l.SyncFinishes {
		fn()
	}
}
