// Package host defines the capabilities this mechanism needs from the
// surrounding flashcard application. The host owns the card data model,
// the review scheduler, and all UI; everything here is an abstraction
// boundary, implemented by host glue in production and by the in-memory
// fakes in tests.
package host

// Scheduler is the host's review scheduler, the only mutator of live
// bury state. BuryCards marks the given cards buried and reports how
// many actually changed state; cards already buried are a no-op and are
// not counted. It never un-buries anything.
type Scheduler interface {
	BuryCards(ids []int64) (changed int, err error)
}

// Notifier shows non-blocking transient notifications.
type Notifier interface {
	Tooltip(msg string)
}

// Context is the capability a caller (browser, reviewer, ...) hands to
// the bury action: a current card selection plus the prompts and dialogs
// needed to drive it. Modeled as one interface so the action does not
// branch on which concrete UI surface invoked it.
type Context interface {
	Notifier

	// SelectedCards returns the cards the user currently has selected.
	SelectedCards() []int64

	// AskDuration shows a modal text prompt. ok is false if the user
	// cancelled.
	AskDuration(title, prompt string) (text string, ok bool)

	// Info and Warn show blocking dialogs.
	Info(title, msg string)
	Warn(title, msg string)
}

// Lifecycle delivers the host's lifecycle triggers. Callbacks are invoked
// one at a time by the host's event dispatch, never concurrently.
type Lifecycle interface {
	OnStart(fn func())
	OnSyncStart(fn func())
	OnSyncFinish(fn func())
}
