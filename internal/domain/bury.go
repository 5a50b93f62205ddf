package domain

// BuryRecord is the durable note that a card is suspended from review.
// Until is an absolute expiry time in unix seconds; once it passes, the
// record is dead weight and eligible for the next sweep.
type BuryRecord struct {
	CardID int64
	Until  int64
}

// Range is an inclusive range of days, as entered by the user.
// Low == High for a fixed duration.
type Range struct {
	Low  int
	High int
}

// Fixed reports whether the range degenerates to a single duration.
func (r Range) Fixed() bool {
	return r.Low == r.High
}
