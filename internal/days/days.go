package days

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/conorfennell/burydays/internal/domain"
)

// ErrInvalid marks user input that cannot be parsed into a day range.
// Callers match it with errors.Is and re-prompt.
var ErrInvalid = errors.New("invalid day range")

// ParseRange parses user-entered text into an inclusive day range.
// Accepted forms are "k" (fixed) and "a-b" (range). Surrounding whitespace
// is trimmed; nothing else is normalized. A range whose first number
// exceeds the second is rejected, not swapped, and every duration must be
// at least one day.
func ParseRange(text string) (domain.Range, error) {
	text = strings.TrimSpace(text)

	low, high, found := strings.Cut(text, "-")
	if !found {
		high = low
	}

	lowVal, err := strconv.Atoi(low)
	if err != nil {
		return domain.Range{}, fmt.Errorf("%w: %q is not a number", ErrInvalid, low)
	}
	highVal, err := strconv.Atoi(high)
	if err != nil {
		return domain.Range{}, fmt.Errorf("%w: %q is not a number", ErrInvalid, high)
	}

	if lowVal < 1 {
		return domain.Range{}, fmt.Errorf("%w: must be at least 1 day", ErrInvalid)
	}
	if lowVal > highVal {
		return domain.Range{}, fmt.Errorf("%w: %d-%d is reversed", ErrInvalid, lowVal, highVal)
	}

	return domain.Range{Low: lowVal, High: highVal}, nil
}

// Sampler draws bury durations from a day range.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler seeded from the process-wide source.
func NewSampler() *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededSampler returns a deterministic sampler for tests.
func NewSeededSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Sample returns a uniformly distributed day count in [r.Low, r.High],
// inclusive of both endpoints. A fixed range yields its constant.
func (s *Sampler) Sample(r domain.Range) int {
	if r.Fixed() {
		return r.Low
	}
	return r.Low + s.rng.IntN(r.High-r.Low+1)
}
