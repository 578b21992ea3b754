package ndu

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/samarth/backend/internal/domain/integration"
)

// Outcome decides whether one delivery attempt reaches the registry
type Outcome interface {
	Name() string
	Succeeds(s integration.Submission) bool
}

type fixedOutcome struct {
	name string
	ok   bool
}

func (o fixedOutcome) Name() string                         { return o.name }
func (o fixedOutcome) Succeeds(integration.Submission) bool { return o.ok }

// AlwaysSucceed accepts every attempt
func AlwaysSucceed() Outcome {
	return fixedOutcome{name: "always", ok: true}
}

// AlwaysFail rejects every attempt
func AlwaysFail() Outcome {
	return fixedOutcome{name: "never", ok: false}
}

type attemptOutcome struct {
	attempt int
}

// SucceedOnAttempt fails until the given 1-based attempt, then succeeds
func SucceedOnAttempt(n int) Outcome {
	return attemptOutcome{attempt: n}
}

func (o attemptOutcome) Name() string { return fmt.Sprintf("attempt-%d", o.attempt) }

func (o attemptOutcome) Succeeds(s integration.Submission) bool {
	return s.Attempt >= o.attempt
}

// WeightedOutcome succeeds with a fixed probability. The random source is
// shared between requests and guarded by a mutex.
type WeightedOutcome struct {
	mu    sync.Mutex
	rng   *rand.Rand
	ratio float64
}

// Weighted builds a seeded outcome that succeeds with probability ratio
func Weighted(ratio float64, seed uint64) *WeightedOutcome {
	return &WeightedOutcome{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ratio: ratio,
	}
}

// Name implements Outcome
func (o *WeightedOutcome) Name() string { return fmt.Sprintf("weighted-%.2f", o.ratio) }

// Succeeds implements Outcome
func (o *WeightedOutcome) Succeeds(integration.Submission) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rng.Float64() < o.ratio
}

// OutcomeFromConfig maps the configured progress outcome name to a strategy
func OutcomeFromConfig(name string, ratio float64, seed uint64) (Outcome, error) {
	switch name {
	case "always":
		return AlwaysSucceed(), nil
	case "weighted":
		return Weighted(ratio, seed), nil
	default:
		return nil, fmt.Errorf("unknown sync outcome %q", name)
	}
}
