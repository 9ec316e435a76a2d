package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Execute while the breaker rejects calls.
var ErrOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// Breaker opens after threshold consecutive failures and lets a single
// trial call through once cooldown has elapsed.
type Breaker struct {
	mu          sync.Mutex
	state       State
	failures    int
	threshold   int
	cooldown    time.Duration
	lastFailure time.Time
	trialActive bool
	now         func() time.Time
}

// NewBreaker creates a new circuit breaker. A threshold below one disables it.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		state:     Closed,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow checks if the request should be allowed.
func (b *Breaker) Allow() bool {
	if b.threshold < 1 {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		if b.now().Sub(b.lastFailure) < b.cooldown {
			return false
		}
		b.state = HalfOpen
		b.trialActive = true
		return true
	case HalfOpen:
		if b.trialActive {
			return false
		}
		b.trialActive = true
		return true
	default:
		return true
	}
}

// RecordSuccess closes the breaker and resets the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = Closed
	b.failures = 0
	b.trialActive = false
}

// RecordFailure records a failed request.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.now()
	b.trialActive = false

	switch b.state {
	case Closed:
		if b.threshold > 0 && b.failures >= b.threshold {
			b.state = Open
		}
	case HalfOpen:
		b.state = Open
	}
}

// Execute runs fn unless the breaker is open and records its outcome.
func (b *Breaker) Execute(fn func() error) error {
	if !b.Allow() {
		return ErrOpen
	}
	if err := fn(); err != nil {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return nil
}

// State returns the current circuit breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
