// Package circuitbreaker stops sending queries to a GraphQL endpoint that
// keeps failing transiently, and probes it again after a cool-off.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/raulk/clock"
	"github.com/thounyy/sui-go-utils/internal/metrics"
)

// ErrCircuitOpen is returned by Allow while the endpoint is considered down.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed   State = iota // requests flow
	StateOpen                  // requests rejected until the open timeout passes
	StateHalfOpen              // probing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Config struct {
	// Endpoint labels transition metrics.
	Endpoint         string
	FailureThreshold int           // consecutive failures before opening (default: 5)
	SuccessThreshold int           // half-open successes before closing (default: 2)
	OpenTimeout      time.Duration // time spent open before probing (default: 30s)
	Clock            clock.Clock
	OnStateChange    func(from, to State)
}

// Breaker is safe for concurrent use.
type Breaker struct {
	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	openedAt      time.Time
	cfg           Config
	onStateChange func(from, to State)
}

func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Breaker{
		state:         StateClosed,
		cfg:           cfg,
		onStateChange: cfg.OnStateChange,
	}
}

// Allow reports whether a request may be sent now. An open breaker whose
// timeout has passed moves to half-open and lets the request through.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expire()
	if b.state == StateOpen {
		return ErrCircuitOpen
	}
	return nil
}

// RecordSuccess is called for every request the endpoint answered, including
// requests it answered with a terminal error.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.setState(StateClosed)
		}
	}
}

// RecordFailure is called for transient failures only.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.successes = 0
	switch {
	case b.state == StateHalfOpen:
		b.open()
	case b.state == StateClosed && b.failures >= b.cfg.FailureThreshold:
		b.open()
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expire()
	return b.state
}

func (b *Breaker) open() {
	b.openedAt = b.cfg.Clock.Now()
	b.setState(StateOpen)
}

func (b *Breaker) expire() {
	if b.state == StateOpen && b.cfg.Clock.Since(b.openedAt) >= b.cfg.OpenTimeout {
		b.setState(StateHalfOpen)
	}
}

func (b *Breaker) setState(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.successes = 0
	if to == StateClosed {
		b.failures = 0
	}
	metrics.BreakerTransitions.WithLabelValues(b.cfg.Endpoint, to.String()).Inc()
	if b.onStateChange != nil {
		b.onStateChange(from, to)
	}
}
