// Package execute finalizes, signs, submits and confirms one transaction.
package execute

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/raulk/clock"
	"github.com/thounyy/sui-go-utils/internal/metrics"
	"github.com/thounyy/sui-go-utils/internal/retry"
	"github.com/thounyy/sui-go-utils/internal/tracing"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const DefaultPollInterval = 100 * time.Millisecond

// Ledger is the submit and lookup side of the query boundary.
type Ledger interface {
	// ExecuteTransaction returns nil effects when the remote defers them.
	ExecuteTransaction(ctx context.Context, txBytes []byte, signatures []sui.UserSignature) (*sui.TransactionEffects, error)
	// Transaction returns nil while the ledger has no record for digest.
	Transaction(ctx context.Context, digest sui.Digest) (*sui.TransactionBlock, error)
}

// Signer produces a user signature over a finalized transaction.
type Signer interface {
	SignTransaction(ctx context.Context, tx *txbuilder.Transaction) (sui.UserSignature, error)
}

// Result describes one attempt. Effects is set once a finality record was
// observed, including for transactions the ledger executed with a failure.
type Result struct {
	FlowID       string
	Digest       sui.Digest
	State        State
	Effects      *sui.TransactionEffects
	PollAttempts int
}

// Coordinator runs attempts one after another or concurrently; it holds no
// per-attempt state.
type Coordinator struct {
	ledger Ledger
	signer Signer
	logger *slog.Logger
	clock  clock.Clock

	pollInterval time.Duration
	maxAttempts  int
	deadline     time.Duration
}

type Option func(*Coordinator)

// WithPollInterval sets the fixed wait between finality polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithMaxAttempts bounds the number of finality polls. Zero means unbounded.
func WithMaxAttempts(n int) Option {
	return func(c *Coordinator) {
		if n >= 0 {
			c.maxAttempts = n
		}
	}
}

// WithDeadline bounds the time spent polling for finality. Zero means none.
func WithDeadline(d time.Duration) Option {
	return func(c *Coordinator) {
		if d >= 0 {
			c.deadline = d
		}
	}
}

func WithClock(clk clock.Clock) Option {
	return func(c *Coordinator) {
		c.clock = clk
	}
}

// NewCoordinator builds a coordinator whose default finality policy polls
// every 100ms with no attempt cap and no deadline. Without a bound a record
// that never appears keeps the attempt polling until ctx is done.
func NewCoordinator(ledger Ledger, signer Signer, logger *slog.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		ledger:       ledger,
		signer:       signer,
		logger:       logger.With("component", "execute_coordinator"),
		clock:        clock.New(),
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Execute consumes b and drives it to a terminal state. On failure after
// finalization the returned Result is non-nil and carries the digest and the
// state reached.
func (c *Coordinator) Execute(ctx context.Context, b *txbuilder.Builder) (*Result, error) {
	res := &Result{FlowID: uuid.NewString(), State: StateAssembled}
	log := c.logger.With("flow_id", res.FlowID)
	started := c.clock.Now()

	ctx, span := tracing.Tracer("execute").Start(ctx, "execute.Execute",
		otelTrace.WithAttributes(attribute.String("flow_id", res.FlowID)),
	)
	defer span.End()

	err := c.run(ctx, b, res, log)

	outcome := res.State
	if err != nil {
		// A builder rejected at finalize never leaves Assembled.
		outcome = StateFailed
	}
	metrics.ExecutionsTotal.WithLabelValues(outcome.String()).Inc()
	metrics.ExecutionLatency.WithLabelValues(outcome.String()).Observe(c.clock.Since(started).Seconds())
	span.SetAttributes(
		attribute.String("state", res.State.String()),
		attribute.Int("poll_attempts", res.PollAttempts),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("transaction attempt failed",
			"state", res.State.String(),
			"digest", digestOrEmpty(res),
			"error", err,
		)
		if res.State == StateAssembled {
			return nil, err
		}
		return res, err
	}

	log.Info("transaction confirmed",
		"digest", res.Digest.String(),
		"poll_attempts", res.PollAttempts,
	)
	return res, nil
}

func (c *Coordinator) run(ctx context.Context, b *txbuilder.Builder, res *Result, log *slog.Logger) error {
	span := otelTrace.SpanFromContext(ctx)

	tx, err := b.Finish()
	if err != nil {
		return err
	}
	res.State = StateFinalized
	res.Digest = tx.Digest()
	span.AddEvent("finalized", otelTrace.WithAttributes(attribute.String("digest", res.Digest.String())))
	log = log.With("digest", res.Digest.String())

	sig, err := c.signer.SignTransaction(ctx, tx)
	if err != nil {
		res.State = StateFailed
		return sui.TransactionSigning(err)
	}
	res.State = StateSigned
	span.AddEvent("signed")

	submitted, err := c.ledger.ExecuteTransaction(ctx, tx.Bytes(), []sui.UserSignature{sig})
	if err != nil {
		res.State = StateFailed
		return sui.RemoteQuery(err, retry.Classify(err).IsTransient())
	}
	res.State = StateSubmitted
	span.AddEvent("submitted", otelTrace.WithAttributes(attribute.Bool("effects_returned", submitted != nil)))
	log.Debug("transaction submitted", "effects_returned", submitted != nil)

	res.State = StatePolling
	record, err := c.awaitFinality(ctx, res, log)
	metrics.FinalityPollAttempts.Observe(float64(res.PollAttempts))
	if err != nil {
		res.State = StateFailed
		return err
	}
	span.AddEvent("finalized_on_chain", otelTrace.WithAttributes(attribute.Int("poll_attempts", res.PollAttempts)))

	return classify(record, res)
}

// awaitFinality polls for the record of res.Digest: once immediately, then
// after every interval until a record appears, a configured bound is hit or
// ctx is done.
func (c *Coordinator) awaitFinality(ctx context.Context, res *Result, log *slog.Logger) (*sui.TransactionBlock, error) {
	var deadline <-chan time.Time
	if c.deadline > 0 {
		dt := c.clock.Timer(c.deadline)
		defer dt.Stop()
		deadline = dt.C
	}

	timer := c.clock.Timer(c.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		res.PollAttempts++
		record, err := c.ledger.Transaction(ctx, res.Digest)
		if err != nil {
			return nil, sui.RemoteQuery(err, retry.Classify(err).IsTransient())
		}
		if record != nil {
			return record, nil
		}

		if c.maxAttempts > 0 && res.PollAttempts >= c.maxAttempts {
			return nil, sui.FinalityTimeout(res.Digest, res.PollAttempts, "max attempts reached")
		}
		log.Debug("finality record not yet available", "attempt", res.PollAttempts)

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(c.pollInterval)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, sui.FinalityTimeout(res.Digest, res.PollAttempts, "deadline exceeded")
		case <-timer.C:
		}
	}
}

func classify(record *sui.TransactionBlock, res *Result) error {
	if record.Effects == nil {
		res.State = StateFailed
		return sui.InvalidEffects(res.Digest)
	}
	res.Effects = record.Effects
	if !record.Effects.Succeeded() {
		res.State = StateFailed
		return sui.TransactionExecution(record.Effects.Status, record.Effects.Error)
	}
	res.State = StateConfirmed
	return nil
}

func digestOrEmpty(res *Result) string {
	if res.Digest.IsZero() {
		return ""
	}
	return res.Digest.String()
}
