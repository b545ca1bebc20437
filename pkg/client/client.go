// Package client is the query boundary over the ledger's GraphQL RPC.
//
// Every request goes through one rate limiter and is recorded in the query
// metrics; failures come back as sui.RemoteQueryError carrying a
// transient/terminal classification.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/thounyy/sui-go-utils/internal/circuitbreaker"
	"github.com/thounyy/sui-go-utils/internal/ratelimit"
	"github.com/thounyy/sui-go-utils/internal/retry"
	"github.com/thounyy/sui-go-utils/internal/tracing"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const defaultTimeout = 30 * time.Second

// Client is safe for concurrent use by many assembly flows.
type Client struct {
	gql      graphql.Client
	endpoint string
	limiter  *ratelimit.Limiter
	breaker  *circuitbreaker.Breaker
	logger   *slog.Logger

	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithBreaker rejects requests while the endpoint keeps failing transiently.
// Rejections are transient RemoteQueryErrors.
func WithBreaker(b *circuitbreaker.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// WithGraphQLClient sends requests through gql instead of an HTTP client
// built for the endpoint.
func WithGraphQLClient(gql graphql.Client) Option {
	return func(c *Client) {
		c.gql = gql
	}
}

func New(endpoint string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		endpoint: endpoint,
		logger:   logger.With("component", "sui_client"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.gql == nil {
		c.gql = graphql.NewClient(endpoint, c.httpClient)
	}
	return c
}

var operationNamePattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// RunQuery sends an arbitrary GraphQL document and decodes its data into out.
// A named operation in the document is sent as the request's operation name.
func (c *Client) RunQuery(ctx context.Context, query string, variables map[string]any, out any) error {
	opName := ""
	if m := operationNamePattern.FindStringSubmatch(query); m != nil {
		opName = m[1]
	}
	return c.request(ctx, "RunQuery", opName, query, variables, out)
}

func (c *Client) do(ctx context.Context, op, query string, variables map[string]any, out any) error {
	return c.request(ctx, op, op, query, variables, out)
}

// request issues one GraphQL call. op labels spans and metrics, opName is
// the operation name sent on the wire.
func (c *Client) request(ctx context.Context, op, opName, query string, variables map[string]any, out any) error {
	ctx, span := tracing.Tracer("sui-client").Start(ctx, "graphql."+op,
		otelTrace.WithSpanKind(otelTrace.SpanKindClient),
		otelTrace.WithAttributes(
			attribute.String("graphql.operation", op),
			attribute.String("endpoint", c.endpoint),
		),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return sui.RemoteQuery(fmt.Errorf("%s: rate limit wait: %w", op, err), retry.Classify(err).IsTransient())
		}
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return sui.RemoteQuery(fmt.Errorf("%s: %w", op, err), true)
		}
	}

	started := time.Now()
	req := &graphql.Request{Query: query, Variables: variables, OpName: opName}
	resp := &graphql.Response{Data: out}
	err := c.gql.MakeRequest(ctx, req, resp)
	ratelimit.RecordQuery(op, started, err)
	if err != nil {
		decision := retry.Classify(err)
		c.recordBreaker(decision.IsTransient())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("graphql request failed",
			"operation", op,
			"class", decision.Class,
			"reason", decision.Reason,
			"error", err,
		)
		return sui.RemoteQuery(fmt.Errorf("%s: %w", op, err), decision.IsTransient())
	}
	c.recordBreaker(false)
	return nil
}

// recordBreaker counts only transient failures against the endpoint; an
// answered request, even a rejected one, shows the endpoint is up.
func (c *Client) recordBreaker(transient bool) {
	if c.breaker == nil {
		return
	}
	if transient {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}
