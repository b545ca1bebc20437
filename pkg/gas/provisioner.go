// Package gas selects a fee-paying coin and fills a builder's gas configuration.
package gas

import (
	"context"
	"log/slog"

	"github.com/thounyy/sui-go-utils/internal/metrics"
	"github.com/thounyy/sui-go-utils/internal/retry"
	"github.com/thounyy/sui-go-utils/pkg/objects"
	"github.com/thounyy/sui-go-utils/pkg/paginate"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
)

// DefaultCoinType is the fee token the holdings listing is filtered by.
const DefaultCoinType = "0x2::sui::SUI"

// Querier is the part of the query boundary provisioning needs.
type Querier interface {
	objects.CoinLister
	objects.ObjectFetcher
	// ReferenceGasPrice returns nil when the remote does not report a price.
	ReferenceGasPrice(ctx context.Context) (*uint64, error)
}

// Configuration is the gas setup attached to a builder by Provision.
type Configuration struct {
	Coin   sui.Coin
	Input  txbuilder.ObjectInput
	Price  uint64
	Budget uint64
	Sender sui.Address
}

type Provisioner struct {
	q            Querier
	coinType     string
	pageSize     int
	excluded     map[sui.Address]struct{}
	reservations *Reservations
	logger       *slog.Logger
}

type Option func(*Provisioner)

func WithCoinType(coinType string) Option {
	return func(p *Provisioner) {
		if coinType != "" {
			p.coinType = coinType
		}
	}
}

func WithPageSize(n int) Option {
	return func(p *Provisioner) {
		p.pageSize = paginate.Limit(n)
	}
}

// WithExcluded skips ids when scanning holdings.
func WithExcluded(ids ...sui.Address) Option {
	return func(p *Provisioner) {
		for _, id := range ids {
			p.excluded[id] = struct{}{}
		}
	}
}

// WithReservations makes Provision claim the selected coin in r, skipping
// coins already claimed. The claim is dropped again if provisioning fails.
func WithReservations(r *Reservations) Option {
	return func(p *Provisioner) {
		p.reservations = r
	}
}

func NewProvisioner(q Querier, logger *slog.Logger, opts ...Option) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provisioner{
		q:        q,
		coinType: DefaultCoinType,
		pageSize: paginate.MaxPageSize,
		excluded: make(map[sui.Address]struct{}),
		logger:   logger.With("component", "gas_provisioner"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// NewWithGas creates a builder and provisions it for caller.
func (p *Provisioner) NewWithGas(ctx context.Context, caller sui.Address, budget uint64) (*txbuilder.Builder, *Configuration, error) {
	b := txbuilder.New()
	cfg, err := p.Provision(ctx, b, caller, budget)
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

// Provision picks the first of caller's fee-token holdings, in listing order,
// whose balance covers budget, and attaches it to b together with the
// reference gas price, the budget and caller as sender. b is left untouched
// on failure.
func (p *Provisioner) Provision(ctx context.Context, b *txbuilder.Builder, caller sui.Address, budget uint64) (*Configuration, error) {
	log := p.logger.With("caller", caller.String(), "budget", budget)

	coin, err := p.selectCoin(ctx, caller, budget)
	if err != nil {
		return nil, err
	}
	if coin == nil {
		metrics.GasSelectionsTotal.WithLabelValues("no_coin").Inc()
		log.Info("no gas coin covers budget")
		return nil, sui.GasCoinNotFound(caller, budget)
	}

	cfg, err := p.configure(ctx, *coin, caller, budget)
	if err != nil {
		if p.reservations != nil {
			p.reservations.Release(coin.ID)
		}
		return nil, err
	}

	b.AddGasObjects(cfg.Input)
	b.SetGasPrice(cfg.Price)
	b.SetGasBudget(cfg.Budget)
	b.SetSender(cfg.Sender)

	metrics.GasSelectionsTotal.WithLabelValues("selected").Inc()
	log.Debug("gas coin selected",
		"object_id", coin.ID.String(),
		"balance", coin.Balance,
		"price", cfg.Price,
	)
	return cfg, nil
}

func (p *Provisioner) selectCoin(ctx context.Context, caller sui.Address, budget uint64) (*sui.Coin, error) {
	var selected *sui.Coin
	filter := sui.CoinFilter{Owner: caller, CoinType: p.coinType}
	pages, err := paginate.EachCount[sui.Coin, sui.CoinFilter](ctx, p.q.Coins, filter, p.pageSize,
		func(c sui.Coin) (bool, error) {
			if _, skip := p.excluded[c.ID]; skip {
				return false, nil
			}
			if c.Balance < budget {
				return false, nil
			}
			if p.reservations != nil && !p.reservations.Reserve(c.ID) {
				return false, nil
			}
			selected = &c
			return true, nil
		})
	metrics.GasPagesScanned.Observe(float64(pages))
	if err != nil {
		metrics.GasSelectionsTotal.WithLabelValues("remote_error").Inc()
		return nil, sui.RemoteQuery(err, retry.Classify(err).IsTransient())
	}
	return selected, nil
}

func (p *Provisioner) configure(ctx context.Context, coin sui.Coin, caller sui.Address, budget uint64) (*Configuration, error) {
	obj, err := p.q.Object(ctx, coin.ID)
	if err != nil {
		metrics.GasSelectionsTotal.WithLabelValues("remote_error").Inc()
		return nil, sui.RemoteQuery(err, retry.Classify(err).IsTransient())
	}
	if obj == nil {
		metrics.GasSelectionsTotal.WithLabelValues("invalid_input").Inc()
		return nil, sui.InvalidGasInput(coin.ID, nil)
	}
	in := objects.AsInput(obj).WithOwnedKind()
	if err := in.Validate(); err != nil {
		metrics.GasSelectionsTotal.WithLabelValues("invalid_input").Inc()
		return nil, sui.InvalidGasInput(coin.ID, err)
	}

	price, err := p.q.ReferenceGasPrice(ctx)
	if err != nil {
		metrics.GasSelectionsTotal.WithLabelValues("remote_error").Inc()
		return nil, sui.RemoteQuery(err, retry.Classify(err).IsTransient())
	}
	if price == nil {
		metrics.GasSelectionsTotal.WithLabelValues("no_price").Inc()
		return nil, sui.ReferenceGasPriceUnavailable()
	}

	return &Configuration{
		Coin:   coin,
		Input:  in,
		Price:  *price,
		Budget: budget,
		Sender: caller,
	}, nil
}
