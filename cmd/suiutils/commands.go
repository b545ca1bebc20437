package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/thounyy/sui-go-utils/pkg/argument"
	"github.com/thounyy/sui-go-utils/pkg/execute"
	"github.com/thounyy/sui-go-utils/pkg/gas"
	"github.com/thounyy/sui-go-utils/pkg/objects"
	"github.com/thounyy/sui-go-utils/pkg/signer"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
)

const provisionAttempts = 3

var provisionBackoff = 500 * time.Millisecond

func newObjectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object",
		Short: "Inspect ledger objects",
	}

	get := &cobra.Command{
		Use:   "get <object-id>",
		Short: "Fetch the latest version of one object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sui.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				obj, err := objects.Get(ctx, a.client, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), obj)
			})
		},
	}

	var objType string
	var withFields bool
	owned := &cobra.Command{
		Use:   "owned <owner>",
		Short: "List every object owned by an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := sui.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if withFields {
					contents, err := objects.GetOwnedWithFields(ctx, a.client, owner, objType, a.cfg.Sui.PageSize)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), contents)
				}
				objs, err := objects.GetOwned(ctx, a.client, owner, objType, a.cfg.Sui.PageSize)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), objs)
			})
		},
	}
	owned.Flags().StringVar(&objType, "type", "", "only list objects of this Move type")
	owned.Flags().BoolVar(&withFields, "fields", false, "include decoded Move contents")

	fields := &cobra.Command{
		Use:   "fields <parent-id>",
		Short: "List the dynamic fields of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := sui.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				dfs, err := objects.GetDynamicFields(ctx, a.client, parent, a.cfg.Sui.PageSize)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dfs)
			})
		},
	}

	cmd.AddCommand(get, owned, fields)
	return cmd
}

func newCoinCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coin",
		Short: "Inspect coin holdings",
	}

	var coinType string
	list := &cobra.Command{
		Use:   "list <owner>",
		Short: "List the coins owned by an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := sui.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				coins, err := objects.GetOwnedCoins(ctx, a.client, owner, coinType, a.cfg.Sui.PageSize)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), coins)
			})
		},
	}
	list.Flags().StringVar(&coinType, "type", "", "coin type, e.g. 0x2::sui::SUI (default: every type)")

	cmd.AddCommand(list)
	return cmd
}

func newGasCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gas",
		Short: "Reference gas price and fee-token selection",
	}

	price := &cobra.Command{
		Use:   "price",
		Short: "Print the ledger's current reference gas price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				p, err := a.client.ReferenceGasPrice(ctx)
				if err != nil {
					return err
				}
				if p == nil {
					return sui.ReferenceGasPriceUnavailable()
				}
				return printJSON(cmd.OutOrStdout(), map[string]uint64{"reference_gas_price": *p})
			})
		},
	}

	var budget uint64
	sel := &cobra.Command{
		Use:   "select <owner>",
		Short: "Show which fee-token holding would fund a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := sui.ParseAddress(args[0])
			if err != nil {
				return err
			}
			budget := resolveBudget(cmd, budget, a.cfg.Gas.Budget)
			return a.run(cmd.Context(), func(ctx context.Context) error {
				_, gasCfg, err := provisionWithRetry(ctx, a.provisioner(), owner, budget, a.logger)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), gasView{
					Coin:   gasCfg.Coin,
					Price:  gasCfg.Price,
					Budget: gasCfg.Budget,
					Sender: gasCfg.Sender,
				})
			})
		},
	}
	sel.Flags().Uint64Var(&budget, "budget", 0, "gas budget in MIST (default: SUI_GAS_BUDGET)")

	cmd.AddCommand(price, sel)
	return cmd
}

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Build, sign and execute transactions",
	}

	var budget uint64
	transfer := &cobra.Command{
		Use:   "transfer <object-id> <recipient>",
		Short: "Transfer an owned object and wait for finality",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectID, err := sui.ParseAddress(args[0])
			if err != nil {
				return err
			}
			recipient, err := sui.ParseAddress(args[1])
			if err != nil {
				return err
			}
			budget := resolveBudget(cmd, budget, a.cfg.Gas.Budget)
			if a.cfg.Signer.PrivateKey == "" {
				return fmt.Errorf("SUI_PRIVATE_KEY is required to sign transactions")
			}
			key, err := signer.Parse(a.cfg.Signer.PrivateKey)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				res, err := a.transfer(ctx, key, objectID, recipient, budget)
				if res != nil {
					if perr := printJSON(cmd.OutOrStdout(), newResultView(res)); perr != nil && err == nil {
						err = perr
					}
				}
				return err
			})
		},
	}
	transfer.Flags().Uint64Var(&budget, "budget", 0, "gas budget in MIST (default: SUI_GAS_BUDGET)")

	cmd.AddCommand(transfer)
	return cmd
}

func (a *app) provisioner(opts ...gas.Option) *gas.Provisioner {
	opts = append([]gas.Option{
		gas.WithCoinType(a.cfg.Gas.CoinType),
		gas.WithPageSize(a.cfg.Sui.PageSize),
	}, opts...)
	return gas.NewProvisioner(a.client, a.logger, opts...)
}

func (a *app) coordinator(key execute.Signer) *execute.Coordinator {
	return execute.NewCoordinator(a.client, key, a.logger,
		execute.WithPollInterval(a.cfg.Finality.PollInterval),
		execute.WithMaxAttempts(a.cfg.Finality.MaxAttempts),
		execute.WithDeadline(a.cfg.Finality.Deadline),
	)
}

// transfer runs the full pipeline: fund, add the object and recipient, move
// the object, execute.
func (a *app) transfer(ctx context.Context, key *signer.Ed25519, objectID, recipient sui.Address, budget uint64) (*execute.Result, error) {
	sender := key.Address()

	// The object being moved must not double as the gas payment.
	b, _, err := provisionWithRetry(ctx, a.provisioner(gas.WithExcluded(objectID)), sender, budget, a.logger)
	if err != nil {
		return nil, err
	}

	assembly := argument.NewAssembly(a.client, b)
	obj, err := assembly.Owned(ctx, objectID)
	if err != nil {
		return nil, err
	}
	to, err := assembly.Pure(recipient)
	if err != nil {
		return nil, err
	}
	b.TransferObjects([]txbuilder.Argument{obj}, to)

	return a.coordinator(key).Execute(ctx, b)
}

// resolveBudget returns the --budget flag when it was given, including an
// explicit 0 (first holding wins), and the configured budget otherwise.
func resolveBudget(cmd *cobra.Command, flag, configured uint64) uint64 {
	if cmd.Flags().Changed("budget") {
		return flag
	}
	return configured
}

// provisionWithRetry retries provisioning while the failure is a transient
// remote error. Every other failure is returned as is.
func provisionWithRetry(ctx context.Context, p *gas.Provisioner, caller sui.Address, budget uint64, logger *slog.Logger) (*txbuilder.Builder, *gas.Configuration, error) {
	var lastErr error
	for attempt := 1; attempt <= provisionAttempts; attempt++ {
		b, cfg, err := p.NewWithGas(ctx, caller, budget)
		if err == nil {
			return b, cfg, nil
		}
		lastErr = err
		if !sui.IsTransient(err) || attempt == provisionAttempts {
			break
		}
		logger.Warn("gas provisioning failed, retrying",
			"attempt", attempt,
			"budget", budget,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(provisionBackoff * time.Duration(attempt)):
		}
	}
	return nil, nil, lastErr
}

type gasView struct {
	Coin   sui.Coin    `json:"coin"`
	Price  uint64      `json:"price"`
	Budget uint64      `json:"budget"`
	Sender sui.Address `json:"sender"`
}

type resultView struct {
	FlowID       string                  `json:"flow_id"`
	Digest       sui.Digest              `json:"digest"`
	State        string                  `json:"state"`
	PollAttempts int                     `json:"poll_attempts"`
	Effects      *sui.TransactionEffects `json:"effects,omitempty"`
}

func newResultView(res *execute.Result) resultView {
	return resultView{
		FlowID:       res.FlowID,
		Digest:       res.Digest,
		State:        res.State.String(),
		PollAttempts: res.PollAttempts,
		Effects:      res.Effects,
	}
}
