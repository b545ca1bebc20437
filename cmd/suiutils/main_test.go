package main

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thounyy/sui-go-utils/pkg/gas"
	gasmocks "github.com/thounyy/sui-go-utils/pkg/gas/mocks"
	"github.com/thounyy/sui-go-utils/pkg/paginate"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"go.uber.org/mock/gomock"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"trace": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestRootCommand_Tree(t *testing.T) {
	root := newRootCommand(&app{})

	for _, path := range [][]string{
		{"object", "get"},
		{"object", "owned"},
		{"object", "fields"},
		{"coin", "list"},
		{"gas", "price"},
		{"gas", "select"},
		{"tx", "transfer"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	owned, _, err := root.Find([]string{"object", "owned"})
	require.NoError(t, err)
	assert.NotNil(t, owned.Flags().Lookup("type"))
	assert.NotNil(t, owned.Flags().Lookup("fields"))

	transfer, _, err := root.Find([]string{"tx", "transfer"})
	require.NoError(t, err)
	assert.NotNil(t, transfer.Flags().Lookup("budget"))
}

func TestRootCommand_MissingEndpointFails(t *testing.T) {
	t.Setenv("SUI_GRAPHQL_URL", "")

	root := newRootCommand(&app{})
	root.SetArgs([]string{"gas", "price"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUI_GRAPHQL_URL")
}

func TestResolveBudget(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want uint64
	}{
		{"flag absent uses config", nil, 10_000_000},
		{"explicit zero kept", []string{"--budget", "0"}, 0},
		{"explicit value", []string{"--budget", "500"}, 500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var budget uint64
			cmd := &cobra.Command{Use: "select"}
			cmd.Flags().Uint64Var(&budget, "budget", 0, "")
			require.NoError(t, cmd.ParseFlags(tc.args))

			assert.Equal(t, tc.want, resolveBudget(cmd, budget, 10_000_000))
		})
	}
}

func TestRunMetricsServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runMetricsServer(ctx, "127.0.0.1:0", slog.Default())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func provisionFixture(t *testing.T) (*gasmocks.MockQuerier, sui.Address) {
	t.Helper()
	provisionBackoff = time.Millisecond
	t.Cleanup(func() { provisionBackoff = 500 * time.Millisecond })
	return gasmocks.NewMockQuerier(gomock.NewController(t)), sui.MustParseAddress("0xa11ce")
}

func TestProvisionWithRetry_RetriesTransient(t *testing.T) {
	q, owner := provisionFixture(t)
	coinID := sui.MustParseAddress("0x77")
	price := uint64(1000)

	gomock.InOrder(
		q.EXPECT().Coins(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(paginate.Page[sui.Coin]{}, errors.New("returned error 503 Service Unavailable")),
		q.EXPECT().Coins(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(paginate.Page[sui.Coin]{Items: []sui.Coin{{ID: coinID, Version: 3, Balance: 10_000, Owner: owner}}}, nil),
	)
	q.EXPECT().Object(gomock.Any(), coinID).Return(&sui.Object{
		ID:      coinID,
		Version: 3,
		Owner:   sui.Owner{Kind: sui.OwnerAddress, Address: owner},
	}, nil)
	q.EXPECT().ReferenceGasPrice(gomock.Any()).Return(&price, nil)

	b, cfg, err := provisionWithRetry(context.Background(), gas.NewProvisioner(q, slog.Default()), owner, 5_000, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, coinID, cfg.Coin.ID)
	assert.Equal(t, price, cfg.Price)
}

func TestProvisionWithRetry_TerminalNotRetried(t *testing.T) {
	q, owner := provisionFixture(t)

	q.EXPECT().Coins(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(paginate.Page[sui.Coin]{Items: []sui.Coin{{ID: sui.MustParseAddress("0x1"), Balance: 10}}}, nil).
		Times(1)

	_, _, err := provisionWithRetry(context.Background(), gas.NewProvisioner(q, slog.Default()), owner, 5_000, slog.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrGasCoinNotFound)
}

func TestProvisionWithRetry_GivesUp(t *testing.T) {
	q, owner := provisionFixture(t)

	q.EXPECT().Coins(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(paginate.Page[sui.Coin]{}, errors.New("returned error 502 Bad Gateway")).
		Times(provisionAttempts)

	_, _, err := provisionWithRetry(context.Background(), gas.NewProvisioner(q, slog.Default()), owner, 5_000, slog.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrRemoteQuery)
	assert.True(t, sui.IsTransient(err))
}
