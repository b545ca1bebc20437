package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thounyy/sui-go-utils/internal/circuitbreaker"
	"github.com/thounyy/sui-go-utils/internal/ratelimit"
	"github.com/thounyy/sui-go-utils/pkg/paginate"
	"github.com/thounyy/sui-go-utils/pkg/sui"
)

const (
	objectA = "0x0000000000000000000000000000000000000000000000000000000000000a11"
	ownerB  = "0x00000000000000000000000000000000000000000000000000000000000000b0"
	digestX = "11111111111111111111111111111111"
)

type gqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// newTestClient serves each request with the handler registered under its
// operation name.
func newTestClient(t *testing.T, handlers map[string]func(req gqlRequest) string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req gqlRequest
		require.NoError(t, json.Unmarshal(body, &req))

		h, ok := handlers[req.OperationName]
		if !assert.Truef(t, ok, "unexpected operation %q", req.OperationName) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, h(req))
	}))
	t.Cleanup(server.Close)
	return New(server.URL, slog.Default(), WithLimiter(ratelimit.NewLimiter(0, 0, "test"))), server
}

func objectJSON(owner string) string {
	return `{"address":"` + objectA + `","version":7,"digest":"` + digestX + `",` +
		`"owner":` + owner + `,` +
		`"asMoveObject":{"contents":{"type":{"repr":"0x2::coin::Coin<0x2::sui::SUI>"},"json":{"balance":"10"},"bcs":"AQI="}},` +
		`"bcs":"AwQ="}`
}

func TestObject_DecodesOwnerVariants(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		want  sui.Owner
	}{
		{"address", `{"__typename":"AddressOwner","owner":{"address":"` + ownerB + `"}}`,
			sui.Owner{Kind: sui.OwnerAddress, Address: sui.MustParseAddress(ownerB)}},
		{"parent", `{"__typename":"Parent","parent":{"address":"` + ownerB + `"}}`,
			sui.Owner{Kind: sui.OwnerObject, Address: sui.MustParseAddress(ownerB)}},
		{"shared", `{"__typename":"Shared","initialSharedVersion":3}`,
			sui.Owner{Kind: sui.OwnerShared, InitialSharedVersion: 3}},
		{"immutable", `{"__typename":"Immutable"}`, sui.Owner{Kind: sui.OwnerImmutable}},
		{"missing", `null`, sui.Owner{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, map[string]func(gqlRequest) string{
				"Object": func(req gqlRequest) string {
					assert.Equal(t, objectA, req.Variables["id"])
					assert.Contains(t, req.Query, "fragment ObjectFields on Object")
					return `{"data":{"object":` + objectJSON(tc.owner) + `}}`
				},
			})

			obj, err := c.Object(context.Background(), sui.MustParseAddress(objectA))
			require.NoError(t, err)
			require.NotNil(t, obj)

			assert.Equal(t, sui.MustParseAddress(objectA), obj.ID)
			assert.Equal(t, uint64(7), obj.Version)
			assert.Equal(t, digestX, obj.Digest.String())
			assert.Equal(t, tc.want, obj.Owner)
			assert.Equal(t, "0x2::coin::Coin<0x2::sui::SUI>", obj.Type)
			require.NotNil(t, obj.Contents)
			assert.JSONEq(t, `{"balance":"10"}`, string(obj.Contents.JSON))
			assert.Equal(t, []byte{1, 2}, obj.Contents.BCS)
			assert.Equal(t, []byte{3, 4}, obj.BCS)
		})
	}
}

func TestObject_AbsentReturnsNil(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"Object": func(gqlRequest) string { return `{"data":{"object":null}}` },
	})

	obj, err := c.Object(context.Background(), sui.MustParseAddress(objectA))
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestObjects_PageAndFilter(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"Objects": func(req gqlRequest) string {
			filter := req.Variables["filter"].(map[string]any)
			assert.Equal(t, ownerB, filter["owner"])
			assert.Equal(t, "0x2::coin::Coin", filter["type"])
			assert.NotContains(t, filter, "objectIds")
			assert.EqualValues(t, 50, req.Variables["first"])
			assert.Equal(t, "c1", req.Variables["after"])
			owner := `{"__typename":"AddressOwner","owner":{"address":"` + ownerB + `"}}`
			return `{"data":{"objects":{"pageInfo":{"hasNextPage":true,"endCursor":"c2"},"nodes":[` +
				objectJSON(owner) + `]}}}`
		},
	})

	owner := sui.MustParseAddress(ownerB)
	cursor := "c1"
	page, err := c.Objects(context.Background(), sui.ObjectFilter{Owner: &owner, Type: "0x2::coin::Coin"}, &cursor, 500)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, page.EndCursor)
	assert.Equal(t, "c2", *page.EndCursor)
	assert.Equal(t, sui.OwnerAddress, page.Items[0].Owner.Kind)
}

func TestObjects_FirstPageSendsNullCursor(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"Objects": func(req gqlRequest) string {
			assert.Contains(t, req.Variables, "after")
			assert.Nil(t, req.Variables["after"])
			ids := req.Variables["filter"].(map[string]any)["objectIds"].([]any)
			assert.Equal(t, []any{objectA}, ids)
			return `{"data":{"objects":{"pageInfo":{"hasNextPage":false,"endCursor":null},"nodes":[]}}}`
		},
	})

	page, err := c.Objects(context.Background(), sui.ObjectFilter{ObjectIDs: []sui.Address{sui.MustParseAddress(objectA)}}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNextPage)
}

func TestCoins_DecodesBalances(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"Coins": func(req gqlRequest) string {
			assert.Equal(t, ownerB, req.Variables["owner"])
			assert.Equal(t, "0x2::sui::SUI", req.Variables["type"])
			return `{"data":{"address":{"coins":{"pageInfo":{"hasNextPage":false,"endCursor":"e"},"nodes":[` +
				`{"address":"` + objectA + `","version":4,"digest":"` + digestX + `","coinBalance":"18446744073709551615",` +
				`"contents":{"type":{"repr":"0x2::coin::Coin<0x2::sui::SUI>"}}}]}}}}`
		},
	})

	owner := sui.MustParseAddress(ownerB)
	page, err := c.Coins(context.Background(), sui.CoinFilter{Owner: owner, CoinType: "0x2::sui::SUI"}, nil, 50)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	coin := page.Items[0]
	assert.Equal(t, uint64(18446744073709551615), coin.Balance)
	assert.Equal(t, owner, coin.Owner)
	assert.Equal(t, uint64(4), coin.Version)
	assert.Equal(t, "0x2::coin::Coin<0x2::sui::SUI>", coin.CoinType)
}

func TestCoins_UnknownOwnerIsEmpty(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"Coins": func(req gqlRequest) string {
			assert.NotContains(t, req.Variables, "type")
			return `{"data":{"address":null}}`
		},
	})

	page, err := c.Coins(context.Background(), sui.CoinFilter{Owner: sui.MustParseAddress(ownerB)}, nil, 50)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNextPage)
}

func TestDynamicFields_ValueVariants(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"DynamicFields": func(req gqlRequest) string {
			assert.Equal(t, ownerB, req.Variables["parent"])
			return `{"data":{"owner":{"dynamicFields":{"pageInfo":{"hasNextPage":false,"endCursor":null},"nodes":[` +
				`{"name":{"type":{"repr":"u64"},"json":"1","bcs":"AQAAAAAAAAA="},` +
				`"value":{"__typename":"MoveValue","type":{"repr":"bool"},"json":true,"bcs":"AQ=="}},` +
				`{"name":{"type":{"repr":"u64"},"json":"2","bcs":"AgAAAAAAAAA="},` +
				`"value":{"__typename":"MoveObject","address":"` + objectA + `"}}]}}}}`
		},
	})

	page, err := c.DynamicFields(context.Background(), sui.MustParseAddress(ownerB), nil, 50)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "u64", first.Name.Type)
	require.NotNil(t, first.Value)
	assert.Equal(t, "bool", first.Value.Type)
	assert.Nil(t, first.ValueObjectID)

	second := page.Items[1]
	assert.Nil(t, second.Value)
	require.NotNil(t, second.ValueObjectID)
	assert.Equal(t, sui.MustParseAddress(objectA), *second.ValueObjectID)
}

func TestReferenceGasPrice(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *uint64
	}{
		{"present", `{"data":{"epoch":{"referenceGasPrice":"750"}}}`, ptr(uint64(750))},
		{"no price", `{"data":{"epoch":{"referenceGasPrice":null}}}`, nil},
		{"no epoch", `{"data":{"epoch":null}}`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, map[string]func(gqlRequest) string{
				"ReferenceGasPrice": func(gqlRequest) string { return tc.body },
			})
			price, err := c.ReferenceGasPrice(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, price)
		})
	}
}

const effectsJSON = `{"status":"SUCCESS","errors":null,"lamportVersion":12,"checkpoint":{"sequenceNumber":99},` +
	`"gasEffects":{"gasSummary":{"computationCost":"1000","storageCost":"2000","storageRebate":"500","nonRefundableStorageFee":"5"}},` +
	`"transactionBlock":{"digest":"` + digestX + `"}}`

func TestExecuteTransaction_SendsBase64AndSignatures(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"ExecuteTransaction": func(req gqlRequest) string {
			assert.True(t, strings.HasPrefix(strings.TrimSpace(req.Query), "mutation ExecuteTransaction"))
			assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), req.Variables["txBytes"])
			assert.Equal(t, []any{"sig-a"}, req.Variables["signatures"])
			return `{"data":{"executeTransactionBlock":{"errors":null,"effects":` + effectsJSON + `}}}`
		},
	})

	effects, err := c.ExecuteTransaction(context.Background(), []byte{1, 2, 3}, []sui.UserSignature{"sig-a"})
	require.NoError(t, err)
	require.NotNil(t, effects)
	assert.True(t, effects.Succeeded())
	assert.Equal(t, digestX, effects.Digest.String())
	assert.Equal(t, uint64(12), effects.LamportVersion)
	require.NotNil(t, effects.Checkpoint)
	assert.Equal(t, uint64(99), *effects.Checkpoint)
	assert.Equal(t, sui.GasSummary{ComputationCost: 1000, StorageCost: 2000, StorageRebate: 500, NonRefundableStorageFee: 5}, effects.Gas)
}

func TestExecuteTransaction_RejectedIsRemoteQueryError(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"ExecuteTransaction": func(gqlRequest) string {
			return `{"data":{"executeTransactionBlock":{"errors":["invalid signature"],"effects":null}}}`
		},
	})

	_, err := c.ExecuteTransaction(context.Background(), []byte{1}, []sui.UserSignature{"sig"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrRemoteQuery)
	assert.Contains(t, err.Error(), "invalid signature")
	assert.False(t, sui.IsTransient(err))
}

func TestTransaction_AbsentAndPresent(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"TransactionBlock": func(req gqlRequest) string {
			calls++
			assert.Equal(t, digestX, req.Variables["digest"])
			if calls == 1 {
				return `{"data":{"transactionBlock":null}}`
			}
			return `{"data":{"transactionBlock":{"digest":"` + digestX + `","effects":` + effectsJSON + `}}}`
		},
	})
	digest, err := sui.ParseDigest(digestX)
	require.NoError(t, err)

	block, err := c.Transaction(context.Background(), digest)
	require.NoError(t, err)
	assert.Nil(t, block)

	block, err = c.Transaction(context.Background(), digest)
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, digest, block.Digest)
	require.NotNil(t, block.Effects)
	assert.Equal(t, sui.StatusSuccess, block.Effects.Status)
}

func TestTransaction_FailureCarriesErrorText(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"TransactionBlock": func(gqlRequest) string {
			return `{"data":{"transactionBlock":{"digest":"` + digestX + `","effects":{"status":"FAILURE","errors":"InsufficientGas","lamportVersion":3}}}}`
		},
	})
	digest, err := sui.ParseDigest(digestX)
	require.NoError(t, err)

	block, err := c.Transaction(context.Background(), digest)
	require.NoError(t, err)
	require.NotNil(t, block.Effects)
	assert.Equal(t, sui.StatusFailure, block.Effects.Status)
	assert.Equal(t, "InsufficientGas", block.Effects.Error)
	assert.Equal(t, digest, block.Effects.Digest)
	assert.Nil(t, block.Effects.Checkpoint)
}

func TestRunQuery_SendsDocumentOperationName(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{
		"OwnedContents": func(req gqlRequest) string {
			assert.Equal(t, "x", req.Variables["k"])
			return `{"data":{"value":5}}`
		},
	})

	var out struct {
		Value int `json:"value"`
	}
	err := c.RunQuery(context.Background(), "query OwnedContents($k: String) { value }", map[string]any{"k": "x"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Value)
}

func TestRemoteErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantTransient bool
		wantContains  string
	}{
		{"graphql error", http.StatusOK, `{"data":null,"errors":[{"message":"object not found in store"}]}`, false, "object not found in store"},
		{"graphql transient", http.StatusOK, `{"data":null,"errors":[{"message":"request timed out"}]}`, true, "request timed out"},
		{"unavailable", http.StatusServiceUnavailable, `overloaded`, true, "503"},
		{"bad request", http.StatusBadRequest, `nope`, false, "400"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()
			c := New(server.URL, nil)

			_, err := c.Object(context.Background(), sui.MustParseAddress(objectA))
			require.Error(t, err)
			assert.ErrorIs(t, err, sui.ErrRemoteQuery)
			assert.Equal(t, tc.wantTransient, sui.IsTransient(err))
			assert.Contains(t, err.Error(), tc.wantContains)
		})
	}
}

func TestRemoteErrors_CancelledContext(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(gqlRequest) string{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Objects(ctx, sui.ObjectFilter{}, nil, paginate.MaxPageSize)
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrRemoteQuery)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBreaker_OpensOnTransientFailuresOnly(t *testing.T) {
	var hits atomic.Int32
	status := atomic.Int32{}
	status.Store(http.StatusBadRequest)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	breaker := circuitbreaker.New(circuitbreaker.Config{
		Endpoint:         server.URL,
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
	})
	c := New(server.URL, nil, WithBreaker(breaker))
	id := sui.MustParseAddress(objectA)

	// Terminal failures mean the endpoint answered.
	for i := 0; i < 3; i++ {
		_, err := c.Object(context.Background(), id)
		require.Error(t, err)
	}
	assert.Equal(t, circuitbreaker.StateClosed, breaker.State())

	status.Store(http.StatusServiceUnavailable)
	for i := 0; i < 2; i++ {
		_, err := c.Object(context.Background(), id)
		require.Error(t, err)
	}
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())
	sent := hits.Load()

	_, err := c.Object(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrRemoteQuery)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.True(t, sui.IsTransient(err))
	assert.Equal(t, sent, hits.Load(), "open breaker must not reach the endpoint")
}

func ptr[T any](v T) *T { return &v }
