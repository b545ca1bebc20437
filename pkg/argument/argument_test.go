package argument

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thounyy/sui-go-utils/pkg/objects/mocks"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
	"go.uber.org/mock/gomock"
)

var (
	caller    = sui.MustParseAddress("0xca11e7")
	ownedID   = sui.MustParseAddress("0x100")
	sharedID  = sui.MustParseAddress("0x6")
	receiveID = sui.MustParseAddress("0x200")
)

func owned(id sui.Address) *sui.Object {
	return &sui.Object{ID: id, Version: 3, Owner: sui.Owner{Kind: sui.OwnerAddress, Address: caller}}
}

func shared(id sui.Address) *sui.Object {
	return &sui.Object{ID: id, Version: 40, Owner: sui.Owner{Kind: sui.OwnerShared, InitialSharedVersion: 1}}
}

func finishable(b *txbuilder.Builder) *txbuilder.Builder {
	gas := txbuilder.FromObject(&sui.Object{ID: sui.MustParseAddress("0x900"), Version: 1, Owner: sui.Owner{Kind: sui.OwnerAddress, Address: caller}})
	b.AddGasObjects(gas.WithOwnedKind())
	b.SetGasPrice(1000)
	b.SetGasBudget(5000)
	b.SetSender(caller)
	return b
}

func TestPure_NoNetwork(t *testing.T) {
	b := txbuilder.New()

	arg, err := Pure(b, uint64(42))
	require.NoError(t, err)
	assert.Equal(t, "Input(0)", arg.String())
	assert.Equal(t, 1, b.InputCount())
}

func TestPure_SerializationError(t *testing.T) {
	b := txbuilder.New()

	_, err := Pure(b, math.Pi)
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrTransactionBuilding)
	assert.Equal(t, 0, b.InputCount())
}

func TestObjectConstructors_TagUsageKind(t *testing.T) {
	tests := []struct {
		name string
		obj  *sui.Object
		call func(ctx context.Context, q *mocks.MockObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error)
	}{
		{"owned", owned(ownedID), func(ctx context.Context, q *mocks.MockObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
			return Owned(ctx, q, b, id)
		}},
		{"receiving", owned(receiveID), func(ctx context.Context, q *mocks.MockObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
			return Receiving(ctx, q, b, id)
		}},
		{"shared ref", shared(sharedID), func(ctx context.Context, q *mocks.MockObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
			return SharedRef(ctx, q, b, id)
		}},
		{"shared mut", shared(sharedID), func(ctx context.Context, q *mocks.MockObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
			return SharedMut(ctx, q, b, id)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := mocks.NewMockObjectFetcher(ctrl)
			q.EXPECT().Object(gomock.Any(), tc.obj.ID).Return(tc.obj, nil).Times(1)

			b := finishable(txbuilder.New())
			arg, err := tc.call(context.Background(), q, b, tc.obj.ID)
			require.NoError(t, err)
			assert.Equal(t, "Input(0)", arg.String())
			assert.Equal(t, 1, b.InputCount())

			b.MoveCall(sui.MustParseAddress("0x2"), "m", "f", nil, arg)
			_, err = b.Finish()
			assert.NoError(t, err, "tagged input of a compatible owner finalizes")
		})
	}
}

func TestObjectConstructors_IncompatibleOwnerFailsAtFinish(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)
	q.EXPECT().Object(gomock.Any(), ownedID).Return(owned(ownedID), nil)

	b := finishable(txbuilder.New())
	arg, err := SharedMut(context.Background(), q, b, ownedID)
	require.NoError(t, err)

	b.MoveCall(sui.MustParseAddress("0x2"), "m", "f", nil, arg)
	_, err = b.Finish()
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrTransactionBuilding)
}

func TestObjectConstructors_RefetchEveryCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)
	q.EXPECT().Object(gomock.Any(), ownedID).Return(owned(ownedID), nil).Times(2)

	b := txbuilder.New()
	first, err := Owned(context.Background(), q, b, ownedID)
	require.NoError(t, err)
	second, err := Owned(context.Background(), q, b, ownedID)
	require.NoError(t, err)

	assert.NotEqual(t, first.String(), second.String())
	assert.Equal(t, 2, b.InputCount())
}

func TestObjectConstructors_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)
	q.EXPECT().Object(gomock.Any(), ownedID).Return(nil, nil)

	b := txbuilder.New()
	_, err := Owned(context.Background(), q, b, ownedID)
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrObjectNotFound)
	assert.Equal(t, 0, b.InputCount(), "failed resolution registers nothing")
}

func TestObjectConstructors_RemoteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)
	q.EXPECT().Object(gomock.Any(), sharedID).Return(nil, errors.New("returned error 503 Service Unavailable"))

	_, err := SharedRef(context.Background(), q, txbuilder.New(), sharedID)
	require.Error(t, err)
	assert.ErrorIs(t, err, sui.ErrRemoteQuery)
	assert.True(t, sui.IsTransient(err))
}
