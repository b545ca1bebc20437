package argument

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thounyy/sui-go-utils/pkg/objects/mocks"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
	"go.uber.org/mock/gomock"
)

func TestAssembly_SharesSnapshotAcrossRoles(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)
	q.EXPECT().Object(gomock.Any(), sharedID).Return(shared(sharedID), nil).Times(1)

	a := NewAssembly(q, txbuilder.New())
	ctx := context.Background()

	ref, err := a.SharedRef(ctx, sharedID)
	require.NoError(t, err)
	mut, err := a.SharedMut(ctx, sharedID)
	require.NoError(t, err)

	assert.NotEqual(t, ref.String(), mut.String())
	assert.Equal(t, 2, a.Builder().InputCount())

	snap, ok := a.Snapshot(sharedID)
	require.True(t, ok)
	assert.Equal(t, uint64(40), snap.Version)
}

func TestAssembly_SameRoleReusesInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)
	q.EXPECT().Object(gomock.Any(), ownedID).Return(owned(ownedID), nil).Times(1)

	a := NewAssembly(q, txbuilder.New())
	ctx := context.Background()

	first, err := a.Owned(ctx, ownedID)
	require.NoError(t, err)
	second, err := a.Owned(ctx, ownedID)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 1, a.Builder().InputCount())
}

func TestAssembly_ResetInvalidatesSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)

	stale := owned(ownedID)
	fresh := owned(ownedID)
	fresh.Version = 4
	gomock.InOrder(
		q.EXPECT().Object(gomock.Any(), ownedID).Return(stale, nil),
		q.EXPECT().Object(gomock.Any(), ownedID).Return(fresh, nil),
	)

	a := NewAssembly(q, txbuilder.New())
	ctx := context.Background()
	_, err := a.Owned(ctx, ownedID)
	require.NoError(t, err)

	next := txbuilder.New()
	a.Reset(next)
	assert.Same(t, next, a.Builder())
	_, ok := a.Snapshot(ownedID)
	assert.False(t, ok)

	_, err = a.Owned(ctx, ownedID)
	require.NoError(t, err)
	snap, ok := a.Snapshot(ownedID)
	require.True(t, ok)
	assert.Equal(t, uint64(4), snap.Version)
	assert.Equal(t, 1, next.InputCount())
}

func TestAssembly_FailedFetchIsNotMemoized(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockObjectFetcher(ctrl)
	gomock.InOrder(
		q.EXPECT().Object(gomock.Any(), receiveID).Return(nil, nil),
		q.EXPECT().Object(gomock.Any(), receiveID).Return(owned(receiveID), nil),
	)

	a := NewAssembly(q, txbuilder.New())
	ctx := context.Background()

	_, err := a.Receiving(ctx, receiveID)
	assert.ErrorIs(t, err, sui.ErrObjectNotFound)

	arg, err := a.Receiving(ctx, receiveID)
	require.NoError(t, err)
	assert.Equal(t, "Input(0)", arg.String())
}

func TestAssembly_Pure(t *testing.T) {
	a := NewAssembly(nil, txbuilder.New())
	arg, err := a.Pure(uint64(42))
	require.NoError(t, err)
	assert.Equal(t, "Input(0)", arg.String())
}
