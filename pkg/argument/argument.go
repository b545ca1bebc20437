// Package argument turns argument requests into builder-native handles.
//
// The package-level constructors fetch on every call. An Assembly shares one
// fetched snapshot per object id for the lifetime of a single assembly.
package argument

import (
	"context"

	"github.com/thounyy/sui-go-utils/pkg/objects"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
)

// Pure encodes value and registers it on b. No network access.
func Pure(b *txbuilder.Builder, value any) (txbuilder.Argument, error) {
	arg, err := b.Pure(value)
	if err != nil {
		return txbuilder.Argument{}, sui.TransactionBuilding(err)
	}
	return arg, nil
}

func Owned(ctx context.Context, q objects.ObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
	return object(ctx, q, b, id, txbuilder.UsageOwned)
}

func Receiving(ctx context.Context, q objects.ObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
	return object(ctx, q, b, id, txbuilder.UsageReceiving)
}

func SharedRef(ctx context.Context, q objects.ObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
	return object(ctx, q, b, id, txbuilder.UsageSharedRef)
}

func SharedMut(ctx context.Context, q objects.ObjectFetcher, b *txbuilder.Builder, id sui.Address) (txbuilder.Argument, error) {
	return object(ctx, q, b, id, txbuilder.UsageSharedMut)
}

func object(ctx context.Context, q objects.ObjectFetcher, b *txbuilder.Builder, id sui.Address, kind txbuilder.UsageKind) (txbuilder.Argument, error) {
	in, err := objects.GetAsInput(ctx, q, id)
	if err != nil {
		return txbuilder.Argument{}, err
	}
	return b.Input(tag(in, kind)), nil
}

func tag(in txbuilder.ObjectInput, kind txbuilder.UsageKind) txbuilder.ObjectInput {
	switch kind {
	case txbuilder.UsageOwned:
		return in.WithOwnedKind()
	case txbuilder.UsageReceiving:
		return in.WithReceivingKind()
	case txbuilder.UsageSharedRef:
		return in.WithSharedRefKind()
	case txbuilder.UsageSharedMut:
		return in.WithSharedMutKind()
	default:
		return in
	}
}
