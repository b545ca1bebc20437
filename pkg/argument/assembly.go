package argument

import (
	"context"

	"github.com/thounyy/sui-go-utils/pkg/objects"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
)

type registration struct {
	kind txbuilder.UsageKind
	arg  txbuilder.Argument
}

// Assembly builds the arguments of one transaction. Each object id is fetched
// at most once; later references reuse that snapshot, and a repeated
// reference with the same usage kind returns the input already registered.
//
// An Assembly is not safe for concurrent use and must not outlive its builder.
type Assembly struct {
	q         objects.ObjectFetcher
	b         *txbuilder.Builder
	snapshots map[sui.Address]*sui.Object
	inputs    map[sui.Address][]registration
}

func NewAssembly(q objects.ObjectFetcher, b *txbuilder.Builder) *Assembly {
	a := &Assembly{q: q}
	a.Reset(b)
	return a
}

// Builder returns the builder arguments are registered on.
func (a *Assembly) Builder() *txbuilder.Builder {
	return a.b
}

// Reset starts a new assembly on b, dropping every memoized snapshot.
func (a *Assembly) Reset(b *txbuilder.Builder) {
	a.b = b
	a.snapshots = make(map[sui.Address]*sui.Object)
	a.inputs = make(map[sui.Address][]registration)
}

func (a *Assembly) Pure(value any) (txbuilder.Argument, error) {
	return Pure(a.b, value)
}

func (a *Assembly) Owned(ctx context.Context, id sui.Address) (txbuilder.Argument, error) {
	return a.object(ctx, id, txbuilder.UsageOwned)
}

func (a *Assembly) Receiving(ctx context.Context, id sui.Address) (txbuilder.Argument, error) {
	return a.object(ctx, id, txbuilder.UsageReceiving)
}

func (a *Assembly) SharedRef(ctx context.Context, id sui.Address) (txbuilder.Argument, error) {
	return a.object(ctx, id, txbuilder.UsageSharedRef)
}

func (a *Assembly) SharedMut(ctx context.Context, id sui.Address) (txbuilder.Argument, error) {
	return a.object(ctx, id, txbuilder.UsageSharedMut)
}

// Snapshot returns the object fetched for id in this assembly, if any.
func (a *Assembly) Snapshot(id sui.Address) (*sui.Object, bool) {
	obj, ok := a.snapshots[id]
	return obj, ok
}

func (a *Assembly) object(ctx context.Context, id sui.Address, kind txbuilder.UsageKind) (txbuilder.Argument, error) {
	for _, r := range a.inputs[id] {
		if r.kind == kind {
			return r.arg, nil
		}
	}

	obj, ok := a.snapshots[id]
	if !ok {
		fetched, err := objects.Get(ctx, a.q, id)
		if err != nil {
			return txbuilder.Argument{}, err
		}
		obj = fetched
		a.snapshots[id] = obj
	}

	arg := a.b.Input(tag(objects.AsInput(obj), kind))
	a.inputs[id] = append(a.inputs[id], registration{kind: kind, arg: arg})
	return arg, nil
}
