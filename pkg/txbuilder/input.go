package txbuilder

import (
	"fmt"

	"github.com/thounyy/sui-go-utils/pkg/sui"
)

// UsageKind is the role an object plays as a transaction input.
type UsageKind int

const (
	UsageUnset UsageKind = iota
	UsageOwned
	UsageSharedRef
	UsageSharedMut
	UsageReceiving
)

func (k UsageKind) String() string {
	switch k {
	case UsageOwned:
		return "owned"
	case UsageSharedRef:
		return "shared_ref"
	case UsageSharedMut:
		return "shared_mut"
	case UsageReceiving:
		return "receiving"
	default:
		return "unset"
	}
}

// ObjectInput is a builder-ready reference to a fetched object. It starts with
// no usage kind; the With* methods return a tagged copy and the last one wins.
type ObjectInput struct {
	ref   sui.ObjectRef
	owner sui.Owner
	kind  UsageKind
}

// FromObject captures the id, version, digest and owner of obj.
func FromObject(obj *sui.Object) ObjectInput {
	return ObjectInput{ref: obj.Ref(), owner: obj.Owner}
}

func (in ObjectInput) WithOwnedKind() ObjectInput {
	in.kind = UsageOwned
	return in
}

func (in ObjectInput) WithReceivingKind() ObjectInput {
	in.kind = UsageReceiving
	return in
}

func (in ObjectInput) WithSharedRefKind() ObjectInput {
	in.kind = UsageSharedRef
	return in
}

func (in ObjectInput) WithSharedMutKind() ObjectInput {
	in.kind = UsageSharedMut
	return in
}

func (in ObjectInput) Kind() UsageKind {
	return in.kind
}

func (in ObjectInput) ID() sui.Address {
	return in.ref.ID
}

func (in ObjectInput) Version() uint64 {
	return in.ref.Version
}

func (in ObjectInput) Ref() sui.ObjectRef {
	return in.ref
}

func (in ObjectInput) OwnerKind() sui.OwnerKind {
	return in.owner.Kind
}

// Validate checks that a usage kind is set and that it fits the owner kind
// the object had when fetched.
func (in ObjectInput) Validate() error {
	switch in.kind {
	case UsageUnset:
		return fmt.Errorf("object %s has no usage kind", in.ref.ID)
	case UsageOwned:
		switch in.owner.Kind {
		case sui.OwnerAddress, sui.OwnerObject, sui.OwnerImmutable:
			return nil
		}
	case UsageReceiving:
		if in.owner.Kind == sui.OwnerAddress {
			return nil
		}
	case UsageSharedRef, UsageSharedMut:
		if in.owner.Kind == sui.OwnerShared {
			return nil
		}
	}
	return fmt.Errorf("object %s: usage %s is not valid for %s owner", in.ref.ID, in.kind, in.owner.Kind)
}

func (in ObjectInput) encode(e encoder) {
	switch in.kind {
	case UsageSharedRef, UsageSharedMut:
		e.WriteULEB128(1)
		e.WriteFixed(in.ref.ID[:])
		e.WriteU64(in.owner.InitialSharedVersion)
		e.WriteBool(in.kind == UsageSharedMut)
	case UsageReceiving:
		e.WriteULEB128(2)
		encodeObjectRef(e, in.ref)
	default:
		e.WriteULEB128(0)
		encodeObjectRef(e, in.ref)
	}
}

func encodeObjectRef(e encoder, ref sui.ObjectRef) {
	e.WriteFixed(ref.ID[:])
	e.WriteU64(ref.Version)
	e.WriteBytes(ref.Digest[:])
}
