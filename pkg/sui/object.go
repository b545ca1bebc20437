package sui

import "encoding/json"

// OwnerKind classifies who controls an object at fetch time.
type OwnerKind int

const (
	OwnerUnknown OwnerKind = iota
	OwnerAddress
	OwnerObject
	OwnerShared
	OwnerImmutable
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerAddress:
		return "address"
	case OwnerObject:
		return "object"
	case OwnerShared:
		return "shared"
	case OwnerImmutable:
		return "immutable"
	default:
		return "unknown"
	}
}

type Owner struct {
	Kind OwnerKind
	// Address is the owning account (OwnerAddress) or parent object (OwnerObject).
	Address Address
	// InitialSharedVersion is only set for OwnerShared.
	InitialSharedVersion uint64
}

// MoveValue is a decoded Move value: its type and JSON rendering, plus the raw
// bytes when the remote returned them.
type MoveValue struct {
	Type string          `json:"type"`
	JSON json.RawMessage `json:"json"`
	BCS  []byte          `json:"bcs,omitempty"`
}

// ObjectRef pins an object to one version.
type ObjectRef struct {
	ID      Address
	Version uint64
	Digest  Digest
}

// Object is a fetched, versioned ledger object. It is a read-only snapshot;
// nothing in this module caches it across assemblies.
type Object struct {
	ID       Address
	Version  uint64
	Digest   Digest
	Owner    Owner
	Type     string
	Contents *MoveValue
	BCS      []byte
}

func (o *Object) Ref() ObjectRef {
	return ObjectRef{ID: o.ID, Version: o.Version, Digest: o.Digest}
}

// Coin is a fee-token (or any coin) holding as listed by owner.
type Coin struct {
	ID       Address
	Version  uint64
	Digest   Digest
	Balance  uint64
	Owner    Address
	CoinType string
}

// DynamicField is one entry under a parent object. ValueObjectID is set for
// dynamic object fields, Value for plain dynamic fields.
type DynamicField struct {
	Name          MoveValue
	Value         *MoveValue
	ValueObjectID *Address
}

// ObjectFilter narrows an object listing. Zero fields are ignored.
type ObjectFilter struct {
	Owner     *Address
	Type      string
	ObjectIDs []Address
}

// CoinFilter selects an owner's coins, optionally of one coin type
// (e.g. "0x2::sui::SUI"). An empty CoinType lists every coin type.
type CoinFilter struct {
	Owner    Address
	CoinType string
}
