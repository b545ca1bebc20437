package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/thounyy/sui-go-utils/pkg/sui"
)

// bigInt decodes the schema's BigInt scalar, which arrives as a JSON string.
type bigInt uint64

func (b *bigInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 {
		return fmt.Errorf("empty BigInt")
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse BigInt %q: %w", data, err)
	}
	*b = bigInt(n)
	return nil
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type typeRepr struct {
	Repr string `json:"repr"`
}

type addressNode struct {
	Address sui.Address `json:"address"`
}

type moveValueNode struct {
	Type typeRepr        `json:"type"`
	JSON json.RawMessage `json:"json"`
	BCS  []byte          `json:"bcs"`
}

func (n *moveValueNode) toMoveValue() sui.MoveValue {
	return sui.MoveValue{Type: n.Type.Repr, JSON: n.JSON, BCS: n.BCS}
}

type ownerNode struct {
	Typename             string       `json:"__typename"`
	Owner                *addressNode `json:"owner"`
	Parent               *addressNode `json:"parent"`
	InitialSharedVersion uint64       `json:"initialSharedVersion"`
}

func (n *ownerNode) toOwner() sui.Owner {
	if n == nil {
		return sui.Owner{}
	}
	switch n.Typename {
	case "AddressOwner":
		if n.Owner != nil {
			return sui.Owner{Kind: sui.OwnerAddress, Address: n.Owner.Address}
		}
	case "Parent":
		if n.Parent != nil {
			return sui.Owner{Kind: sui.OwnerObject, Address: n.Parent.Address}
		}
	case "Shared":
		return sui.Owner{Kind: sui.OwnerShared, InitialSharedVersion: n.InitialSharedVersion}
	case "Immutable":
		return sui.Owner{Kind: sui.OwnerImmutable}
	}
	return sui.Owner{}
}

type objectNode struct {
	Address      sui.Address `json:"address"`
	Version      uint64      `json:"version"`
	Digest       sui.Digest  `json:"digest"`
	Owner        *ownerNode  `json:"owner"`
	AsMoveObject *struct {
		Contents *moveValueNode `json:"contents"`
	} `json:"asMoveObject"`
	BCS []byte `json:"bcs"`
}

func (n *objectNode) toObject() *sui.Object {
	obj := &sui.Object{
		ID:      n.Address,
		Version: n.Version,
		Digest:  n.Digest,
		Owner:   n.Owner.toOwner(),
		BCS:     n.BCS,
	}
	if n.AsMoveObject != nil && n.AsMoveObject.Contents != nil {
		v := n.AsMoveObject.Contents.toMoveValue()
		obj.Type = v.Type
		obj.Contents = &v
	}
	return obj
}

type objectConnection struct {
	PageInfo pageInfo     `json:"pageInfo"`
	Nodes    []objectNode `json:"nodes"`
}

type coinNode struct {
	Address     sui.Address `json:"address"`
	Version     uint64      `json:"version"`
	Digest      sui.Digest  `json:"digest"`
	CoinBalance *bigInt     `json:"coinBalance"`
	Contents    *struct {
		Type typeRepr `json:"type"`
	} `json:"contents"`
}

type coinConnection struct {
	PageInfo pageInfo   `json:"pageInfo"`
	Nodes    []coinNode `json:"nodes"`
}

type dynamicFieldNode struct {
	Name  moveValueNode `json:"name"`
	Value *struct {
		Typename string      `json:"__typename"`
		Address  sui.Address `json:"address"`
		moveValueNode
	} `json:"value"`
}

func (n *dynamicFieldNode) toDynamicField() sui.DynamicField {
	field := sui.DynamicField{Name: n.Name.toMoveValue()}
	if n.Value == nil {
		return field
	}
	switch n.Value.Typename {
	case "MoveObject":
		id := n.Value.Address
		field.ValueObjectID = &id
	default:
		v := n.Value.toMoveValue()
		field.Value = &v
	}
	return field
}

type dynamicFieldConnection struct {
	PageInfo pageInfo           `json:"pageInfo"`
	Nodes    []dynamicFieldNode `json:"nodes"`
}

type effectsNode struct {
	Status         sui.ExecutionStatus `json:"status"`
	Errors         *string             `json:"errors"`
	LamportVersion uint64              `json:"lamportVersion"`
	Checkpoint     *struct {
		SequenceNumber uint64 `json:"sequenceNumber"`
	} `json:"checkpoint"`
	GasEffects *struct {
		GasSummary *struct {
			ComputationCost         bigInt `json:"computationCost"`
			StorageCost             bigInt `json:"storageCost"`
			StorageRebate           bigInt `json:"storageRebate"`
			NonRefundableStorageFee bigInt `json:"nonRefundableStorageFee"`
		} `json:"gasSummary"`
	} `json:"gasEffects"`
	TransactionBlock *struct {
		Digest sui.Digest `json:"digest"`
	} `json:"transactionBlock"`
}

func (n *effectsNode) toEffects() *sui.TransactionEffects {
	if n == nil {
		return nil
	}
	effects := &sui.TransactionEffects{
		Status:         n.Status,
		LamportVersion: n.LamportVersion,
	}
	if n.Errors != nil {
		effects.Error = *n.Errors
	}
	if n.Checkpoint != nil {
		seq := n.Checkpoint.SequenceNumber
		effects.Checkpoint = &seq
	}
	if n.GasEffects != nil && n.GasEffects.GasSummary != nil {
		g := n.GasEffects.GasSummary
		effects.Gas = sui.GasSummary{
			ComputationCost:         uint64(g.ComputationCost),
			StorageCost:             uint64(g.StorageCost),
			StorageRebate:           uint64(g.StorageRebate),
			NonRefundableStorageFee: uint64(g.NonRefundableStorageFee),
		}
	}
	if n.TransactionBlock != nil {
		effects.Digest = n.TransactionBlock.Digest
	}
	return effects
}
