package txbuilder

import (
	"fmt"

	"github.com/thounyy/sui-go-utils/pkg/sui"
)

type command interface {
	name() string
	arguments() []Argument
	encode(e encoder) error
}

type moveCall struct {
	pkg      sui.Address
	module   string
	function string
	typeArgs []string
	args     []Argument
}

func (c *moveCall) name() string            { return "MoveCall" }
func (c *moveCall) arguments() []Argument   { return c.args }
func (c *moveCall) typeArguments() []string { return c.typeArgs }

func (c *moveCall) encode(e encoder) error {
	e.WriteULEB128(0)
	e.WriteFixed(c.pkg[:])
	e.WriteString(c.module)
	e.WriteString(c.function)
	e.WriteULEB128(uint64(len(c.typeArgs)))
	for _, raw := range c.typeArgs {
		tag, err := ParseTypeTag(raw)
		if err != nil {
			return err
		}
		tag.encode(e)
	}
	encodeArguments(e, c.args)
	return nil
}

type transferObjects struct {
	objects   []Argument
	recipient Argument
}

func (c *transferObjects) name() string { return "TransferObjects" }

func (c *transferObjects) arguments() []Argument {
	return append(append([]Argument{}, c.objects...), c.recipient)
}

func (c *transferObjects) encode(e encoder) error {
	e.WriteULEB128(1)
	encodeArguments(e, c.objects)
	c.recipient.encode(e)
	return nil
}

type splitCoins struct {
	coin    Argument
	amounts []Argument
}

func (c *splitCoins) name() string { return "SplitCoins" }

func (c *splitCoins) arguments() []Argument {
	return append([]Argument{c.coin}, c.amounts...)
}

func (c *splitCoins) encode(e encoder) error {
	e.WriteULEB128(2)
	c.coin.encode(e)
	encodeArguments(e, c.amounts)
	return nil
}

type mergeCoins struct {
	destination Argument
	sources     []Argument
}

func (c *mergeCoins) name() string { return "MergeCoins" }

func (c *mergeCoins) arguments() []Argument {
	return append([]Argument{c.destination}, c.sources...)
}

func (c *mergeCoins) encode(e encoder) error {
	e.WriteULEB128(3)
	c.destination.encode(e)
	encodeArguments(e, c.sources)
	return nil
}

type makeMoveVec struct {
	elemType *string
	elems    []Argument
}

func (c *makeMoveVec) name() string          { return "MakeMoveVec" }
func (c *makeMoveVec) arguments() []Argument { return c.elems }

func (c *makeMoveVec) typeArguments() []string {
	if c.elemType == nil {
		return nil
	}
	return []string{*c.elemType}
}

func (c *makeMoveVec) encode(e encoder) error {
	e.WriteULEB128(5)
	if c.elemType == nil {
		if len(c.elems) == 0 {
			return fmt.Errorf("MakeMoveVec without elements needs an element type")
		}
		e.WriteU8(0)
	} else {
		tag, err := ParseTypeTag(*c.elemType)
		if err != nil {
			return err
		}
		e.WriteU8(1)
		tag.encode(e)
	}
	encodeArguments(e, c.elems)
	return nil
}

func encodeArguments(e encoder, args []Argument) {
	e.WriteULEB128(uint64(len(args)))
	for _, arg := range args {
		arg.encode(e)
	}
}
