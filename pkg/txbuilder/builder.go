// Package txbuilder assembles programmable transactions: inputs, commands and
// gas configuration, finalized into an immutable encoded Transaction.
//
// A Builder is owned by one assembly flow and is not safe for concurrent use.
package txbuilder

import (
	"errors"
	"fmt"
	"math"

	"github.com/thounyy/sui-go-utils/pkg/bcs"
	"github.com/thounyy/sui-go-utils/pkg/sui"
)

type encoder = *bcs.Encoder

type input struct {
	pure   []byte
	object *ObjectInput
}

type Builder struct {
	inputs     []input
	commands   []command
	sender     *sui.Address
	gasObjects []ObjectInput
	gasPrice   *uint64
	gasBudget  *uint64
}

func New() *Builder {
	return &Builder{}
}

// Input registers an object input and returns its handle.
func (b *Builder) Input(in ObjectInput) Argument {
	b.inputs = append(b.inputs, input{object: &in})
	return b.inputHandle()
}

// Pure encodes value and registers it as a pure input.
func (b *Builder) Pure(value any) (Argument, error) {
	raw, err := bcs.Marshal(value)
	if err != nil {
		return Argument{}, fmt.Errorf("encode pure value: %w", err)
	}
	return b.PureBytes(raw), nil
}

// PureBytes registers already encoded bytes as a pure input.
func (b *Builder) PureBytes(raw []byte) Argument {
	b.inputs = append(b.inputs, input{pure: append([]byte(nil), raw...)})
	return b.inputHandle()
}

func (b *Builder) inputHandle() Argument {
	// overflow past u16 is reported by Finish
	return Argument{kind: argInput, index: uint16(len(b.inputs) - 1), scope: b}
}

// GasCoin refers to the coin paying for the transaction.
func (b *Builder) GasCoin() Argument {
	return Argument{kind: argGasCoin, scope: b}
}

func (b *Builder) AddGasObjects(objs ...ObjectInput) {
	b.gasObjects = append(b.gasObjects, objs...)
}

func (b *Builder) SetGasPrice(price uint64) {
	b.gasPrice = &price
}

func (b *Builder) SetGasBudget(budget uint64) {
	b.gasBudget = &budget
}

func (b *Builder) SetSender(sender sui.Address) {
	b.sender = &sender
}

// Sender reports the configured sender, if any.
func (b *Builder) Sender() (sui.Address, bool) {
	if b.sender == nil {
		return sui.Address{}, false
	}
	return *b.sender, true
}

func (b *Builder) GasPrice() (uint64, bool) {
	if b.gasPrice == nil {
		return 0, false
	}
	return *b.gasPrice, true
}

func (b *Builder) GasBudget() (uint64, bool) {
	if b.gasBudget == nil {
		return 0, false
	}
	return *b.gasBudget, true
}

func (b *Builder) InputCount() int {
	return len(b.inputs)
}

func (b *Builder) CommandCount() int {
	return len(b.commands)
}

// GasObjects returns a copy of the configured gas payment.
func (b *Builder) GasObjects() []ObjectInput {
	return append([]ObjectInput(nil), b.gasObjects...)
}

func (b *Builder) addCommand(c command) Argument {
	b.commands = append(b.commands, c)
	return Argument{kind: argResult, index: uint16(len(b.commands) - 1), scope: b}
}

// MoveCall calls package::module::function. typeArgs use the textual Move
// form and are parsed by Finish.
func (b *Builder) MoveCall(pkg sui.Address, module, function string, typeArgs []string, args ...Argument) Argument {
	return b.addCommand(&moveCall{
		pkg:      pkg,
		module:   module,
		function: function,
		typeArgs: append([]string(nil), typeArgs...),
		args:     args,
	})
}

func (b *Builder) TransferObjects(objects []Argument, recipient Argument) Argument {
	return b.addCommand(&transferObjects{objects: objects, recipient: recipient})
}

func (b *Builder) SplitCoins(coin Argument, amounts ...Argument) Argument {
	return b.addCommand(&splitCoins{coin: coin, amounts: amounts})
}

func (b *Builder) MergeCoins(destination Argument, sources ...Argument) Argument {
	return b.addCommand(&mergeCoins{destination: destination, sources: sources})
}

// MakeMoveVec builds a vector from elems. elemType may be nil when elems is non-empty.
func (b *Builder) MakeMoveVec(elemType *string, elems ...Argument) Argument {
	return b.addCommand(&makeMoveVec{elemType: elemType, elems: elems})
}

// Finish validates the assembled graph and encodes it. The builder should not
// be reused afterwards.
func (b *Builder) Finish() (*Transaction, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	var e bcs.Encoder
	if err := b.encode(&e); err != nil {
		return nil, sui.TransactionBuilding(err)
	}

	return newTransaction(e.Bytes(), *b.sender, *b.gasPrice, *b.gasBudget), nil
}

func (b *Builder) validate() error {
	var errs []error
	if b.sender == nil {
		errs = append(errs, errors.New("missing sender"))
	}
	if len(b.gasObjects) == 0 {
		errs = append(errs, errors.New("missing gas objects"))
	}
	if b.gasPrice == nil {
		errs = append(errs, errors.New("missing gas price"))
	}
	if b.gasBudget == nil {
		errs = append(errs, errors.New("missing gas budget"))
	}
	if len(b.inputs) > math.MaxUint16+1 {
		errs = append(errs, fmt.Errorf("too many inputs: %d", len(b.inputs)))
	}
	if len(b.commands) > math.MaxUint16+1 {
		errs = append(errs, fmt.Errorf("too many commands: %d", len(b.commands)))
	}

	for i, gas := range b.gasObjects {
		if gas.kind != UsageOwned {
			errs = append(errs, fmt.Errorf("gas object %d: usage must be owned, got %s", i, gas.kind))
			continue
		}
		if err := gas.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("gas object %d: %w", i, err))
		}
	}

	for i, in := range b.inputs {
		if in.object == nil {
			continue
		}
		if err := in.object.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("input %d: %w", i, err))
		}
	}

	for i, cmd := range b.commands {
		if typed, ok := cmd.(interface{ typeArguments() []string }); ok {
			for _, raw := range typed.typeArguments() {
				if _, err := ParseTypeTag(raw); err != nil {
					errs = append(errs, fmt.Errorf("command %d (%s): %w", i, cmd.name(), err))
				}
			}
		}
		for _, arg := range cmd.arguments() {
			if err := b.checkArgument(i, arg); err != nil {
				errs = append(errs, fmt.Errorf("command %d (%s): %w", i, cmd.name(), err))
			}
		}
	}

	if len(errs) > 0 {
		return sui.TransactionBuilding(errors.Join(errs...))
	}
	return nil
}

func (b *Builder) checkArgument(cmdIndex int, arg Argument) error {
	if arg.scope != b {
		return fmt.Errorf("dangling argument %s: not produced by this builder", arg)
	}
	switch arg.kind {
	case argInput:
		if int(arg.index) >= len(b.inputs) {
			return fmt.Errorf("dangling argument %s", arg)
		}
	case argResult, argNestedResult:
		if int(arg.index) >= cmdIndex {
			return fmt.Errorf("argument %s refers to a later command", arg)
		}
	}
	return nil
}

func (b *Builder) encode(e encoder) error {
	e.WriteULEB128(0) // TransactionData::V1
	e.WriteULEB128(0) // TransactionKind::ProgrammableTransaction

	e.WriteULEB128(uint64(len(b.inputs)))
	for _, in := range b.inputs {
		if in.object != nil {
			e.WriteULEB128(1)
			in.object.encode(e)
			continue
		}
		e.WriteULEB128(0)
		e.WriteBytes(in.pure)
	}

	e.WriteULEB128(uint64(len(b.commands)))
	for i, cmd := range b.commands {
		if err := cmd.encode(e); err != nil {
			return sui.TransactionBuilding(fmt.Errorf("command %d (%s): %w", i, cmd.name(), err))
		}
	}

	e.WriteFixed(b.sender[:])

	e.WriteULEB128(uint64(len(b.gasObjects)))
	for _, gas := range b.gasObjects {
		encodeObjectRef(e, gas.ref)
	}
	e.WriteFixed(b.sender[:]) // gas owner
	e.WriteU64(*b.gasPrice)
	e.WriteU64(*b.gasBudget)

	e.WriteULEB128(0) // TransactionExpiration::None
	return nil
}
