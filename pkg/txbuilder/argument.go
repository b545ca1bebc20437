package txbuilder

import "fmt"

type argumentKind int

const (
	argGasCoin argumentKind = iota
	argInput
	argResult
	argNestedResult
)

// Argument is a handle to an input or command result inside one Builder. It is
// only valid for the Builder that produced it.
type Argument struct {
	kind   argumentKind
	index  uint16
	nested uint16
	scope  *Builder
}

// Nested selects element i of a command result that returns a tuple. Called
// on anything but a command result it yields a handle Finish rejects.
func (a Argument) Nested(i uint16) Argument {
	nested := Argument{kind: argNestedResult, index: a.index, nested: i}
	if a.kind == argResult {
		nested.scope = a.scope
	}
	return nested
}

func (a Argument) String() string {
	switch a.kind {
	case argGasCoin:
		return "GasCoin"
	case argInput:
		return fmt.Sprintf("Input(%d)", a.index)
	case argResult:
		return fmt.Sprintf("Result(%d)", a.index)
	default:
		return fmt.Sprintf("NestedResult(%d,%d)", a.index, a.nested)
	}
}

func (a Argument) encode(e encoder) {
	switch a.kind {
	case argGasCoin:
		e.WriteULEB128(0)
	case argInput:
		e.WriteULEB128(1)
		e.WriteU16(a.index)
	case argResult:
		e.WriteULEB128(2)
		e.WriteU16(a.index)
	case argNestedResult:
		e.WriteULEB128(3)
		e.WriteU16(a.index)
		e.WriteU16(a.nested)
	}
}
