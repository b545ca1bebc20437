package txbuilder

import (
	"fmt"
	"strings"

	"github.com/thounyy/sui-go-utils/pkg/bcs"
	"github.com/thounyy/sui-go-utils/pkg/sui"
)

type tagKind int

// Variant indices of the on-chain TypeTag enum.
const (
	tagBool    tagKind = 0
	tagU8      tagKind = 1
	tagU64     tagKind = 2
	tagU128    tagKind = 3
	tagAddress tagKind = 4
	tagSigner  tagKind = 5
	tagVector  tagKind = 6
	tagStruct  tagKind = 7
	tagU16     tagKind = 8
	tagU32     tagKind = 9
	tagU256    tagKind = 10
)

var primitiveTags = map[string]tagKind{
	"bool":    tagBool,
	"u8":      tagU8,
	"u16":     tagU16,
	"u32":     tagU32,
	"u64":     tagU64,
	"u128":    tagU128,
	"u256":    tagU256,
	"address": tagAddress,
	"signer":  tagSigner,
}

// TypeTag is a parsed Move type such as "u64", "vector<u8>" or
// "0x2::coin::Coin<0x2::sui::SUI>".
type TypeTag struct {
	kind  tagKind
	elem  *TypeTag
	strct *StructTag
}

type StructTag struct {
	Address    sui.Address
	Module     string
	Name       string
	TypeParams []TypeTag
}

// ParseTypeTag parses the textual form of a Move type.
func ParseTypeTag(s string) (TypeTag, error) {
	p := &tagParser{src: s}
	tag, err := p.parseTag()
	if err != nil {
		return TypeTag{}, fmt.Errorf("parse type tag %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeTag{}, fmt.Errorf("parse type tag %q: trailing input at %d", s, p.pos)
	}
	return tag, nil
}

func (t TypeTag) String() string {
	switch t.kind {
	case tagVector:
		return "vector<" + t.elem.String() + ">"
	case tagStruct:
		var b strings.Builder
		fmt.Fprintf(&b, "%s::%s::%s", t.strct.Address, t.strct.Module, t.strct.Name)
		if len(t.strct.TypeParams) > 0 {
			params := make([]string, len(t.strct.TypeParams))
			for i, p := range t.strct.TypeParams {
				params[i] = p.String()
			}
			b.WriteString("<" + strings.Join(params, ", ") + ">")
		}
		return b.String()
	}
	for name, kind := range primitiveTags {
		if kind == t.kind {
			return name
		}
	}
	return "unknown"
}

func (t TypeTag) MarshalBCS() ([]byte, error) {
	var e bcs.Encoder
	t.encode(&e)
	return e.Bytes(), nil
}

func (t TypeTag) encode(e encoder) {
	e.WriteULEB128(uint64(t.kind))
	switch t.kind {
	case tagVector:
		t.elem.encode(e)
	case tagStruct:
		e.WriteFixed(t.strct.Address[:])
		e.WriteString(t.strct.Module)
		e.WriteString(t.strct.Name)
		e.WriteULEB128(uint64(len(t.strct.TypeParams)))
		for _, param := range t.strct.TypeParams {
			param.encode(e)
		}
	}
}

type tagParser struct {
	src string
	pos int
}

func (p *tagParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *tagParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *tagParser) consume(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *tagParser) parseTag() (TypeTag, error) {
	name := p.ident()
	if name == "" {
		return TypeTag{}, fmt.Errorf("expected type at %d", p.pos)
	}
	if kind, ok := primitiveTags[name]; ok {
		return TypeTag{kind: kind}, nil
	}
	if name == "vector" {
		if !p.consume("<") {
			return TypeTag{}, fmt.Errorf("expected '<' after vector at %d", p.pos)
		}
		elem, err := p.parseTag()
		if err != nil {
			return TypeTag{}, err
		}
		if !p.consume(">") {
			return TypeTag{}, fmt.Errorf("expected '>' at %d", p.pos)
		}
		return TypeTag{kind: tagVector, elem: &elem}, nil
	}

	addr, err := sui.ParseAddress(name)
	if err != nil {
		return TypeTag{}, err
	}
	st := &StructTag{Address: addr}
	if !p.consume("::") {
		return TypeTag{}, fmt.Errorf("expected '::' at %d", p.pos)
	}
	if st.Module = p.ident(); st.Module == "" {
		return TypeTag{}, fmt.Errorf("expected module name at %d", p.pos)
	}
	if !p.consume("::") {
		return TypeTag{}, fmt.Errorf("expected '::' at %d", p.pos)
	}
	if st.Name = p.ident(); st.Name == "" {
		return TypeTag{}, fmt.Errorf("expected struct name at %d", p.pos)
	}
	if p.consume("<") {
		for {
			param, err := p.parseTag()
			if err != nil {
				return TypeTag{}, err
			}
			st.TypeParams = append(st.TypeParams, param)
			if p.consume(",") {
				continue
			}
			if p.consume(">") {
				break
			}
			return TypeTag{}, fmt.Errorf("expected ',' or '>' at %d", p.pos)
		}
	}
	return TypeTag{kind: tagStruct, strct: st}, nil
}
