// Package bcs implements the canonical binary encoding used for pure
// transaction arguments and for transaction data.
//
// Encoding rules: integers are little-endian fixed width, bool is one byte,
// strings and slices are ULEB128 length-prefixed, arrays are written without a
// length, structs are their exported fields in declaration order and pointers
// are options (0x00 for nil, 0x01 followed by the value). The option tag is
// written for pointers to Marshaler types too. Go int and uint have no fixed
// width and are encoded as u64; pass a sized type to get any other width.
package bcs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
)

// Marshaler lets a type provide its own encoding.
type Marshaler interface {
	MarshalBCS() ([]byte, error)
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

// Marshal encodes v.
func Marshal(v any) ([]byte, error) {
	var e Encoder
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Encoder appends encoded values to an internal buffer.
type Encoder struct {
	buf bytes.Buffer
}

func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *Encoder) Encode(v any) error {
	if v == nil {
		return fmt.Errorf("bcs: cannot encode nil interface")
	}
	return e.encode(addressable(reflect.ValueOf(v)))
}

// addressable copies v into fresh storage when needed so that MarshalBCS
// methods with pointer receivers are found.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Elem()
}

func (e *Encoder) WriteULEB128(n uint64) {
	for n >= 0x80 {
		e.buf.WriteByte(byte(n) | 0x80)
		n >>= 7
	}
	e.buf.WriteByte(byte(n))
}

func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf.WriteByte(1)
		return
	}
	e.buf.WriteByte(0)
}

func (e *Encoder) WriteU8(n uint8) {
	e.buf.WriteByte(n)
}

func (e *Encoder) WriteU16(n uint16) {
	e.buf.Write(binary.LittleEndian.AppendUint16(nil, n))
}

func (e *Encoder) WriteU32(n uint32) {
	e.buf.Write(binary.LittleEndian.AppendUint32(nil, n))
}

func (e *Encoder) WriteU64(n uint64) {
	e.buf.Write(binary.LittleEndian.AppendUint64(nil, n))
}

// WriteBytes writes a length-prefixed byte vector.
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteULEB128(uint64(len(b)))
	e.buf.Write(b)
}

// WriteFixed writes raw bytes without a length prefix.
func (e *Encoder) WriteFixed(b []byte) {
	e.buf.Write(b)
}

func (e *Encoder) WriteString(s string) {
	e.WriteBytes([]byte(s))
}

func (e *Encoder) encode(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			e.WriteU8(0)
			return nil
		}
		e.WriteU8(1)
		return e.encode(v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			return fmt.Errorf("bcs: cannot encode nil %s", v.Type())
		}
		return e.encode(addressable(v.Elem()))
	}

	if v.Type().Implements(marshalerType) {
		return e.encodeMarshaler(v.Interface().(Marshaler))
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(marshalerType) {
		return e.encodeMarshaler(v.Addr().Interface().(Marshaler))
	}

	switch v.Kind() {
	case reflect.Bool:
		e.WriteBool(v.Bool())
	case reflect.Uint8:
		e.WriteU8(uint8(v.Uint()))
	case reflect.Uint16:
		e.WriteU16(uint16(v.Uint()))
	case reflect.Uint32:
		e.WriteU32(uint32(v.Uint()))
	case reflect.Uint64, reflect.Uint:
		e.WriteU64(v.Uint())
	case reflect.Int8:
		e.WriteU8(uint8(v.Int()))
	case reflect.Int16:
		e.WriteU16(uint16(v.Int()))
	case reflect.Int32:
		e.WriteU32(uint32(v.Int()))
	case reflect.Int64, reflect.Int:
		e.WriteU64(uint64(v.Int()))
	case reflect.String:
		e.WriteString(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			e.WriteBytes(v.Bytes())
			return nil
		}
		e.WriteULEB128(uint64(v.Len()))
		return e.encodeElems(v)
	case reflect.Array:
		return e.encodeElems(v)
	case reflect.Struct:
		return e.encodeStruct(v)
	default:
		return fmt.Errorf("bcs: unsupported kind %s (%s)", v.Kind(), v.Type())
	}
	return nil
}

func (e *Encoder) encodeMarshaler(m Marshaler) error {
	b, err := m.MarshalBCS()
	if err != nil {
		return fmt.Errorf("bcs: marshal %T: %w", m, err)
	}
	e.buf.Write(b)
	return nil
}

func (e *Encoder) encodeElems(v reflect.Value) error {
	for i := 0; i < v.Len(); i++ {
		if err := e.encode(v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("bcs") == "-" {
			continue
		}
		if err := e.encode(v.Field(i)); err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name(), field.Name, err)
		}
	}
	return nil
}
