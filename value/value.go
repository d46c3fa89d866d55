// Package value implements the GalacticBuf value model.
//
// A Value is one of four variants, fixed by the wire format:
//   - Int: signed 64-bit integer
//   - Str: UTF-8 text
//   - List: a homogeneous sequence sharing one element tag
//   - Object: an ordered sequence of named fields
//
// The variant set is closed: Value carries an unexported marker method, so only
// the types in this package satisfy it, and every type switch over a Value
// can be checked for exhaustiveness against these four cases.
//
// Constructors perform no validation. A Value may describe a state that is not
// yet wire-legal (an empty field name, an oversized string, a list whose
// elements disagree with its element type); the encoder is responsible for
// rejecting such values. Values are immutable once built and safe to share
// between goroutines.
package value

import (
	"github.com/arloliu/galacticbuf/format"
)

// Value is the closed sum type of GalacticBuf values.
type Value interface {
	// Tag returns the one-byte wire discriminator of the variant.
	Tag() format.Tag

	// String returns a human readable rendering in text grammar notation.
	String() string

	isValue()
}

// Int is a signed 64-bit integer value.
type Int int64

// Str is a UTF-8 text value.
type Str string

// List is a homogeneous sequence of values sharing ElemType.
type List struct {
	ElemType format.Tag
	Elems    []Value
}

// Field is a single named entry of an Object.
type Field struct {
	Name  string
	Value Value
}

// Object is an ordered sequence of named fields.
//
// Names need not be unique; field order is preserved because it defines the
// wire layout.
type Object struct {
	Fields []Field
}

var (
	_ Value = Int(0)
	_ Value = Str("")
	_ Value = List{}
	_ Value = Object{}
)

func (Int) Tag() format.Tag    { return format.TagInt }
func (Str) Tag() format.Tag    { return format.TagString }
func (List) Tag() format.Tag   { return format.TagList }
func (Object) Tag() format.Tag { return format.TagObject }

func (Int) isValue()    {}
func (Str) isValue()    {}
func (List) isValue()   {}
func (Object) isValue() {}

// NewInt creates an Int value.
func NewInt(v int64) Int {
	return Int(v)
}

// NewStr creates a Str value.
func NewStr(s string) Str {
	return Str(s)
}

// NewList creates a List with the given element type.
//
// The elements are not checked against elemType; a mismatch is reported by the
// encoder as ErrListElementTypeMismatch.
func NewList(elemType format.Tag, elems ...Value) List {
	return List{ElemType: elemType, Elems: elems}
}

// NewObject creates an Object from fields, preserving their order.
func NewObject(fields ...Field) Object {
	return Object{Fields: fields}
}

// F is shorthand for a Field literal.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Len returns the number of elements in the list.
func (l List) Len() int {
	return len(l.Elems)
}

// Len returns the number of fields in the object.
func (o Object) Len() int {
	return len(o.Fields)
}

// Get returns the value of the first field named name.
//
// Returns:
//   - Value: The first matching value, nil if absent
//   - bool: true if a field with the name exists
func (o Object) Get(name string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// GetInt returns the first field named name if it holds an Int.
func (o Object) GetInt(name string) (int64, bool) {
	v, ok := o.Get(name)
	if !ok {
		return 0, false
	}
	i, ok := v.(Int)

	return int64(i), ok
}

// GetString returns the first field named name if it holds a Str.
func (o Object) GetString(name string) (string, bool) {
	v, ok := o.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(Str)

	return string(s), ok
}

// GetList returns the first field named name if it holds a List.
func (o Object) GetList(name string) (List, bool) {
	v, ok := o.Get(name)
	if !ok {
		return List{}, false
	}
	l, ok := v.(List)

	return l, ok
}

// Names returns the field names in wire order, duplicates included.
func (o Object) Names() []string {
	names := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		names[i] = f.Name
	}

	return names
}
