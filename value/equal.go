package value

// Equal reports whether a and b are structurally equal.
//
// Two values are equal when they have the same variant and payload. Lists
// compare their element type and elements in order; objects compare their
// fields in order, so objects holding the same fields in a different order
// are not equal. An empty list and a nil-element list of the same type are
// equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		return ok && av.Equal(bv)
	case Object:
		bv, ok := b.(Object)
		return ok && av.Equal(bv)
	default:
		return false
	}
}

// Equal reports whether l and other have the same element type and elements.
func (l List) Equal(other List) bool {
	if l.ElemType != other.ElemType || len(l.Elems) != len(other.Elems) {
		return false
	}
	for i := range l.Elems {
		if !Equal(l.Elems[i], other.Elems[i]) {
			return false
		}
	}

	return true
}

// Equal reports whether o and other have the same fields in the same order.
func (o Object) Equal(other Object) bool {
	if len(o.Fields) != len(other.Fields) {
		return false
	}
	for i := range o.Fields {
		if o.Fields[i].Name != other.Fields[i].Name {
			return false
		}
		if !Equal(o.Fields[i].Value, other.Fields[i].Value) {
			return false
		}
	}

	return true
}
