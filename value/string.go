package value

import (
	"strconv"
	"strings"
)

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// String wraps the text in double quotes without escaping, matching the text
// grammar which has no escape sequences.
func (s Str) String() string {
	return `"` + string(s) + `"`
}

func (l List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(&sb, e)
	}
	sb.WriteByte(']')

	return sb.String()
}

func (o Object) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range o.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteByte(':')
		writeValue(&sb, f.Value)
	}
	sb.WriteByte('}')

	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	if v == nil {
		sb.WriteString("<nil>")
		return
	}
	sb.WriteString(v.String())
}
