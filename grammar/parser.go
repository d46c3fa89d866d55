package grammar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/value"
)

// Parse parses a whole text message into an Object, fields in input order.
//
// Parameters:
//   - s: Space separated fields, e.g. "user_id=1001 name=Alice"
//
// Returns:
//   - value.Object: The parsed object
//   - error: ErrInvalidGrammarToken, ErrEmptyFieldName or ErrInt64OutOfRange
func Parse(s string) (value.Object, error) {
	tokens := SplitTopLevelFields(s)
	fields := make([]value.Field, 0, len(tokens))

	for _, tok := range tokens {
		f, err := ParseField(tok)
		if err != nil {
			return value.Object{}, err
		}
		fields = append(fields, f)
	}

	return value.Object{Fields: fields}, nil
}

// ParseArgs parses command line arguments as one text message.
//
// The arguments are joined with spaces first, so a shell argument may hold a
// whole field ("trades=[{id:1, price:100}]") or a field may span several arguments.
func ParseArgs(args []string) (value.Object, error) {
	return Parse(strings.Join(args, " "))
}

// ParseField parses a single "name=value" token, splitting at the first '='.
//
// Returns:
//   - value.Field: The parsed field
//   - error: ErrInvalidGrammarToken if the token has no '=', ErrEmptyFieldName if the
//     name is blank, or any value parsing error
func ParseField(token string) (value.Field, error) {
	name, raw, ok := strings.Cut(token, "=")
	if !ok {
		return value.Field{}, fmt.Errorf("%w: %q has no '='", errs.ErrInvalidGrammarToken, token)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return value.Field{}, fmt.Errorf("%w: %q", errs.ErrEmptyFieldName, token)
	}

	v, err := ParseValue(raw)
	if err != nil {
		return value.Field{}, fmt.Errorf("field %q: %w", name, err)
	}

	return value.Field{Name: name, Value: v}, nil
}

// ParseValue parses a field value: a bracketed list or a scalar.
//
// List element types are classified in priority order:
//  1. every item is '{...}': Object list
//  2. every item is a base-10 integer: Int list
//  3. otherwise: String list, each item unquoted
//
// An empty list is a String list. A scalar is an Int when it is a base-10
// integer and a Str otherwise, with one layer of matching quotes removed.
//
// Returns:
//   - value.Value: The parsed value
//   - error: ErrInt64OutOfRange for an integer literal that does not fit 64 bits,
//     or any object literal error
func ParseValue(s string) (value.Value, error) {
	s = strings.TrimSpace(s)

	if !isWrapped(s, '[', ']') {
		return parseScalar(s)
	}

	items := SplitTopLevelItems(s[1 : len(s)-1])
	if len(items) == 0 {
		return value.NewList(format.TagString), nil
	}

	if allItems(items, func(item string) bool { return isWrapped(item, '{', '}') }) {
		elems := make([]value.Value, len(items))
		for i, item := range items {
			obj, err := ParseObject(item[1 : len(item)-1])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			elems[i] = obj
		}

		return value.NewList(format.TagObject, elems...), nil
	}

	if allItems(items, isIntLiteral) {
		elems := make([]value.Value, len(items))
		for i, item := range items {
			n, err := parseInt(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			elems[i] = value.NewInt(n)
		}

		return value.NewList(format.TagInt, elems...), nil
	}

	elems := make([]value.Value, len(items))
	for i, item := range items {
		elems[i] = value.NewStr(unquote(item))
	}

	return value.NewList(format.TagString, elems...), nil
}

// ParseObject parses the interior of an object literal, without its braces.
//
// Each item is "name:scalar", split at the first ':'. Values are scalars only.
//
// Returns:
//   - value.Object: The parsed object, pairs in input order
//   - error: ErrInvalidGrammarToken for an item without ':' or with a list or object
//     value, ErrEmptyFieldName for a blank name, ErrInt64OutOfRange for an oversized integer
func ParseObject(s string) (value.Object, error) {
	items := SplitTopLevelItems(s)
	fields := make([]value.Field, 0, len(items))

	for _, item := range items {
		name, raw, ok := strings.Cut(item, ":")
		if !ok {
			return value.Object{}, fmt.Errorf("%w: object item %q has no ':'", errs.ErrInvalidGrammarToken, item)
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return value.Object{}, fmt.Errorf("%w: object item %q", errs.ErrEmptyFieldName, item)
		}

		raw = strings.TrimSpace(raw)
		if isWrapped(raw, '[', ']') || isWrapped(raw, '{', '}') {
			return value.Object{}, fmt.Errorf("%w: object field %q must be a scalar, got %q",
				errs.ErrInvalidGrammarToken, name, raw)
		}

		v, err := parseScalar(raw)
		if err != nil {
			return value.Object{}, fmt.Errorf("object field %q: %w", name, err)
		}
		fields = append(fields, value.Field{Name: name, Value: v})
	}

	return value.Object{Fields: fields}, nil
}

func parseScalar(s string) (value.Value, error) {
	if isIntLiteral(s) {
		n, err := parseInt(s)
		if err != nil {
			return nil, err
		}

		return value.NewInt(n), nil
	}

	return value.NewStr(unquote(s)), nil
}

// isIntLiteral reports whether s is a base-10 integer, optionally signed,
// regardless of whether it fits in 64 bits.
func isIntLiteral(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", errs.ErrInt64OutOfRange, s)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", errs.ErrInvalidGrammarToken, s)
	}

	return n, nil
}

// unquote removes one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}

func isWrapped(s string, open, closing byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == closing
}

func allItems(items []string, pred func(string) bool) bool {
	for _, item := range items {
		if !pred(item) {
			return false
		}
	}

	return true
}
