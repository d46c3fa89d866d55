// Package grammar parses the flat GalacticBuf text notation into value objects.
//
// The notation is a space separated list of fields:
//
//	user_id=1001 name=Alice scores=[100,200,300] trades=[{id:1, price:100}, {id:2, price:200}]
//
// Informal grammar:
//
//	message   := field (SEP field)*           // SEP = space, bracket depth 0
//	field     := NAME "=" value
//	value     := scalar | "[" list-body "]"
//	list-body := "" | item (SEP2 item)*        // SEP2 = comma or space, depth 0
//	item      := scalar | "{" obj-body "}"
//	obj-body  := pair (SEP2 pair)*
//	pair      := NAME ":" scalar
//	scalar    := INTEGER | STRING              // STRING optionally quoted with ' or "
//
// Splitting is depth-aware: separators inside an open '[' or '{' do not split.
// List element types are inferred: all '{...}' items make an Object list, all
// base-10 integers make an Int list, anything else makes a String list, and an
// empty list defaults to String.
//
// # Known Limitations
//
// The notation has no escape sequences. A string containing a comma, a space
// at depth 0, or a bracket cannot be represented. Object literals hold scalar
// values only; a list or object inside an object literal is rejected with
// ErrInvalidGrammarToken rather than read as text. A '{...}' field value at the
// top level is not an object literal and is read as a string.
//
// The parser is independent of the binary codec: it builds values and leaves
// wire validation (name lengths, sizes) to the encoder.
package grammar
