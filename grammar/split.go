package grammar

import "strings"

// SplitTopLevelFields splits s into field tokens on spaces outside brackets.
//
// Spaces inside '[...]' or '{...}' are kept so the value parser can split list
// items later. Trailing commas are stripped from every token and empty tokens
// are dropped.
//
// Example:
//
//	SplitTopLevelFields("a=1 b=[1, 2], c=x")  // ["a=1", "b=[1, 2]", "c=x"]
func SplitTopLevelFields(s string) []string {
	tokens := splitTopLevel(s, func(c byte) bool { return c == ' ' })

	out := tokens[:0]
	for _, tok := range tokens {
		tok = strings.TrimRight(tok, ",")
		if tok != "" {
			out = append(out, tok)
		}
	}

	return out
}

// SplitTopLevelItems splits the interior of a list or object literal into items.
//
// Both commas and spaces separate items at bracket depth 0, so "[1,2,3]",
// "[1 2 3]" and "[{...}, {...}]" are all accepted. Empty items are dropped.
//
// Example:
//
//	SplitTopLevelItems("a, {x:1, y:2}, b")  // ["a", "{x:1, y:2}", "b"]
func SplitTopLevelItems(s string) []string {
	return splitTopLevel(s, func(c byte) bool { return c == ',' || c == ' ' })
}

// splitTopLevel splits s at separator bytes outside brackets. Tokens are
// trimmed and empty ones dropped. A stray closing bracket never drives the
// depth below zero.
func splitTopLevel(s string, isSep func(c byte) bool) []string {
	var (
		tokens []string
		depth  int
		start  int
	)

	flush := func(end int) {
		tok := strings.TrimSpace(s[start:end])
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && isSep(c):
			flush(i)
			start = i + 1
		}
	}
	flush(len(s))

	return tokens
}
