package directive

import (
	"fmt"
	"strings"
)

// UnterminatedQuoteError reports an opening quote with no matching close.
type UnterminatedQuoteError struct {
	Quote byte
}

func (e *UnterminatedQuoteError) Error() string {
	return fmt.Sprintf("unterminated %c string", e.Quote)
}

// isSpaceByte reports whether c separates tokens.
func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Split splits s into tokens, allowing '' or "" around elements. Quotes
// further inside a token do not count, and there is no escape processing:
// a quoted token runs verbatim to the next occurrence of the same quote
// character. Adjacent quoted segments stay separate tokens. Empty or
// whitespace-only input yields no tokens.
func Split(s string) ([]string, error) {
	var f []string
	for len(s) > 0 {
		for len(s) > 0 && isSpaceByte(s[0]) {
			s = s[1:]
		}
		if len(s) == 0 {
			break
		}
		if s[0] == '"' || s[0] == '\'' {
			quote := s[0]
			s = s[1:]
			i := strings.IndexByte(s, quote)
			if i < 0 {
				return nil, &UnterminatedQuoteError{Quote: quote}
			}
			f = append(f, s[:i])
			s = s[i+1:]
			continue
		}
		i := 0
		for i < len(s) && !isSpaceByte(s[i]) {
			i++
		}
		f = append(f, s[:i])
		s = s[i:]
	}
	return f, nil
}
