package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value; a non-nil error rejects the output.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in raw model output into T.
// Surrounding prose and markdown fences are ignored, and the small syntax
// slips models tend to make (comments, ".5" numbers) are repaired first.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	obj, ok := scanObject(raw)
	if !ok {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// GenerateJSON sends req with a schema reflected from T (unless one is set)
// and decodes the reply with ExtractJSON.
func GenerateJSON[T any](ctx context.Context, client LLMClient, req GenerateRequest, validator SchemaValidator[T]) (T, error) {
	var zero T
	if req.Schema == nil {
		req.Schema = GenerateSchema[T]()
	}
	resp, err := client.Generate(ctx, req)
	if err != nil {
		return zero, err
	}
	return ExtractJSON(resp.Text, validator)
}

// scanObject copies the first balanced {...} block out of s in one pass.
// Outside string literals it drops // and /* */ comments and rewrites
// numbers like ".8" or "-.3" to "0.8" and "-0.3".
func scanObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(s) - start)

	depth := 0
	inString, escaped := false, false
	var last byte // last significant byte written outside a string

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				last = c
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return "", false
			}
			i += end + 3
			continue
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(last):
			b.WriteByte('0')
		case c == '{':
			depth++
		case c == '}':
			depth--
		}

		b.WriteByte(c)
		if !isSpace(c) {
			last = c
		}
		if depth == 0 {
			return b.String(), true
		}
	}
	return "", false
}

// startsNumber reports whether a value may begin right after prev.
func startsNumber(prev byte) bool {
	switch prev {
	case ':', ',', '[', '-':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
