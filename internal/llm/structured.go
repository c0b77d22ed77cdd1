package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of raw model output and
// decodes it into T. Markdown fences, surrounding prose, comments and
// numbers written as ".5" are tolerated. A truncated object is not.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	body := firstObject(unfence(raw))
	if body == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(repairJSON(body)), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// unfence drops markdown fence lines such as ```json and ```.
func unfence(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// literalTracker follows JSON string literals byte by byte.
type literalTracker struct {
	inString bool
	escaped  bool
}

// structural advances over c and reports whether c is JSON structure, i.e.
// neither part of a string literal nor one of its quotes.
func (lt *literalTracker) structural(c byte) bool {
	switch {
	case lt.escaped:
		lt.escaped = false
		return false
	case lt.inString && c == '\\':
		lt.escaped = true
		return false
	case c == '"':
		lt.inString = !lt.inString
		return false
	}
	return !lt.inString
}

// firstObject returns the first balanced {...} block, or "" when none
// closes.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var lt literalTracker
	depth := 0
	for i := start; i < len(s); i++ {
		if !lt.structural(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON removes // and /* */ comments outside strings and rewrites
// ".8" / "-.3" as "0.8" / "-0.3". Models emit both despite instructions.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var lt literalTracker
	var last byte // last non-space byte written
	for i := 0; i < len(s); i++ {
		c := s[i]
		if lt.structural(c) {
			if c == '/' && i+1 < len(s) && s[i+1] == '/' {
				i = lineCommentEnd(s, i)
				continue
			}
			if c == '/' && i+1 < len(s) && s[i+1] == '*' {
				i = blockCommentEnd(s, i)
				continue
			}
			if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && opensNumber(last) {
				b.WriteByte('0')
			}
		}
		b.WriteByte(c)
		if !isSpace(c) {
			last = c
		}
	}
	return b.String()
}

// lineCommentEnd returns the index just before the newline ending the
// comment that starts at i.
func lineCommentEnd(s string, i int) int {
	for i+1 < len(s) && s[i+1] != '\n' {
		i++
	}
	return i
}

// blockCommentEnd returns the index of the closing '/' of the comment that
// starts at i, or the last index when it never closes.
func blockCommentEnd(s string, i int) int {
	for j := i + 2; j+1 < len(s); j++ {
		if s[j] == '*' && s[j+1] == '/' {
			return j + 1
		}
	}
	return len(s) - 1
}

func opensNumber(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
