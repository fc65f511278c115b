package interp

import (
	"fmt"
	"strings"

	"shapekit/internal/ast"
	"shapekit/internal/result"
)

// Code classifies decode issues.
type Code uint8

const (
	CodeTypeMismatch Code = iota + 1
	CodeMissingKey
	CodeMissingIndex
	CodeUnexpectedKey
	CodeUnexpectedIndex
	CodeNoMatch
	CodeNever
)

func (c Code) String() string {
	switch c {
	case CodeTypeMismatch:
		return "type mismatch"
	case CodeMissingKey:
		return "missing key"
	case CodeMissingIndex:
		return "missing index"
	case CodeUnexpectedKey:
		return "unexpected key"
	case CodeUnexpectedIndex:
		return "unexpected index"
	case CodeNoMatch:
		return "no union member matched"
	case CodeNever:
		return "never"
	}
	return "unknown"
}

// Issue is one decode error record.
type Issue struct {
	Path    []ast.Key
	Code    Code
	Message string
}

// Result is the decoder outcome.
type Result = result.Result[Issue, any]

// PathString renders the issue path as /a/0/b ("/" for the root).
func (i Issue) PathString() string {
	if len(i.Path) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, k := range i.Path {
		sb.WriteByte('/')
		sb.WriteString(k.String())
	}
	return sb.String()
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.PathString(), i.Code, i.Message)
}

func newIssue(code Code, format string, args ...any) Issue {
	return Issue{Code: code, Message: fmt.Sprintf(format, args...)}
}

// under prefixes every issue path with key, preserving order.
func under(key ast.Key, issues []Issue) []Issue {
	out := make([]Issue, len(issues))
	for i, is := range issues {
		path := make([]ast.Key, 0, len(is.Path)+1)
		path = append(path, key)
		path = append(path, is.Path...)
		out[i] = Issue{Path: path, Code: is.Code, Message: is.Message}
	}
	return out
}
