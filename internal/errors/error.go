package errors

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
)

// Category represents the area an error belongs to.
type Category string

const (
	CategoryElement  Category = "element"
	CategoryKeys     Category = "keys"
	CategoryHooks    Category = "hooks"
	CategoryRender   Category = "render"
	CategoryBackend  Category = "backend"
	CategoryConfig   Category = "config"
	CategorySnapshot Category = "snapshot"
	CategoryCLI      Category = "cli"
)

// Severity tells whether a condition aborts the call or is only reported.
type Severity uint8

const (
	SeverityFatal Severity = iota
	SeverityError
	SeverityWarning
)

// String returns the severity label used in formatted output.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "FATAL"
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Level maps the severity onto a slog level.
func (s Severity) Level() slog.Level {
	if s == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a coded diagnostic with optional source location and hints.
type Error struct {
	// Code is a unique identifier (e.g., "V010").
	Code string

	Category Category
	Severity Severity

	// Message is a short description of the condition.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Component names the component the diagnostic is about, if any.
	Component string

	// Location points at the component's source, when it is known.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// Fatal reports whether the condition aborts the call that raised it.
func (e *Error) Fatal() bool {
	return e.Severity == SeverityFatal
}

// WithLocation adds source location to the error.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithComponent records the component the diagnostic concerns.
func (e *Error) WithComponent(name string) *Error {
	e.Component = name
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithDetailf replaces the detailed explanation with a formatted one.
func (e *Error) WithDetailf(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// LogAttrs returns the structured attributes used when logging e.
func (e *Error) LogAttrs() []any {
	attrs := []any{
		slog.String("code", e.Code),
		slog.String("category", string(e.Category)),
	}
	if e.Component != "" {
		attrs = append(attrs, slog.String("component", e.Component))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	if e.Location != nil {
		attrs = append(attrs, slog.String("source", e.Location.String()))
	}
	return attrs
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates an Error from a registered code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Severity: template.Severity,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a fatal Error with a formatted message and no code.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*Error); ok {
		return ve
	}
	return New(code).Wrap(err)
}
