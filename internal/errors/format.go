package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

type style string

const (
	reset  style = "\033[0m"
	styRed style = "\033[31m"
	styYel style = "\033[33m"
	styCya style = "\033[36m"
	styGry style = "\033[90m"
	styBld style = "\033[1m"
)

var colorEnabled = true

// DisableColors turns off ANSI styling in Format and Fprint.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI styling back on.
func EnableColors() { colorEnabled = true }

func paint(text string, styles ...style) string {
	if !colorEnabled || len(styles) == 0 {
		return text
	}
	var b strings.Builder
	for _, s := range styles {
		b.WriteString(string(s))
	}
	b.WriteString(text)
	b.WriteString(string(reset))
	return b.String()
}

func red(text string) string { return paint(text, styRed) }

// Format renders e for a terminal: a severity header, the component and
// its source excerpt, then detail, hint and cause.
func (e *Error) Format() string {
	var b strings.Builder

	header := e.Severity.String()
	if e.Code != "" {
		header += " " + e.Code
	}
	headerStyle := styRed
	if e.Severity == SeverityWarning {
		headerStyle = styYel
	}
	fmt.Fprintf(&b, "\n%s: %s\n\n", paint(header, headerStyle, styBld), e.Message)

	if e.Component != "" {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Component, styCya))
	}
	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), styCya))
		e.writeExcerpt(&b)
	}
	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", styCya), e.Suggestion)
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n", paint("Cause: ", styGry), e.Wrapped.Error())
	}
	return b.String()
}

// writeExcerpt prints the context lines, marking the location's line.
func (e *Error) writeExcerpt(b *strings.Builder) {
	if len(e.Context) == 0 {
		return
	}
	bar := paint(" │ ", styGry)
	first := e.Location.Line - len(e.Context)/2
	for i, text := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, text)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", red("→ "), n, bar, text)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n", paint("│ ", styGry), strings.Repeat(" ", e.Location.Column-1), red("^"))
		}
	}
	b.WriteString("\n")
}

// FormatCompact renders e on one line: location, code, message, component.
func (e *Error) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	msg := e.Message
	if e.Component != "" {
		msg += " (" + e.Component + ")"
	}
	parts = append(parts, msg)
	return strings.Join(parts, ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Severity   string        `json:"severity"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	Component  string        `json:"component,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON renders e as a single JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Severity:   strings.ToLower(e.Severity.String()),
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		Component:  e.Component,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Sprintf(`{"code":%q,"message":%q}`, e.Code, e.Message)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// wrapText breaks text into lines of at most width characters, splitting
// on whitespace. A single word longer than width gets its own line.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Fprint writes err to w: the full format for an *Error, a plain error
// line otherwise.
func Fprint(w io.Writer, err error) {
	var ve *Error
	if stderrors.As(err, &ve) {
		fmt.Fprint(w, ve.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", styRed, styBld), err.Error())
}
