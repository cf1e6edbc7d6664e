// Package errors provides the error taxonomy used across idlbridge.
//
// It re-exports github.com/cockroachdb/errors and adds one marker per
// failure class of a generation run. Every error that leaves a component is
// marked with exactly one kind so the command line can classify it without
// string matching:
//
//	if errors.Is(err, errors.ErrInputRead) {
//	    // a schema file could not be read
//	}
//
//	fmt.Println(errors.KindOf(err)) // "InputReadError"
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Failure classes of a generation run. None of them is transient, so a
// single attempt is always definitive.
var (
	// ErrInputRead marks a schema file that could not be read.
	ErrInputRead = crdb.New("input read error")
	// ErrParse marks schema content rejected by the parser.
	ErrParse = crdb.New("parse error")
	// ErrTemplateLoad marks a required template that is missing or unreadable.
	ErrTemplateLoad = crdb.New("template load error")
	// ErrRender marks a context that is incompatible with its template.
	ErrRender = crdb.New("render error")
	// ErrOutputWrite marks a destination that could not be created or written.
	ErrOutputWrite = crdb.New("output write error")
	// ErrConfig marks an invalid configuration file.
	ErrConfig = crdb.New("config error")
)

var kinds = []struct {
	marker error
	name   string
}{
	{ErrInputRead, "InputReadError"},
	{ErrParse, "ParseError"},
	{ErrTemplateLoad, "TemplateLoadError"},
	{ErrRender, "RenderError"},
	{ErrOutputWrite, "OutputWriteError"},
	{ErrConfig, "ConfigError"},
}

// KindOf returns the taxonomy name of err, or "Error" when err carries no
// kind marker.
func KindOf(err error) string {
	for _, k := range kinds {
		if crdb.Is(err, k.marker) {
			return k.name
		}
	}
	return "Error"
}

// InputRead wraps err as an InputReadError.
func InputRead(err error, format string, args ...any) error {
	return mark(err, ErrInputRead, format, args...)
}

// Parse wraps err as a ParseError.
func Parse(err error, format string, args ...any) error {
	return mark(err, ErrParse, format, args...)
}

// TemplateLoad wraps err as a TemplateLoadError.
func TemplateLoad(err error, format string, args ...any) error {
	return mark(err, ErrTemplateLoad, format, args...)
}

// Render wraps err as a RenderError.
func Render(err error, format string, args ...any) error {
	return mark(err, ErrRender, format, args...)
}

// OutputWrite wraps err as an OutputWriteError.
func OutputWrite(err error, format string, args ...any) error {
	return mark(err, ErrOutputWrite, format, args...)
}

// Config wraps err as a ConfigError.
func Config(err error, format string, args ...any) error {
	return mark(err, ErrConfig, format, args...)
}

// mark wraps err with a message and tags it with kind. A nil err produces a
// fresh error carrying only the message.
func mark(err error, kind error, format string, args ...any) error {
	if err == nil {
		return crdb.Mark(crdb.Newf(format, args...), kind)
	}
	return crdb.Mark(crdb.Wrapf(err, format, args...), kind)
}
