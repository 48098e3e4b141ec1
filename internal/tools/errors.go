package tools

import (
	"context"
	"errors"

	"webgate/internal/session"
)

// ErrUnknownTool indicates the requested tool is not in the catalog.
var ErrUnknownTool = errors.New("unknown tool")

// errInvalidArgs marks argument validation failures.
var errInvalidArgs = errors.New("invalid arguments")

// errConfigParse marks malformed per-call configuration values.
var errConfigParse = errors.New("config parse failure")

// FailureKind labels why a tool call failed. Every failure is reported as an
// error result; the kind shows up in logs and lets callers distinguish their
// own mistakes from upstream trouble.
type FailureKind string

const (
	KindUnknownTool FailureKind = "unknown_tool"
	KindValidation  FailureKind = "validation_failure"
	KindConfigParse FailureKind = "config_parse_failure"
	KindLaunch      FailureKind = "launch_failure"
	KindTimeout     FailureKind = "timeout"
	KindUpstream    FailureKind = "upstream_failure"
)

// Classify maps an error to its failure kind. Anything unrecognized is an
// upstream failure.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrUnknownTool):
		return KindUnknownTool
	case errors.Is(err, errInvalidArgs):
		return KindValidation
	case errors.Is(err, errConfigParse):
		return KindConfigParse
	case errors.Is(err, session.ErrLaunchFailed):
		return KindLaunch
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindUpstream
	}
}
