package tools

import (
	"context"
	"fmt"
	"strings"
)

func consoleLogsHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	console := env.Session.Console()

	entries := console.Filter(
		stringArg(args, "type"),
		stringArg(args, "search"),
		intArg(args, "limit", 0),
	)

	// The cleared notice goes ahead of the entries so a dump long enough to
	// be truncated cannot swallow it.
	lines := make([]string, 0, len(entries)+2)
	lines = append(lines, fmt.Sprintf("%d console entries", len(entries)))
	if boolArg(args, "clear") {
		console.Clear()
		lines = append(lines, "Console log cleared")
	}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("[%s] %s", strings.ToLower(e.Level), e.Text))
	}

	return Result{Texts: lines}, nil
}
