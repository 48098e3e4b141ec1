package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

func evaluateHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}

	script := stringArg(args, "script")
	var obj *proto.RuntimeRemoteObject
	var evalErr error
	for _, js := range evalCandidates(script) {
		obj, evalErr = page.Eval(js)
		if evalErr == nil {
			break
		}
	}
	if evalErr != nil {
		return Result{}, fmt.Errorf("evaluate script: %w", evalErr)
	}

	return Result{Texts: []string{formatEvalValue(obj.Value)}}, nil
}

// evalCandidates returns the forms a script is tried in: first as an
// expression wrapped in a returning arrow function, then verbatim for
// callers that already pass a function.
func evalCandidates(script string) []string {
	trimmed := strings.TrimSpace(script)
	wrapped := fmt.Sprintf("() => { return (%s); }", trimmed)
	if strings.HasPrefix(trimmed, "()") || strings.HasPrefix(trimmed, "function") ||
		strings.HasPrefix(trimmed, "async") {
		return []string{trimmed, wrapped}
	}
	return []string{wrapped, trimmed}
}

func formatEvalValue(v gson.JSON) string {
	if v.Val() == nil {
		return "undefined"
	}
	if s, ok := v.Val().(string); ok {
		return s
	}
	return v.JSON("", "  ")
}
