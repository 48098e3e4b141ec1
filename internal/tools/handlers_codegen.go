package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"webgate/internal/codegen"
)

func startCodegenHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	s, err := env.Recorder.Start(codegen.Options{
		OutputPath:      stringArg(args, "outputPath"),
		TestNamePrefix:  stringArg(args, "testNamePrefix"),
		IncludeComments: boolArg(args, "includeComments"),
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Texts: []string{
		fmt.Sprintf("Started codegen session %s", s.ID),
		"Browser tool calls are now recorded; use end_codegen_session to generate the test.",
	}}, nil
}

func endCodegenHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	id := stringArg(args, "sessionId")
	path, steps, err := env.Recorder.End(id)
	if err != nil {
		return Result{}, err
	}
	return Result{Texts: []string{
		fmt.Sprintf("Ended codegen session %s", id),
		fmt.Sprintf("Generated test with %d steps at %s", steps, path),
	}}, nil
}

func getCodegenHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	id := stringArg(args, "sessionId")
	s, ok := env.Recorder.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("codegen session %s not found", id)
	}

	lines := []string{fmt.Sprintf("Codegen session %s: %d recorded actions", s.ID, len(s.Actions))}
	for i, a := range s.Actions {
		argsJSON, err := json.Marshal(a.Args)
		if err != nil {
			argsJSON = []byte("{}")
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, a.Tool, argsJSON))
	}
	return Result{Texts: lines}, nil
}

func clearCodegenHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	id := stringArg(args, "sessionId")
	if !env.Recorder.Clear(id) {
		return Result{}, fmt.Errorf("codegen session %s not found", id)
	}
	return Result{Texts: []string{fmt.Sprintf("Cleared codegen session %s", id)}}, nil
}
