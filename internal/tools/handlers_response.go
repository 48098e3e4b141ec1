package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"webgate/internal/session"
)

const defaultAssertTimeout = 15 * time.Second

// responseBodyFunc fetches an observed response body; swappable in tests.
var responseBodyFunc = func(page *rod.Page, id proto.NetworkRequestID) ([]byte, error) {
	return session.ResponseBody(page, id)
}

func expectResponseHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	id := stringArg(args, "id")
	pattern := stringArg(args, "url")
	env.Session.Watch().Expect(id, pattern)
	return Result{Texts: []string{fmt.Sprintf("Watching for a response matching %q (id %s)", pattern, id)}}, nil
}

func assertResponseHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	id := stringArg(args, "id")
	timeout := defaultAssertTimeout
	if ms := intArg(args, "timeout", 0); ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}

	info, err := env.Session.Watch().Wait(ctx, id, timeout)
	if err != nil {
		return Result{}, err
	}

	lines := []string{fmt.Sprintf("Response %s: %d %s (%s)", id, info.Status, info.URL, info.MIMEType)}

	if want := stringArg(args, "value"); want != "" {
		page, pageErr := pageOf(env)
		if pageErr != nil {
			return Result{}, pageErr
		}
		body, bodyErr := responseBodyFunc(page, info.RequestID)
		if bodyErr != nil {
			return Result{}, fmt.Errorf("fetch response body: %w", bodyErr)
		}
		if !strings.Contains(string(body), want) {
			return Result{}, fmt.Errorf("response %s does not contain %q", id, want)
		}
		lines = append(lines, fmt.Sprintf("Body contains %q", want))
	}

	return Result{Texts: lines}, nil
}

func customUserAgentHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	ua := stringArg(args, "userAgent")
	if err := (proto.NetworkSetUserAgentOverride{UserAgent: ua}).Call(page); err != nil {
		return Result{}, fmt.Errorf("set user agent: %w", err)
	}
	return Result{Texts: []string{fmt.Sprintf("User agent set to %q", ua)}}, nil
}
