package tools

import (
	"context"
	"fmt"
	"time"
)

const defaultNavigateTimeout = 30 * time.Second

func navigateHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}

	url := stringArg(args, "url")
	timeout := defaultNavigateTimeout
	if ms := intArg(args, "timeout", 0); ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}

	bounded := page.Timeout(timeout)
	if err := bounded.Navigate(url); err != nil {
		return Result{}, fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := bounded.WaitLoad(); err != nil {
		return Result{}, fmt.Errorf("wait for %s to load: %w", url, err)
	}
	return Result{Texts: []string{fmt.Sprintf("Navigated to %s", url)}}, nil
}

func goBackHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	if err := page.NavigateBack(); err != nil {
		return Result{}, fmt.Errorf("go back: %w", err)
	}
	if err := page.Timeout(defaultNavigateTimeout).WaitLoad(); err != nil {
		return Result{}, fmt.Errorf("go back: wait for load: %w", err)
	}
	return Result{Texts: []string{"Navigated back"}}, nil
}

func goForwardHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	if err := page.NavigateForward(); err != nil {
		return Result{}, fmt.Errorf("go forward: %w", err)
	}
	if err := page.Timeout(defaultNavigateTimeout).WaitLoad(); err != nil {
		return Result{}, fmt.Errorf("go forward: wait for load: %w", err)
	}
	return Result{Texts: []string{"Navigated forward"}}, nil
}

func closeHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	if !env.Session.Active() {
		return Result{Texts: []string{"No active browser session"}}, nil
	}
	if err := env.Session.Close(); err != nil {
		return Result{}, err
	}
	return Result{Texts: []string{"Browser session closed"}}, nil
}
