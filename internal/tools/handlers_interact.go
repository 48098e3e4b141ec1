package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

func clickHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	selector := stringArg(args, "selector")
	el, err := findElement(page, selector)
	if err != nil {
		return Result{}, err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return Result{}, fmt.Errorf("click %q: %w", selector, err)
	}
	return Result{Texts: []string{fmt.Sprintf("Clicked %s", selector)}}, nil
}

func iframeClickHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	iframeSelector := stringArg(args, "iframeSelector")
	selector := stringArg(args, "selector")
	el, err := findFrameElement(page, iframeSelector, selector)
	if err != nil {
		return Result{}, err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return Result{}, fmt.Errorf("click %q in iframe %q: %w", selector, iframeSelector, err)
	}
	return Result{Texts: []string{fmt.Sprintf("Clicked %s inside iframe %s", selector, iframeSelector)}}, nil
}

func fillHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	selector := stringArg(args, "selector")
	el, err := findElement(page, selector)
	if err != nil {
		return Result{}, err
	}
	if err := fillElement(el, stringArg(args, "value")); err != nil {
		return Result{}, fmt.Errorf("fill %q: %w", selector, err)
	}
	return Result{Texts: []string{fmt.Sprintf("Filled %s", selector)}}, nil
}

func iframeFillHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	iframeSelector := stringArg(args, "iframeSelector")
	selector := stringArg(args, "selector")
	el, err := findFrameElement(page, iframeSelector, selector)
	if err != nil {
		return Result{}, err
	}
	if err := fillElement(el, stringArg(args, "value")); err != nil {
		return Result{}, fmt.Errorf("fill %q in iframe %q: %w", selector, iframeSelector, err)
	}
	return Result{Texts: []string{fmt.Sprintf("Filled %s inside iframe %s", selector, iframeSelector)}}, nil
}

// fillElement replaces the current content of an input instead of appending.
func fillElement(el *rod.Element, value string) error {
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}

func selectHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	selector := stringArg(args, "selector")
	value := stringArg(args, "value")
	el, err := findElement(page, selector)
	if err != nil {
		return Result{}, err
	}
	if err := el.Select([]string{value}, true, rod.SelectorTypeText); err != nil {
		return Result{}, fmt.Errorf("select %q in %q: %w", value, selector, err)
	}
	return Result{Texts: []string{fmt.Sprintf("Selected %s in %s", value, selector)}}, nil
}

func hoverHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	selector := stringArg(args, "selector")
	el, err := findElement(page, selector)
	if err != nil {
		return Result{}, err
	}
	if err := el.Hover(); err != nil {
		return Result{}, fmt.Errorf("hover %q: %w", selector, err)
	}
	return Result{Texts: []string{fmt.Sprintf("Hovered over %s", selector)}}, nil
}

func pressKeyHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}

	key, err := keyFor(stringArg(args, "key"))
	if err != nil {
		return Result{}, err
	}

	if selector := stringArg(args, "selector"); selector != "" {
		el, elErr := findElement(page, selector)
		if elErr != nil {
			return Result{}, elErr
		}
		if focusErr := el.Focus(); focusErr != nil {
			return Result{}, fmt.Errorf("focus %q: %w", selector, focusErr)
		}
	}

	if err := page.Keyboard.Press(key); err != nil {
		return Result{}, fmt.Errorf("press key: %w", err)
	}
	return Result{Texts: []string{fmt.Sprintf("Pressed %s", stringArg(args, "key"))}}, nil
}

// keyFor maps a key name to its device key. Single characters map directly.
func keyFor(name string) (input.Key, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "enter", "return":
		return input.Enter, nil
	case "tab":
		return input.Tab, nil
	case "escape", "esc":
		return input.Escape, nil
	case "backspace":
		return input.Backspace, nil
	case "delete":
		return input.Delete, nil
	case "space":
		return input.Space, nil
	case "arrowup", "up":
		return input.ArrowUp, nil
	case "arrowdown", "down":
		return input.ArrowDown, nil
	case "arrowleft", "left":
		return input.ArrowLeft, nil
	case "arrowright", "right":
		return input.ArrowRight, nil
	case "home":
		return input.Home, nil
	case "end":
		return input.End, nil
	case "pageup":
		return input.PageUp, nil
	case "pagedown":
		return input.PageDown, nil
	}
	runes := []rune(name)
	if len(runes) == 1 {
		return input.Key(runes[0]), nil
	}
	return 0, fmt.Errorf("unsupported key %q", name)
}

func dragHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	sourceSelector := stringArg(args, "sourceSelector")
	targetSelector := stringArg(args, "targetSelector")

	source, err := findElement(page, sourceSelector)
	if err != nil {
		return Result{}, err
	}
	target, err := findElement(page, targetSelector)
	if err != nil {
		return Result{}, err
	}

	if err := source.Hover(); err != nil {
		return Result{}, fmt.Errorf("drag: move to source: %w", err)
	}
	if err := page.Mouse.Down(proto.InputMouseButtonLeft, 1); err != nil {
		return Result{}, fmt.Errorf("drag: press: %w", err)
	}
	if err := target.Hover(); err != nil {
		return Result{}, fmt.Errorf("drag: move to target: %w", err)
	}
	if err := page.Mouse.Up(proto.InputMouseButtonLeft, 1); err != nil {
		return Result{}, fmt.Errorf("drag: release: %w", err)
	}
	return Result{Texts: []string{fmt.Sprintf("Dragged %s onto %s", sourceSelector, targetSelector)}}, nil
}

func clickAndSwitchTabHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	selector := stringArg(args, "selector")
	el, err := findElement(page, selector)
	if err != nil {
		return Result{}, err
	}

	wait := page.WaitOpen()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return Result{}, fmt.Errorf("click %q: %w", selector, err)
	}
	newPage, err := wait()
	if err != nil {
		return Result{}, fmt.Errorf("wait for new tab: %w", err)
	}
	if err := newPage.Timeout(defaultNavigateTimeout).WaitLoad(); err != nil {
		return Result{}, fmt.Errorf("load new tab: %w", err)
	}

	env.Session.AdoptPage(newPage)

	info, err := newPage.Info()
	if err != nil {
		return Result{Texts: []string{"Switched to new tab"}}, nil
	}
	return Result{Texts: []string{fmt.Sprintf("Switched to new tab: %s", info.URL)}}, nil
}
