package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"webgate/internal/codegen"
	"webgate/internal/config"
	"webgate/internal/envelope"
	"webgate/internal/session"
)

// Env bundles the shared state every handler operates on.
type Env struct {
	Config   *config.Config
	Session  *session.Context
	Recorder *codegen.Recorder
}

// Result is the raw handler outcome before envelope encoding. Texts are
// joined with newlines and capped; MaxChars, when set, lowers the cap below
// the hard limit. Binary attaches an image block alongside the text.
type Result struct {
	Texts       []string
	Binary      []byte
	ContentType string
	MaxChars    *int
}

// Handler executes one tool call.
type Handler func(ctx context.Context, env *Env, args map[string]interface{}) (Result, error)

var (
	handlersMu sync.RWMutex
	handlers   = make(map[string]Handler)
)

// RegisterHandler associates a catalog tool with its implementation.
func RegisterHandler(name string, h Handler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers[name] = h
}

// ensureSessionFunc launches the browser session on demand; swappable in
// tests.
var ensureSessionFunc = func(env *Env, settings session.LaunchSettings) error {
	_, err := env.Session.Ensure(settings)
	return err
}

// Dispatcher serializes tool calls against the shared execution context and
// converts every failure into an error result. No error or panic escapes.
type Dispatcher struct {
	slot chan struct{}
	env  *Env
}

func NewDispatcher(env *Env) *Dispatcher {
	return &Dispatcher{slot: make(chan struct{}, 1), env: env}
}

// dispatchWait bounds how long a call waits for the previous one to finish
// before failing as busy.
var dispatchWait = 30 * time.Second

// Dispatch runs one tool call to completion. Calls are strictly serialized;
// a second call waits up to dispatchWait for the first to finish.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) *mcp.CallToolResult {
	if err := d.acquire(ctx); err != nil {
		log.Printf("tool=%s kind=%s error: %v", name, Classify(err), err)
		return envelope.Error(errorMessage(name, err))
	}
	defer func() { <-d.slot }()

	res, err := d.call(ctx, name, args)
	if err != nil {
		log.Printf("tool=%s kind=%s error: %v", name, Classify(err), err)
		return envelope.Error(errorMessage(name, err))
	}
	return res
}

func (d *Dispatcher) acquire(ctx context.Context) error {
	timer := time.NewTimer(dispatchWait)
	defer timer.Stop()
	select {
	case d.slot <- struct{}{}:
		return nil
	case <-timer.C:
		return fmt.Errorf("busy: previous call still running after %s: %w", dispatchWait, context.DeadlineExceeded)
	case <-ctx.Done():
		return fmt.Errorf("busy: %w", ctx.Err())
	}
}

func (d *Dispatcher) call(ctx context.Context, name string, args map[string]interface{}) (res *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	// Unknown tools are rejected before any session state is touched.
	def, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	handlersMu.RLock()
	h, registered := handlers[name]
	handlersMu.RUnlock()
	if !registered {
		return nil, fmt.Errorf("no handler registered for %s", name)
	}

	if err := validateArgs(def, args); err != nil {
		return nil, err
	}

	if def.RequiresSession {
		settings, err := launchSettingsFor(d.env.Config, args)
		if err != nil {
			return nil, err
		}
		if err := ensureSessionFunc(d.env, settings); err != nil {
			return nil, err
		}
	}

	r, err := h(ctx, d.env, args)
	if err != nil {
		return nil, err
	}

	if def.Recordable && d.env.Recorder != nil {
		d.env.Recorder.Record(name, args)
	}

	requested := -1
	if r.MaxChars != nil {
		requested = *r.MaxChars
	}
	out := envelope.SuccessCapped(requested, r.Texts...)
	if len(r.Binary) > 0 {
		envelope.AttachImage(out, base64.StdEncoding.EncodeToString(r.Binary), r.ContentType)
	}
	return out, nil
}

func validateArgs(def Definition, args map[string]interface{}) error {
	for _, p := range def.Parameters {
		if !p.Required {
			continue
		}
		v, ok := args[p.Name]
		if !ok {
			return fmt.Errorf("%w: missing required argument %q", errInvalidArgs, p.Name)
		}
		if p.Type == ParamString {
			s, isStr := v.(string)
			if !isStr || strings.TrimSpace(s) == "" {
				return fmt.Errorf("%w: argument %q must be a non-empty string", errInvalidArgs, p.Name)
			}
		}
	}
	return nil
}

// launchSettingsFor resolves the settings a new session would launch with.
// Flags and environment configuration win over per-call arguments; per-call
// values only fill the gaps. Absent both, the browser launches visible with
// no proxy.
func launchSettingsFor(cfg *config.Config, args map[string]interface{}) (session.LaunchSettings, error) {
	settings := session.LaunchSettings{
		Stealth:          cfg.Stealth,
		IgnoreCertErrors: cfg.IgnoreCertErrors,
		Width:            intArg(args, "width", 0),
		Height:           intArg(args, "height", 0),
	}

	if cfg.HeadlessSet() {
		settings.Headless = cfg.Headless
	} else if v, ok := args["headless"].(bool); ok {
		settings.Headless = v
	}

	if cfg.ProxySet() {
		settings.Proxy = cfg.Proxy
	} else if raw := stringArg(args, "proxy"); strings.TrimSpace(raw) != "" {
		p, err := config.ParseProxy(raw)
		if err != nil {
			return settings, fmt.Errorf("%w: per-call proxy: %v", errConfigParse, err)
		}
		settings.Proxy = p
	}

	return settings, nil
}

func errorMessage(name string, err error) string {
	if Classify(err) == KindUnknownTool {
		return err.Error()
	}
	return fmt.Sprintf("%s failed: %v", name, err)
}
