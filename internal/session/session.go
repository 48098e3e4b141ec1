// Package session owns the process-wide execution context: at most one live
// browser, one page and one HTTP client, created lazily and reused by every
// tool call.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"webgate/internal/config"
)

// ErrLaunchFailed marks browser launch errors. The context is guaranteed
// empty afterwards, so the next browser call retries from scratch.
var ErrLaunchFailed = errors.New("browser launch failed")

// LaunchSettings are fixed at session creation and never retroactively
// applied; a later call carrying different settings is silently ignored
// while the session is live.
type LaunchSettings struct {
	Headless         bool
	Proxy            *config.Proxy
	Stealth          bool
	IgnoreCertErrors bool
	Width            int
	Height           int
}

// Context is the mutable, process-lifetime execution state. The dispatcher
// serializes tool calls, but Close can arrive from a signal handler, so the
// handles stay behind a mutex.
type Context struct {
	mu         sync.Mutex
	browser    *rod.Browser
	page       *rod.Page
	httpClient *http.Client
	launched   *LaunchSettings

	console *ConsoleLog
	watch   *ResponseWatch
}

func NewContext() *Context {
	return &Context{
		console: &ConsoleLog{},
		watch:   NewResponseWatch(),
	}
}

// Swappable seams for tests; production values live in launch.go/events.go.
var (
	launchFunc       = launchBrowser
	newPageFunc      = newBlankPage
	attachEventsFunc = attachPageEvents
	closeBrowserFunc = func(b *rod.Browser) error { return b.Close() }
)

// Ensure returns the live page, launching the browser session first if none
// exists. On launch failure every handle stays empty.
func (c *Context) Ensure(settings LaunchSettings) (*rod.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.page != nil {
		return c.page, nil
	}

	browser, err := launchFunc(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	if settings.Proxy.Authenticated() {
		handle := browser.HandleAuth(settings.Proxy.Username, settings.Proxy.Password)
		go func() { _ = handle() }()
	}

	page, err := newPageFunc(browser, settings.Stealth)
	if err != nil {
		_ = closeBrowserFunc(browser)
		return nil, fmt.Errorf("%w: open initial page: %v", ErrLaunchFailed, err)
	}

	if settings.Width > 0 && settings.Height > 0 {
		_ = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             settings.Width,
			Height:            settings.Height,
			DeviceScaleFactor: 1,
		})
	}

	c.console.Clear()
	c.watch.Reset()
	attachEventsFunc(c, page)

	copied := settings
	c.browser = browser
	c.page = page
	c.launched = &copied
	return page, nil
}

// Active reports whether a browser session is live.
func (c *Context) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page != nil
}

// Page returns the live page or nil.
func (c *Context) Page() *rod.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Browser returns the live browser or nil.
func (c *Context) Browser() *rod.Browser {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.browser
}

// LaunchedSettings returns a copy of the settings the live session was
// created with, or nil when no session exists.
func (c *Context) LaunchedSettings() *LaunchSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.launched == nil {
		return nil
	}
	copied := *c.launched
	return &copied
}

// AdoptPage switches the active page, e.g. after a click opened a new tab.
func (c *Context) AdoptPage(page *rod.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page == nil || c.browser == nil {
		return
	}
	c.page = page
	attachEventsFunc(c, page)
}

// Close releases the browser and page handles. The HTTP client is
// independent and survives; a subsequent Ensure launches a fresh session.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browser == nil {
		return nil
	}
	err := closeBrowserFunc(c.browser)
	c.browser = nil
	c.page = nil
	c.launched = nil
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

// HTTPClient lazily creates the shared HTTP client used by the http_* tools.
func (c *Context) HTTPClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return c.httpClient
}

// Console returns the captured console log.
func (c *Context) Console() *ConsoleLog { return c.console }

// Watch returns the network response watcher.
func (c *Context) Watch() *ResponseWatch { return c.watch }
