package config

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Environment variables consulted when the corresponding CLI flag is absent.
const (
	EnvHeadless = "WEBGATE_HEADLESS"
	EnvProxy    = "WEBGATE_PROXY"
)

// Source records where a resolved setting came from.
type Source int

const (
	SourceUnset Source = iota
	SourceCLI
	SourceEnv
)

func (s Source) String() string {
	switch s {
	case SourceCLI:
		return "cli"
	case SourceEnv:
		return "env"
	default:
		return "unset"
	}
}

// Proxy mirrors the JSON shape accepted by both the --proxy flag and the
// WEBGATE_PROXY environment variable.
type Proxy struct {
	Server   string `json:"server"`
	Bypass   string `json:"bypass,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

func (p *Proxy) Authenticated() bool {
	return p != nil && p.Username != "" && p.Password != ""
}

// Config is computed once at process start and never mutated afterwards.
// Handlers receive it by reference; they must not read flags or the
// environment themselves.
type Config struct {
	Headless       bool
	HeadlessSource Source

	Proxy       *Proxy
	ProxySource Source

	Stealth          bool
	IgnoreCertErrors bool
}

// HeadlessSet reports whether a global headless value exists; when false the
// per-call navigate argument is honored instead.
func (c *Config) HeadlessSet() bool { return c.HeadlessSource != SourceUnset }

// ProxySet reports whether a global proxy exists; when false the per-call
// navigate proxy argument is honored instead.
func (c *Config) ProxySet() bool { return c.ProxySource != SourceUnset }

// Inputs is a snapshot of the process argument and environment state the
// resolver works from. LookupEnv is swappable so tests do not touch the real
// environment.
type Inputs struct {
	HeadlessFlag     bool
	HeadlessFlagSet  bool
	ProxyFlag        string
	StealthFlag      bool
	IgnoreCertErrors bool
	LookupEnv        func(string) (string, bool)
}

// Resolve applies CLI-over-environment precedence for each setting. A
// malformed proxy value is a non-fatal configuration error: it is logged,
// that source is treated as absent, and resolution continues.
func Resolve(in Inputs) *Config {
	lookup := in.LookupEnv
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	cfg := &Config{
		Stealth:          in.StealthFlag,
		IgnoreCertErrors: in.IgnoreCertErrors,
	}

	if in.HeadlessFlagSet {
		cfg.Headless = in.HeadlessFlag
		cfg.HeadlessSource = SourceCLI
	} else if raw, ok := lookup(EnvHeadless); ok && strings.TrimSpace(raw) != "" {
		cfg.Headless = strings.EqualFold(strings.TrimSpace(raw), "true")
		cfg.HeadlessSource = SourceEnv
	}

	if raw := strings.TrimSpace(in.ProxyFlag); raw != "" {
		proxy, err := ParseProxy(raw)
		if err != nil {
			log.Printf("config: ignoring --proxy value: %v", err)
		} else {
			cfg.Proxy = proxy
			cfg.ProxySource = SourceCLI
		}
	}
	if cfg.Proxy == nil {
		if raw, ok := lookup(EnvProxy); ok && strings.TrimSpace(raw) != "" {
			proxy, err := ParseProxy(raw)
			if err != nil {
				log.Printf("config: ignoring %s value: %v", EnvProxy, err)
			} else {
				cfg.Proxy = proxy
				cfg.ProxySource = SourceEnv
			}
		}
	}

	return cfg
}

// ParseProxy decodes the proxy JSON object and requires a server address.
func ParseProxy(raw string) (*Proxy, error) {
	var proxy Proxy
	if err := json.Unmarshal([]byte(raw), &proxy); err != nil {
		return nil, fmt.Errorf("parse proxy settings: %w", err)
	}
	if strings.TrimSpace(proxy.Server) == "" {
		return nil, fmt.Errorf("parse proxy settings: missing required \"server\" field")
	}
	return &proxy, nil
}

// DiagnosticLines describes the active cross-cutting settings for the startup
// log. Credentials never appear here.
func (c *Config) DiagnosticLines() []string {
	var lines []string

	if c.HeadlessSet() {
		state := "disabled"
		if c.Headless {
			state = "enabled"
		}
		lines = append(lines, fmt.Sprintf("headless mode %s (source: %s)", state, c.HeadlessSource))
	} else {
		lines = append(lines, "headless mode not configured; per-call setting applies")
	}

	if c.ProxySet() {
		line := fmt.Sprintf("proxy configured server=%s", c.Proxy.Server)
		if c.Proxy.Authenticated() {
			line += " (authenticated)"
		}
		if c.Proxy.Bypass != "" {
			line += fmt.Sprintf(" bypass=%s", c.Proxy.Bypass)
		}
		line += fmt.Sprintf(" (source: %s)", c.ProxySource)
		lines = append(lines, line)
	} else {
		lines = append(lines, "no proxy configured")
	}

	return lines
}
