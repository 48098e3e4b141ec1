package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecorderLifecycle(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder()

	s, err := r.Start(Options{OutputPath: dir, TestNamePrefix: "login flow", IncludeComments: true})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if r.ActiveID() != s.ID {
		t.Fatalf("expected session %s active, got %q", s.ID, r.ActiveID())
	}

	r.Record("navigate", map[string]interface{}{"url": "https://example.com/login"})
	r.Record("fill", map[string]interface{}{"selector": "#user", "value": "alice"})
	r.Record("click", map[string]interface{}{"selector": "button[type=submit]"})

	got, ok := r.Get(s.ID)
	if !ok || len(got.Actions) != 3 {
		t.Fatalf("expected 3 recorded actions, got %#v", got)
	}

	path, steps, err := r.End(s.ID)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if steps != 3 {
		t.Fatalf("expected 3 steps, got %d", steps)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("generated file written to %s, want dir %s", path, dir)
	}
	if !strings.HasPrefix(filepath.Base(path), "login_flow_") || !strings.HasSuffix(path, "_test.go") {
		t.Fatalf("unexpected file name %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	script := string(data)
	for _, want := range []string{
		"func TestLoginFlow(t *testing.T)",
		`page.MustNavigate("https://example.com/login").MustWaitLoad()`,
		`page.MustElement("#user").MustSelectAllText().MustInput("alice")`,
		`page.MustElement("button[type=submit]").MustClick()`,
		"// step 1: navigate",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("generated script missing %q:\n%s", want, script)
		}
	}

	if _, ok := r.Get(s.ID); ok {
		t.Fatalf("session should be gone after end")
	}
	if r.ActiveID() != "" {
		t.Fatalf("no session should be active after end")
	}
}

func TestRecorderSingleActiveSession(t *testing.T) {
	r := NewRecorder()
	if _, err := r.Start(Options{OutputPath: t.TempDir()}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := r.Start(Options{}); err == nil {
		t.Fatalf("expected error starting a second session while one records")
	}
}

func TestRecorderRecordWithoutActiveSessionIsNoop(t *testing.T) {
	r := NewRecorder()
	r.Record("click", map[string]interface{}{"selector": "#x"})
	if r.ActiveID() != "" {
		t.Fatalf("nothing should be active")
	}
}

func TestRecorderClear(t *testing.T) {
	r := NewRecorder()
	s, err := r.Start(Options{OutputPath: t.TempDir()})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !r.Clear(s.ID) {
		t.Fatalf("clear reported missing session")
	}
	if r.Clear(s.ID) {
		t.Fatalf("second clear should report missing session")
	}
	if _, _, err := r.End(s.ID); err == nil {
		t.Fatalf("end after clear should fail")
	}
}

func TestGenerateWithoutPressKeySkipsInputImport(t *testing.T) {
	s := &Session{Options: Options{TestNamePrefix: "nav"}}
	s.Actions = append(s.Actions, Action{Tool: "navigate", Args: map[string]interface{}{"url": "https://example.com"}})
	script := Generate(s)
	if strings.Contains(script, "rod/lib/input") {
		t.Fatalf("input import should be absent:\n%s", script)
	}
}

func TestGenerateWithPressKeyAddsInputImport(t *testing.T) {
	s := &Session{Options: Options{TestNamePrefix: "keys"}}
	s.Actions = append(s.Actions, Action{Tool: "press_key", Args: map[string]interface{}{"key": "Enter"}})
	script := Generate(s)
	if !strings.Contains(script, "rod/lib/input") {
		t.Fatalf("input import missing:\n%s", script)
	}
	if !strings.Contains(script, "page.Keyboard.MustType(input.Enter)") {
		t.Fatalf("press_key step missing:\n%s", script)
	}
}
