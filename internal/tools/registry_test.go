package tools

import (
	"testing"
)

func TestCatalogIsComplete(t *testing.T) {
	want := []string{
		"navigate", "go_back", "go_forward", "click", "iframe_click", "fill",
		"iframe_fill", "select", "hover", "press_key", "drag",
		"click_and_switch_tab", "evaluate", "console_logs", "expect_response",
		"assert_response", "custom_user_agent", "get_visible_text",
		"get_visible_html", "screenshot", "save_as_pdf", "close",
		"http_get", "http_post", "http_put", "http_patch", "http_delete",
		"start_codegen_session", "end_codegen_session", "get_codegen_session",
		"clear_codegen_session",
	}

	defs := List()
	if len(defs) != len(want) {
		t.Fatalf("catalog has %d tools, want %d", len(defs), len(want))
	}
	for _, name := range want {
		if _, ok := Lookup(name); !ok {
			t.Fatalf("tool %s missing from catalog", name)
		}
	}
}

func TestEveryToolHasAHandler(t *testing.T) {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	for _, def := range List() {
		if _, ok := handlers[def.Name]; !ok {
			t.Fatalf("tool %s has no registered handler", def.Name)
		}
	}
}

func TestCategoriesAndSessionFlags(t *testing.T) {
	for _, def := range List() {
		switch def.Category {
		case CategoryBrowser:
			if def.Name != "close" && !def.RequiresSession {
				t.Fatalf("browser tool %s should require a session", def.Name)
			}
		case CategoryHTTP, CategoryCodegen:
			if def.RequiresSession {
				t.Fatalf("%s tool %s must not require a browser session", def.Category, def.Name)
			}
			if def.Recordable {
				t.Fatalf("%s tool %s must not be recordable", def.Category, def.Name)
			}
		default:
			t.Fatalf("tool %s has unknown category %q", def.Name, def.Category)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("does_not_exist"); ok {
		t.Fatalf("lookup of unknown tool should fail")
	}
}

func TestMCPToolConversion(t *testing.T) {
	def, ok := Lookup("navigate")
	if !ok {
		t.Fatalf("navigate missing")
	}
	tool := def.MCPTool()
	if tool.Name != "navigate" {
		t.Fatalf("unexpected tool name %q", tool.Name)
	}
	if tool.Description == "" {
		t.Fatalf("description should be carried over")
	}
	if _, ok := tool.InputSchema.Properties["url"]; !ok {
		t.Fatalf("url parameter missing from schema")
	}
	found := false
	for _, req := range tool.InputSchema.Required {
		if req == "url" {
			found = true
		}
	}
	if !found {
		t.Fatalf("url should be marked required")
	}
}
