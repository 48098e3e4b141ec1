package tools

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Orders</title>
  <style>.hidden { display: none; }</style>
  <script>console.log("boot");</script>
</head>
<body>
  <!-- layout wrapper -->
  <div id="main">
    <h1>Open   Orders</h1>
    <p>Order <b>1042</b> is ready.</p>
  </div>
  <div id="footer">Contact support</div>
  <script>trackPageView();</script>
</body>
</html>`

func TestVisibleTextStripsScriptsAndStyles(t *testing.T) {
	text, err := visibleText(samplePage, "")
	if err != nil {
		t.Fatalf("visibleText: %v", err)
	}
	for _, banned := range []string{"console.log", "trackPageView", ".hidden", "Orders</title>"} {
		if strings.Contains(text, banned) {
			t.Fatalf("invisible content leaked: %q in %q", banned, text)
		}
	}
	if !strings.Contains(text, "Open Orders") {
		t.Fatalf("whitespace not collapsed: %q", text)
	}
	if !strings.Contains(text, "Order 1042 is ready.") {
		t.Fatalf("body text missing: %q", text)
	}
}

func TestVisibleTextScopedBySelector(t *testing.T) {
	text, err := visibleText(samplePage, "#footer")
	if err != nil {
		t.Fatalf("visibleText: %v", err)
	}
	if text != "Contact support" {
		t.Fatalf("unexpected scoped text: %q", text)
	}

	if _, err := visibleText(samplePage, "#missing"); err == nil {
		t.Fatalf("unmatched selector should fail")
	}
}

func TestCleanHTMLRemovals(t *testing.T) {
	out, err := cleanHTML(samplePage, htmlCleanOptions{
		RemoveScripts:  true,
		RemoveStyles:   true,
		RemoveComments: true,
		RemoveMeta:     true,
	})
	if err != nil {
		t.Fatalf("cleanHTML: %v", err)
	}
	for _, banned := range []string{"<script", "<style", "<meta", "layout wrapper"} {
		if strings.Contains(out, banned) {
			t.Fatalf("%q survived cleaning:\n%s", banned, out)
		}
	}
	if !strings.Contains(out, "<h1>") || !strings.Contains(out, "Order <b>1042</b>") {
		t.Fatalf("markup lost during cleaning:\n%s", out)
	}
}

func TestCleanHTMLKeepsEverythingByDefault(t *testing.T) {
	out, err := cleanHTML(samplePage, htmlCleanOptions{})
	if err != nil {
		t.Fatalf("cleanHTML: %v", err)
	}
	if !strings.Contains(out, "<script>") || !strings.Contains(out, "<meta") {
		t.Fatalf("default cleaning should not strip anything:\n%s", out)
	}
}

func TestCleanHTMLSelectorAndMinify(t *testing.T) {
	out, err := cleanHTML(samplePage, htmlCleanOptions{Selector: "#main", Minify: true})
	if err != nil {
		t.Fatalf("cleanHTML: %v", err)
	}
	if !strings.HasPrefix(out, `<div id="main">`) {
		t.Fatalf("selector scoping failed:\n%s", out)
	}
	if strings.Contains(out, ">\n") {
		t.Fatalf("minify left whitespace between tags:\n%s", out)
	}
	if strings.Contains(out, "footer") {
		t.Fatalf("content outside the selector leaked:\n%s", out)
	}
}

func TestEvalCandidates(t *testing.T) {
	got := evalCandidates("document.title")
	if len(got) != 2 || got[0] != "() => { return (document.title); }" {
		t.Fatalf("expression should be wrapped first: %#v", got)
	}

	got = evalCandidates("() => window.scrollY")
	if got[0] != "() => window.scrollY" {
		t.Fatalf("function scripts should be tried verbatim first: %#v", got)
	}
}

func TestKeyForNamesAndCharacters(t *testing.T) {
	if _, err := keyFor("Enter"); err != nil {
		t.Fatalf("Enter should map: %v", err)
	}
	if _, err := keyFor("arrowdown"); err != nil {
		t.Fatalf("key names should be case-insensitive: %v", err)
	}
	if k, err := keyFor("a"); err != nil || k == 0 {
		t.Fatalf("single characters should map directly: %v", err)
	}
	if _, err := keyFor("SuperKey"); err == nil {
		t.Fatalf("unknown multi-character keys should be rejected")
	}
}
