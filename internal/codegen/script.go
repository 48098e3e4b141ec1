package codegen

import (
	"fmt"
	"strings"
)

// Generate renders a recorded session as a standalone go-rod test file.
func Generate(s *Session) string {
	var b strings.Builder

	b.WriteString("// Code generated by webgate codegen; edit as needed.\n")
	b.WriteString("package recorded\n\n")
	b.WriteString("import (\n")
	b.WriteString("\t\"testing\"\n\n")
	b.WriteString("\t\"github.com/go-rod/rod\"\n")
	if needsInputImport(s) {
		b.WriteString("\t\"github.com/go-rod/rod/lib/input\"\n")
	}
	b.WriteString("\t\"github.com/go-rod/rod/lib/launcher\"\n")
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "func %s(t *testing.T) {\n", testNameFor(s))
	b.WriteString("\tcontrolURL, err := launcher.New().Headless(true).Launch()\n")
	b.WriteString("\tif err != nil {\n\t\tt.Fatalf(\"launch browser: %v\", err)\n\t}\n")
	b.WriteString("\tbrowser := rod.New().ControlURL(controlURL)\n")
	b.WriteString("\tif err := browser.Connect(); err != nil {\n\t\tt.Fatalf(\"connect browser: %v\", err)\n\t}\n")
	b.WriteString("\tdefer browser.MustClose()\n\n")
	b.WriteString("\tpage := browser.MustPage(\"about:blank\")\n")

	for i, action := range s.Actions {
		if s.Options.IncludeComments {
			fmt.Fprintf(&b, "\n\t// step %d: %s\n", i+1, action.Tool)
		}
		for _, line := range stepLines(action) {
			b.WriteString("\t" + line + "\n")
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func stepLines(a Action) []string {
	str := func(key string) string {
		v, _ := a.Args[key].(string)
		return v
	}

	switch a.Tool {
	case "navigate":
		return []string{fmt.Sprintf("page.MustNavigate(%q).MustWaitLoad()", str("url"))}
	case "go_back":
		return []string{"page.MustNavigateBack()"}
	case "go_forward":
		return []string{"page.MustNavigateForward()"}
	case "click":
		return []string{fmt.Sprintf("page.MustElement(%q).MustClick()", str("selector"))}
	case "fill":
		return []string{fmt.Sprintf("page.MustElement(%q).MustSelectAllText().MustInput(%q)", str("selector"), str("value"))}
	case "select":
		return []string{fmt.Sprintf("page.MustElement(%q).MustSelect(%q)", str("selector"), str("value"))}
	case "hover":
		return []string{fmt.Sprintf("page.MustElement(%q).MustHover()", str("selector"))}
	case "iframe_click":
		return []string{fmt.Sprintf("page.MustElement(%q).MustFrame().MustElement(%q).MustClick()",
			str("iframeSelector"), str("selector"))}
	case "iframe_fill":
		return []string{fmt.Sprintf("page.MustElement(%q).MustFrame().MustElement(%q).MustSelectAllText().MustInput(%q)",
			str("iframeSelector"), str("selector"), str("value"))}
	case "evaluate":
		return []string{fmt.Sprintf("page.MustEval(%q)", "() => { return ("+str("script")+"); }")}
	case "press_key":
		if sel := str("selector"); sel != "" {
			return []string{fmt.Sprintf("page.MustElement(%q).MustType(%s)", sel, keyLiteral(str("key")))}
		}
		return []string{fmt.Sprintf("page.Keyboard.MustType(%s)", keyLiteral(str("key")))}
	case "screenshot":
		return []string{"page.MustScreenshot(\"\")"}
	default:
		// Tools without a one-line rod equivalent are left as a note so the
		// generated test still compiles.
		return []string{fmt.Sprintf("_ = page // recorded call %q has no generated equivalent", a.Tool)}
	}
}

func needsInputImport(s *Session) bool {
	for _, a := range s.Actions {
		if a.Tool != "press_key" {
			continue
		}
		key, _ := a.Args["key"].(string)
		if strings.HasPrefix(keyLiteral(key), "input.") {
			return true
		}
	}
	return false
}

func keyLiteral(key string) string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "enter", "return":
		return "input.Enter"
	case "tab":
		return "input.Tab"
	case "escape", "esc":
		return "input.Escape"
	case "backspace":
		return "input.Backspace"
	case "delete":
		return "input.Delete"
	case "arrowup":
		return "input.ArrowUp"
	case "arrowdown":
		return "input.ArrowDown"
	case "arrowleft":
		return "input.ArrowLeft"
	case "arrowright":
		return "input.ArrowRight"
	default:
		r := []rune(key)
		if len(r) == 1 {
			return fmt.Sprintf("%q", r[0])
		}
		return "input.Enter"
	}
}

func testNameFor(s *Session) string {
	prefix := strings.TrimSpace(s.Options.TestNamePrefix)
	if prefix == "" {
		prefix = "recorded session"
	}
	var b strings.Builder
	b.WriteString("Test")
	upperNext := true
	for _, r := range prefix {
		switch {
		case r == ' ' || r == '_' || r == '-':
			upperNext = true
		case upperNext:
			b.WriteString(strings.ToUpper(string(r)))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
