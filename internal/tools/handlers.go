package tools

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// elementTimeout bounds how long element lookups wait for a match.
const elementTimeout = 10 * time.Second

// RegisterDefaults wires every catalog tool to its handler. Called once at
// server startup.
func RegisterDefaults() {
	RegisterHandler("navigate", navigateHandler)
	RegisterHandler("go_back", goBackHandler)
	RegisterHandler("go_forward", goForwardHandler)
	RegisterHandler("click", clickHandler)
	RegisterHandler("iframe_click", iframeClickHandler)
	RegisterHandler("fill", fillHandler)
	RegisterHandler("iframe_fill", iframeFillHandler)
	RegisterHandler("select", selectHandler)
	RegisterHandler("hover", hoverHandler)
	RegisterHandler("press_key", pressKeyHandler)
	RegisterHandler("drag", dragHandler)
	RegisterHandler("click_and_switch_tab", clickAndSwitchTabHandler)
	RegisterHandler("evaluate", evaluateHandler)
	RegisterHandler("console_logs", consoleLogsHandler)
	RegisterHandler("expect_response", expectResponseHandler)
	RegisterHandler("assert_response", assertResponseHandler)
	RegisterHandler("custom_user_agent", customUserAgentHandler)
	RegisterHandler("get_visible_text", getVisibleTextHandler)
	RegisterHandler("get_visible_html", getVisibleHTMLHandler)
	RegisterHandler("screenshot", screenshotHandler)
	RegisterHandler("save_as_pdf", savePDFHandler)
	RegisterHandler("close", closeHandler)

	RegisterHandler("http_get", httpHandler("GET"))
	RegisterHandler("http_post", httpHandler("POST"))
	RegisterHandler("http_put", httpHandler("PUT"))
	RegisterHandler("http_patch", httpHandler("PATCH"))
	RegisterHandler("http_delete", httpHandler("DELETE"))

	RegisterHandler("start_codegen_session", startCodegenHandler)
	RegisterHandler("end_codegen_session", endCodegenHandler)
	RegisterHandler("get_codegen_session", getCodegenHandler)
	RegisterHandler("clear_codegen_session", clearCodegenHandler)
}

// pageOf returns the live page; the dispatcher ensures it exists before
// session-bound handlers run.
func pageOf(env *Env) (*rod.Page, error) {
	page := env.Session.Page()
	if page == nil {
		return nil, fmt.Errorf("no browser session")
	}
	return page, nil
}

func findElement(page *rod.Page, selector string) (*rod.Element, error) {
	el, err := page.Timeout(elementTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("locate %q: %w", selector, err)
	}
	return el, nil
}

func findFrameElement(page *rod.Page, iframeSelector, selector string) (*rod.Element, error) {
	frameEl, err := findElement(page, iframeSelector)
	if err != nil {
		return nil, err
	}
	frame, err := frameEl.Frame()
	if err != nil {
		return nil, fmt.Errorf("enter iframe %q: %w", iframeSelector, err)
	}
	el, err := frame.Timeout(elementTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("locate %q in iframe %q: %w", selector, iframeSelector, err)
	}
	return el, nil
}
