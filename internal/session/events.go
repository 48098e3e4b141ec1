package session

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// attachPageEvents wires the page event streams into the context: console
// output and thrown exceptions feed the console log, network responses feed
// the watcher, and JavaScript dialogs are auto-accepted so they never wedge
// the session.
func attachPageEvents(c *Context, page *rod.Page) {
	page.EnableDomain(proto.NetworkEnable{})

	go page.EachEvent(func(e *proto.RuntimeConsoleAPICalled) {
		c.console.Add(ConsoleEntry{
			Level: string(e.Type),
			Text:  formatConsoleArgs(e.Args),
			When:  time.Now(),
		})
	})()

	go page.EachEvent(func(e *proto.RuntimeExceptionThrown) {
		text := e.ExceptionDetails.Text
		if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
			text = e.ExceptionDetails.Exception.Description
		}
		c.console.Add(ConsoleEntry{Level: "exception", Text: text, When: time.Now()})
	})()

	go page.EachEvent(func(e *proto.NetworkResponseReceived) {
		c.watch.Observe(ResponseInfo{
			URL:       e.Response.URL,
			Status:    e.Response.Status,
			MIMEType:  e.Response.MIMEType,
			RequestID: e.RequestID,
			When:      time.Now(),
		})
	})()

	go page.EachEvent(func(e *proto.PageJavascriptDialogOpening) {
		_ = proto.PageHandleJavaScriptDialog{Accept: true, PromptText: ""}.Call(page)
	})()
}

func formatConsoleArgs(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		switch {
		case arg.Value.Val() != nil:
			parts = append(parts, arg.Value.String())
		case arg.Description != "":
			parts = append(parts, arg.Description)
		default:
			parts = append(parts, string(arg.Type))
		}
	}
	return strings.Join(parts, " ")
}

// ResponseBody fetches the body of an observed response from the browser.
// Bodies are only available while the browser still holds them, so callers
// should fetch soon after the response arrives.
func ResponseBody(page *rod.Page, requestID proto.NetworkRequestID) ([]byte, error) {
	res, err := proto.NetworkGetResponseBody{RequestID: requestID}.Call(page)
	if err != nil {
		return nil, err
	}
	if res.Base64Encoded {
		return base64.StdEncoding.DecodeString(res.Body)
	}
	return []byte(res.Body), nil
}
