// Package tools defines the fixed tool catalog and the dispatcher that
// executes calls against the shared execution context.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Category groups tools by the resources they touch.
type Category string

const (
	// CategoryBrowser tools drive the shared browser session.
	CategoryBrowser Category = "browser"
	// CategoryHTTP tools talk to upstream servers directly, no browser.
	CategoryHTTP Category = "http"
	// CategoryCodegen tools manage recording sessions.
	CategoryCodegen Category = "codegen"
)

type ParameterType string

const (
	ParamString  ParameterType = "string"
	ParamNumber  ParameterType = "number"
	ParamBoolean ParameterType = "boolean"
	ParamObject  ParameterType = "object"
)

type Parameter struct {
	Name        string
	Type        ParameterType
	Description string
	Required    bool
	Enum        []string
}

// Definition describes one tool in the catalog.
type Definition struct {
	Name        string
	Description string
	Category    Category
	Parameters  []Parameter

	// RequiresSession makes the dispatcher ensure a live browser session
	// before the handler runs.
	RequiresSession bool

	// Recordable tool calls are appended to an active codegen session.
	Recordable bool
}

var definitions = []Definition{
	// Browser tools.
	{
		Name:            "navigate",
		Description:     "Navigate the browser to a URL and wait for the page to load.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "url", Type: ParamString, Description: "the URL to navigate to", Required: true},
			{Name: "timeout", Type: ParamNumber, Description: "navigation timeout in milliseconds (default 30000)"},
			{Name: "width", Type: ParamNumber, Description: "viewport width in pixels, applied at session launch"},
			{Name: "height", Type: ParamNumber, Description: "viewport height in pixels, applied at session launch"},
			{Name: "headless", Type: ParamBoolean, Description: "launch headless; honored only when no flag or environment setting exists"},
			{Name: "proxy", Type: ParamString, Description: "proxy config as JSON with server, bypass, username, password; honored only when no flag or environment setting exists"},
		},
	},
	{
		Name:            "go_back",
		Description:     "Go back one entry in the browser history.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
	},
	{
		Name:            "go_forward",
		Description:     "Go forward one entry in the browser history.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
	},
	{
		Name:            "click",
		Description:     "Click the first element matching a CSS selector.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "selector", Type: ParamString, Description: "CSS selector of the element to click", Required: true},
		},
	},
	{
		Name:            "iframe_click",
		Description:     "Click an element inside an iframe.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "iframeSelector", Type: ParamString, Description: "CSS selector of the iframe element", Required: true},
			{Name: "selector", Type: ParamString, Description: "CSS selector of the element inside the iframe", Required: true},
		},
	},
	{
		Name:            "fill",
		Description:     "Clear an input field and type a value into it.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "selector", Type: ParamString, Description: "CSS selector of the input element", Required: true},
			{Name: "value", Type: ParamString, Description: "the text to type", Required: true},
		},
	},
	{
		Name:            "iframe_fill",
		Description:     "Clear and fill an input field inside an iframe.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "iframeSelector", Type: ParamString, Description: "CSS selector of the iframe element", Required: true},
			{Name: "selector", Type: ParamString, Description: "CSS selector of the input inside the iframe", Required: true},
			{Name: "value", Type: ParamString, Description: "the text to type", Required: true},
		},
	},
	{
		Name:            "select",
		Description:     "Choose an option in a select element by value.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "selector", Type: ParamString, Description: "CSS selector of the select element", Required: true},
			{Name: "value", Type: ParamString, Description: "value of the option to choose", Required: true},
		},
	},
	{
		Name:            "hover",
		Description:     "Move the mouse over the first element matching a CSS selector.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "selector", Type: ParamString, Description: "CSS selector of the element to hover", Required: true},
		},
	},
	{
		Name:            "press_key",
		Description:     "Press a keyboard key, optionally after focusing an element.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "key", Type: ParamString, Description: "key to press, e.g. Enter, Tab, ArrowDown or a single character", Required: true},
			{Name: "selector", Type: ParamString, Description: "optional CSS selector of an element to focus first"},
		},
	},
	{
		Name:            "drag",
		Description:     "Drag the mouse from one element to another.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "sourceSelector", Type: ParamString, Description: "CSS selector of the element to drag", Required: true},
			{Name: "targetSelector", Type: ParamString, Description: "CSS selector of the drop target", Required: true},
		},
	},
	{
		Name:            "click_and_switch_tab",
		Description:     "Click a link that opens a new tab and switch the session to it.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "selector", Type: ParamString, Description: "CSS selector of the link to click", Required: true},
		},
	},
	{
		Name:            "evaluate",
		Description:     "Execute a JavaScript expression on the page and return its result as JSON.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "script", Type: ParamString, Description: "JavaScript source to evaluate", Required: true},
		},
	},
	{
		Name:            "console_logs",
		Description:     "Return console output captured from the page, filtered by level and search text.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Parameters: []Parameter{
			{Name: "type", Type: ParamString, Description: "log level to include", Enum: []string{"all", "log", "info", "warning", "error", "debug", "exception"}},
			{Name: "search", Type: ParamString, Description: "case-insensitive substring the message must contain"},
			{Name: "limit", Type: ParamNumber, Description: "return only the most recent N entries"},
			{Name: "clear", Type: ParamBoolean, Description: "clear the captured log after reading"},
		},
	},
	{
		Name:            "expect_response",
		Description:     "Start waiting for a network response whose URL contains the given pattern.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Parameters: []Parameter{
			{Name: "id", Type: ParamString, Description: "identifier used later by assert_response", Required: true},
			{Name: "url", Type: ParamString, Description: "substring the response URL must contain", Required: true},
		},
	},
	{
		Name:            "assert_response",
		Description:     "Wait for a previously expected response and optionally check its body.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Parameters: []Parameter{
			{Name: "id", Type: ParamString, Description: "identifier passed to expect_response", Required: true},
			{Name: "value", Type: ParamString, Description: "optional substring the response body must contain"},
			{Name: "timeout", Type: ParamNumber, Description: "wait timeout in milliseconds (default 15000)"},
		},
	},
	{
		Name:            "custom_user_agent",
		Description:     "Override the browser user agent for subsequent requests.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Parameters: []Parameter{
			{Name: "userAgent", Type: ParamString, Description: "the user agent string to send", Required: true},
		},
	},
	{
		Name:            "get_visible_text",
		Description:     "Return the visible text of the current page.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Parameters: []Parameter{
			{Name: "selector", Type: ParamString, Description: "optional CSS selector to scope the extraction"},
			{Name: "maxLength", Type: ParamNumber, Description: "maximum number of characters to return"},
		},
	},
	{
		Name:            "get_visible_html",
		Description:     "Return the HTML of the current page, optionally cleaned of scripts, styles, comments and meta tags.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Parameters: []Parameter{
			{Name: "selector", Type: ParamString, Description: "optional CSS selector to scope the extraction"},
			{Name: "removeScripts", Type: ParamBoolean, Description: "strip script tags"},
			{Name: "removeStyles", Type: ParamBoolean, Description: "strip style tags"},
			{Name: "removeComments", Type: ParamBoolean, Description: "strip HTML comments"},
			{Name: "removeMeta", Type: ParamBoolean, Description: "strip meta tags"},
			{Name: "cleanHtml", Type: ParamBoolean, Description: "shorthand enabling all of the removals above"},
			{Name: "minify", Type: ParamBoolean, Description: "collapse whitespace between tags"},
			{Name: "maxLength", Type: ParamNumber, Description: "maximum number of characters to return"},
		},
	},
	{
		Name:            "screenshot",
		Description:     "Capture a screenshot of the page or a single element.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Recordable:      true,
		Parameters: []Parameter{
			{Name: "name", Type: ParamString, Description: "name for the screenshot artifact", Required: true},
			{Name: "selector", Type: ParamString, Description: "optional CSS selector to capture a single element"},
			{Name: "fullPage", Type: ParamBoolean, Description: "capture the whole scrollable page"},
			{Name: "format", Type: ParamString, Description: "image format", Enum: []string{"png", "jpeg"}},
			{Name: "quality", Type: ParamNumber, Description: "JPEG quality (0-100)"},
			{Name: "savePath", Type: ParamString, Description: "optional path to also write the image to disk"},
		},
	},
	{
		Name:            "save_as_pdf",
		Description:     "Render the current page to a PDF file on disk.",
		Category:        CategoryBrowser,
		RequiresSession: true,
		Parameters: []Parameter{
			{Name: "outputPath", Type: ParamString, Description: "directory or file path to write the PDF to"},
			{Name: "filename", Type: ParamString, Description: "file name when outputPath is a directory"},
			{Name: "landscape", Type: ParamBoolean, Description: "landscape orientation"},
			{Name: "printBackground", Type: ParamBoolean, Description: "include background graphics"},
			{Name: "scale", Type: ParamNumber, Description: "render scale factor"},
			{Name: "paperWidth", Type: ParamNumber, Description: "paper width in inches"},
			{Name: "paperHeight", Type: ParamNumber, Description: "paper height in inches"},
			{Name: "pageRanges", Type: ParamString, Description: "page ranges to print, e.g. 1-5,8"},
		},
	},
	{
		Name:        "close",
		Description: "Close the browser session and release its resources.",
		Category:    CategoryBrowser,
	},

	// HTTP tools.
	{
		Name:        "http_get",
		Description: "Perform an HTTP GET request and return the decoded response body.",
		Category:    CategoryHTTP,
		Parameters: []Parameter{
			{Name: "url", Type: ParamString, Description: "the URL to request", Required: true},
			{Name: "headers", Type: ParamObject, Description: "additional request headers"},
			{Name: "maxLength", Type: ParamNumber, Description: "maximum number of body characters to return"},
		},
	},
	{
		Name:        "http_post",
		Description: "Perform an HTTP POST request with an optional body.",
		Category:    CategoryHTTP,
		Parameters: []Parameter{
			{Name: "url", Type: ParamString, Description: "the URL to request", Required: true},
			{Name: "body", Type: ParamString, Description: "request body"},
			{Name: "contentType", Type: ParamString, Description: "Content-Type header (default application/json when a body is present)"},
			{Name: "headers", Type: ParamObject, Description: "additional request headers"},
			{Name: "maxLength", Type: ParamNumber, Description: "maximum number of body characters to return"},
		},
	},
	{
		Name:        "http_put",
		Description: "Perform an HTTP PUT request with an optional body.",
		Category:    CategoryHTTP,
		Parameters: []Parameter{
			{Name: "url", Type: ParamString, Description: "the URL to request", Required: true},
			{Name: "body", Type: ParamString, Description: "request body"},
			{Name: "contentType", Type: ParamString, Description: "Content-Type header (default application/json when a body is present)"},
			{Name: "headers", Type: ParamObject, Description: "additional request headers"},
			{Name: "maxLength", Type: ParamNumber, Description: "maximum number of body characters to return"},
		},
	},
	{
		Name:        "http_patch",
		Description: "Perform an HTTP PATCH request with an optional body.",
		Category:    CategoryHTTP,
		Parameters: []Parameter{
			{Name: "url", Type: ParamString, Description: "the URL to request", Required: true},
			{Name: "body", Type: ParamString, Description: "request body"},
			{Name: "contentType", Type: ParamString, Description: "Content-Type header (default application/json when a body is present)"},
			{Name: "headers", Type: ParamObject, Description: "additional request headers"},
			{Name: "maxLength", Type: ParamNumber, Description: "maximum number of body characters to return"},
		},
	},
	{
		Name:        "http_delete",
		Description: "Perform an HTTP DELETE request.",
		Category:    CategoryHTTP,
		Parameters: []Parameter{
			{Name: "url", Type: ParamString, Description: "the URL to request", Required: true},
			{Name: "headers", Type: ParamObject, Description: "additional request headers"},
			{Name: "maxLength", Type: ParamNumber, Description: "maximum number of body characters to return"},
		},
	},

	// Codegen tools.
	{
		Name:        "start_codegen_session",
		Description: "Start recording browser tool calls for test generation.",
		Category:    CategoryCodegen,
		Parameters: []Parameter{
			{Name: "outputPath", Type: ParamString, Description: "directory the generated test file is written to"},
			{Name: "testNamePrefix", Type: ParamString, Description: "name prefix for the generated test function and file"},
			{Name: "includeComments", Type: ParamBoolean, Description: "annotate generated steps with the recorded calls"},
		},
	},
	{
		Name:        "end_codegen_session",
		Description: "Stop recording and write the generated test file.",
		Category:    CategoryCodegen,
		Parameters: []Parameter{
			{Name: "sessionId", Type: ParamString, Description: "id returned by start_codegen_session", Required: true},
		},
	},
	{
		Name:        "get_codegen_session",
		Description: "Show a recording session and its recorded actions.",
		Category:    CategoryCodegen,
		Parameters: []Parameter{
			{Name: "sessionId", Type: ParamString, Description: "id returned by start_codegen_session", Required: true},
		},
	},
	{
		Name:        "clear_codegen_session",
		Description: "Drop a recording session without generating anything.",
		Category:    CategoryCodegen,
		Parameters: []Parameter{
			{Name: "sessionId", Type: ParamString, Description: "id returned by start_codegen_session", Required: true},
		},
	},
}

// List returns all tool definitions in catalog order.
func List() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a tool definition by name.
func Lookup(name string) (Definition, bool) {
	for _, def := range definitions {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// MCPTool converts a definition into the wire-level tool description.
func (d Definition) MCPTool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, p := range d.Parameters {
		var propOpts []mcp.PropertyOption
		propOpts = append(propOpts, mcp.Description(p.Description))
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if len(p.Enum) > 0 {
			propOpts = append(propOpts, mcp.Enum(p.Enum...))
		}
		switch p.Type {
		case ParamNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case ParamBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		case ParamObject:
			opts = append(opts, mcp.WithObject(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(d.Name, opts...)
}
