// Package envelope is the single funnel every tool outcome passes through.
// It shapes raw handler output into MCP content blocks and enforces the
// absolute response size cap.
package envelope

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// HardLimit is the ceiling, in characters, that no response text may exceed
// regardless of what the caller asked for.
const HardLimit = 20000

// truncationNotice is appended whenever text was cut. Its wording names the
// absolute limit, not the caller-requested one.
const truncationNotice = "\n\n[truncated: response capped at 20000 characters]"

// HeaderHeadroom is reserved by tools that prepend a status line and header
// summary to a long body (the HTTP handlers). Reserving the space inside the
// tool keeps the prefix intact after the final cap.
const HeaderHeadroom = 200

// Cap truncates text to the absolute limit.
func Cap(text string) string {
	return CapTo(text, HardLimit)
}

// CapTo truncates text to min(requested, HardLimit) characters and appends
// the truncation notice when anything was cut. A negative request means "no
// preference" and falls back to the absolute limit; requests beyond the
// limit are clamped to it.
func CapTo(text string, requested int) string {
	effective := requested
	if effective < 0 || effective > HardLimit {
		effective = HardLimit
	}
	runes := []rune(text)
	if len(runes) <= effective {
		return text
	}
	return string(runes[:effective]) + truncationNotice
}

// Success builds a capped text response. Multiple payloads are joined with a
// single newline, in input order, before the cap is applied.
func Success(texts ...string) *mcp.CallToolResult {
	return SuccessCapped(-1, texts...)
}

// SuccessCapped is Success with a caller-requested maximum length.
func SuccessCapped(requested int, texts ...string) *mcp.CallToolResult {
	joined := strings.Join(texts, "\n")
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(CapTo(joined, requested))},
	}
}

// Error builds an isError response; the message runs through the same
// truncation rule as success text.
func Error(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(Cap(message))},
		IsError: true,
	}
}

// AttachImage appends an inline image block. Image data is base64 on the
// wire and does not count against the text cap.
func AttachImage(res *mcp.CallToolResult, data string, mimeType string) {
	res.Content = append(res.Content, mcp.NewImageContent(data, mimeType))
}

// TextOf collects the text blocks of a result, joined the same way they were
// built. Used by the repl command and by tests.
func TextOf(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
