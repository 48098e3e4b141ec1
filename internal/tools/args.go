package tools

import (
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func stringArg(args map[string]interface{}, key string) string {
	return mcp.ExtractString(args, key)
}

func boolArg(args map[string]interface{}, key string) bool {
	v, ok := args[key].(bool)
	return ok && v
}

// intArg coerces JSON numbers (always float64 after decoding) and numeric
// strings to int, falling back to def.
func intArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		return def
	default:
		return def
	}
}

func floatArg(args map[string]interface{}, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		val := v
		return &val
	}
	return nil
}

// headersArg flattens an object argument into string header pairs.
func headersArg(args map[string]interface{}, key string) map[string]string {
	raw, ok := args[key].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
