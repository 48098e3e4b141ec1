package tools

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"webgate/internal/envelope"
)

// bodyReadLimit bounds how much of an upstream body is read into memory.
// The envelope caps the response anyway, so anything beyond this is waste.
const bodyReadLimit = 4 << 20

func httpHandler(method string) Handler {
	return func(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
		url := stringArg(args, "url")

		var bodyReader io.Reader
		body := stringArg(args, "body")
		if body != "" {
			bodyReader = strings.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return Result{}, fmt.Errorf("build request: %w", err)
		}

		if body != "" {
			contentType := stringArg(args, "contentType")
			if contentType == "" {
				contentType = "application/json"
			}
			req.Header.Set("Content-Type", contentType)
		}
		for k, v := range headersArg(args, "headers") {
			req.Header.Set(k, v)
		}

		resp, err := env.Session.HTTPClient().Do(req)
		if err != nil {
			return Result{}, fmt.Errorf("%s %s: %w", method, url, err)
		}
		defer resp.Body.Close()

		decoded, err := decodeBody(io.LimitReader(resp.Body, bodyReadLimit), resp.Header.Get("Content-Type"))
		if err != nil {
			return Result{}, fmt.Errorf("read response body: %w", err)
		}

		// Pre-cap the body so the status line and headers always survive
		// the envelope limit.
		requested := intArg(args, "maxLength", 0)
		bodyLimit := envelope.HardLimit - envelope.HeaderHeadroom
		if requested > 0 && requested < bodyLimit {
			bodyLimit = requested
		}
		decoded = envelope.CapTo(decoded, bodyLimit)

		lines := []string{
			fmt.Sprintf("%s %s", method, url),
			fmt.Sprintf("Status: %s", resp.Status),
		}
		lines = append(lines, summarizeHeaders(resp.Header)...)
		lines = append(lines, "", decoded)

		return Result{Texts: lines}, nil
	}
}

// decodeBody converts an upstream body to UTF-8 using the charset declared
// in the Content-Type header, falling back to content sniffing.
func decodeBody(r io.Reader, contentType string) (string, error) {
	if name := charsetParam(contentType); name != "" && !strings.EqualFold(name, "utf-8") {
		if enc, err := htmlindex.Get(name); err == nil {
			data, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
			if err != nil {
				return "", err
			}
			return string(data), nil
		}
	}

	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		decoded = r
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func charsetParam(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// summarizeHeaders keeps the response headers that matter for debugging.
func summarizeHeaders(h http.Header) []string {
	keep := []string{"Content-Type", "Content-Length", "Location", "Cache-Control", "Content-Encoding", "Server"}
	var out []string
	for _, k := range keep {
		if v := h.Get(k); v != "" {
			out = append(out, fmt.Sprintf("%s: %s", k, v))
		}
	}
	sort.Strings(out)
	return out
}
