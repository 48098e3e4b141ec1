package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"webgate/internal/envelope"
)

func callHTTP(t *testing.T, method string, args map[string]interface{}) (Result, error) {
	t.Helper()
	return httpHandler(method)(context.Background(), testEnv(), args)
}

func TestHTTPGetReturnsStatusHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.Header.Get("X-Token") != "abc" {
			t.Errorf("custom header not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	res, err := callHTTP(t, "GET", map[string]interface{}{
		"url":     srv.URL,
		"headers": map[string]interface{}{"X-Token": "abc"},
	})
	if err != nil {
		t.Fatalf("http_get: %v", err)
	}

	joined := strings.Join(res.Texts, "\n")
	for _, want := range []string{"Status: 200 OK", "Content-Type: application/json", `{"ok":true}`} {
		if !strings.Contains(joined, want) {
			t.Fatalf("response missing %q:\n%s", want, joined)
		}
	}
}

func TestHTTPPostSendsBodyWithDefaultContentType(t *testing.T) {
	var gotBody string
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	res, err := callHTTP(t, "POST", map[string]interface{}{
		"url":  srv.URL,
		"body": `{"name":"alice"}`,
	})
	if err != nil {
		t.Fatalf("http_post: %v", err)
	}
	if gotBody != `{"name":"alice"}` {
		t.Fatalf("body not forwarded: %q", gotBody)
	}
	if gotType != "application/json" {
		t.Fatalf("default content type missing: %q", gotType)
	}
	if !strings.Contains(strings.Join(res.Texts, "\n"), "Status: 201") {
		t.Fatalf("status missing: %v", res.Texts)
	}
}

func TestHTTPErrorStatusIsStillASuccessfulCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	res, err := callHTTP(t, "GET", map[string]interface{}{"url": srv.URL})
	if err != nil {
		t.Fatalf("a 404 is an upstream answer, not a tool failure: %v", err)
	}
	if !strings.Contains(strings.Join(res.Texts, "\n"), "Status: 404") {
		t.Fatalf("status missing: %v", res.Texts)
	}
}

func TestHTTPConnectionFailure(t *testing.T) {
	if _, err := callHTTP(t, "GET", map[string]interface{}{"url": "http://127.0.0.1:1/nope"}); err == nil {
		t.Fatalf("unreachable upstream must fail")
	}
}

func TestHTTPBodyCapLeavesRoomForHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", envelope.HardLimit*2))
	}))
	defer srv.Close()

	res, err := callHTTP(t, "GET", map[string]interface{}{"url": srv.URL})
	if err != nil {
		t.Fatalf("http_get: %v", err)
	}
	joined := strings.Join(res.Texts, "\n")
	if !strings.Contains(joined, "Status: 200") {
		t.Fatalf("status line must survive the cap")
	}
	if utf8.RuneCountInString(joined) > envelope.HardLimit {
		t.Fatalf("capped response still too large: %d", utf8.RuneCountInString(joined))
	}
}

func TestHTTPMaxLengthArgument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("y", 5000))
	}))
	defer srv.Close()

	res, err := callHTTP(t, "GET", map[string]interface{}{
		"url":       srv.URL,
		"maxLength": float64(100),
	})
	if err != nil {
		t.Fatalf("http_get: %v", err)
	}
	joined := strings.Join(res.Texts, "\n")
	if !strings.Contains(joined, "yyy") || strings.Contains(joined, strings.Repeat("y", 200)) {
		t.Fatalf("body not capped to the requested length:\n%d chars", len(joined))
	}
	if !strings.Contains(joined, "[truncated:") {
		t.Fatalf("truncation notice missing")
	}
}

func TestDecodeBodyLatin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("café au lait")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	got, err := decodeBody(strings.NewReader(encoded), "text/html; charset=iso-8859-1")
	if err != nil {
		t.Fatalf("decodeBody: %v", err)
	}
	if got != "café au lait" {
		t.Fatalf("latin-1 not decoded: %q", got)
	}
}

func TestDecodeBodyUTF8Passthrough(t *testing.T) {
	got, err := decodeBody(strings.NewReader("grüße"), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("decodeBody: %v", err)
	}
	if got != "grüße" {
		t.Fatalf("utf-8 body changed: %q", got)
	}
}
