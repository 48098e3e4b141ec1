package envelope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCapToNeverExceedsHardLimit(t *testing.T) {
	long := strings.Repeat("x", HardLimit*3)

	cases := []struct {
		name      string
		requested int
	}{
		{"absent", -1},
		{"zero", 0},
		{"negative", -42},
		{"small", 100},
		{"exact", HardLimit},
		{"beyond", 50000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := CapTo(long, tc.requested)
			if n := utf8.RuneCountInString(out); n > HardLimit+utf8.RuneCountInString(truncationNotice) {
				t.Fatalf("requested=%d produced %d chars", tc.requested, n)
			}
			body := strings.TrimSuffix(out, truncationNotice)
			if utf8.RuneCountInString(body) > HardLimit {
				t.Fatalf("requested=%d body exceeds hard limit: %d", tc.requested, utf8.RuneCountInString(body))
			}
		})
	}
}

func TestCapToHonorsRequestedLengthExactly(t *testing.T) {
	src := strings.Repeat("abcdefghij", 3000) // 30000 chars

	for _, requested := range []int{0, 1, 50, 19999, HardLimit} {
		out := CapTo(src, requested)
		want := requested + utf8.RuneCountInString(truncationNotice)
		if got := utf8.RuneCountInString(out); got != want {
			t.Fatalf("requested=%d: length %d, want %d", requested, got, want)
		}
		if !strings.HasPrefix(out, src[:requested]) {
			t.Fatalf("requested=%d: prefix does not match source", requested)
		}
		if !strings.HasSuffix(out, truncationNotice) {
			t.Fatalf("requested=%d: missing truncation notice", requested)
		}
	}
}

func TestCapToLeavesShortTextAlone(t *testing.T) {
	if out := CapTo("hello", 100); out != "hello" {
		t.Fatalf("short text modified: %q", out)
	}
	if out := Cap("hello"); out != "hello" {
		t.Fatalf("short text modified by Cap: %q", out)
	}
}

func TestCapToCountsRunesNotBytes(t *testing.T) {
	src := strings.Repeat("ü", 30)
	out := CapTo(src, 10)
	body := strings.TrimSuffix(out, truncationNotice)
	if body != strings.Repeat("ü", 10) {
		t.Fatalf("rune truncation wrong: %q", body)
	}
}

func TestSuccessJoinsWithNewline(t *testing.T) {
	res := Success("first", "second", "third")
	if res.IsError {
		t.Fatalf("success result marked as error")
	}
	if got := TextOf(res); got != "first\nsecond\nthird" {
		t.Fatalf("unexpected joined text: %q", got)
	}
}

func TestSuccessCappedAppliesRequestedLimit(t *testing.T) {
	res := SuccessCapped(5, strings.Repeat("z", 100))
	got := TextOf(res)
	if !strings.HasPrefix(got, "zzzzz") || !strings.HasSuffix(got, truncationNotice) {
		t.Fatalf("unexpected capped text: %q", got)
	}
	if utf8.RuneCountInString(got) != 5+utf8.RuneCountInString(truncationNotice) {
		t.Fatalf("unexpected capped length: %d", utf8.RuneCountInString(got))
	}
}

func TestErrorSetsFlagAndTruncates(t *testing.T) {
	res := Error(strings.Repeat("e", HardLimit+500))
	if !res.IsError {
		t.Fatalf("error result not flagged")
	}
	got := TextOf(res)
	if !strings.HasSuffix(got, truncationNotice) {
		t.Fatalf("long error message not truncated")
	}
	body := strings.TrimSuffix(got, truncationNotice)
	if utf8.RuneCountInString(body) != HardLimit {
		t.Fatalf("error body length %d, want %d", utf8.RuneCountInString(body), HardLimit)
	}
}

func TestAttachImageKeepsTextIntact(t *testing.T) {
	res := Success("caption")
	AttachImage(res, "aGVsbG8=", "image/png")
	if len(res.Content) != 2 {
		t.Fatalf("expected text + image content, got %d blocks", len(res.Content))
	}
	if got := TextOf(res); got != "caption" {
		t.Fatalf("text changed after image attach: %q", got)
	}
}
