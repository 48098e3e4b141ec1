package tools

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveArtifactPathIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	path, err := resolveArtifactPath(dir, "login page", "png")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected file inside %s, got %s", dir, path)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "login_page_") || !strings.HasSuffix(base, ".png") {
		t.Fatalf("unexpected file name %s", base)
	}
}

func TestResolveArtifactPathExplicitFile(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "shot.jpg")
	path, err := resolveArtifactPath(want, "ignored", "jpg")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != want {
		t.Fatalf("explicit file path changed: %s", path)
	}
}

func TestResolvePDFPathVariants(t *testing.T) {
	dir := t.TempDir()

	path, err := resolvePDFPath(dir, "report")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != filepath.Join(dir, "report.pdf") {
		t.Fatalf("pdf extension not appended: %s", path)
	}

	explicit := filepath.Join(dir, "out.pdf")
	path, err = resolvePDFPath(explicit, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != explicit {
		t.Fatalf("explicit pdf path changed: %s", path)
	}

	path, err = resolvePDFPath(dir, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, ".pdf") {
		t.Fatalf("default name not generated in %s: %s", dir, path)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := sanitizeFileName("My Page: Final!"); got != "My_Page__Final_" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
	if got := sanitizeFileName("   "); got != "capture" {
		t.Fatalf("blank names should fall back, got %q", got)
	}
}

func TestExtFor(t *testing.T) {
	if extFor("image/jpeg") != "jpg" || extFor("image/png") != "png" {
		t.Fatalf("unexpected extension mapping")
	}
}
