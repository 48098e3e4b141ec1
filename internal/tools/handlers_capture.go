package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"webgate/internal/appdirs"
	"webgate/internal/capture"
)

// Swappable seams so handler tests run without a browser.
var (
	screenshotFunc = capture.Screenshot
	pdfFunc        = capture.PDF
)

func screenshotHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}

	opts := capture.ScreenshotOptions{
		Selector: stringArg(args, "selector"),
		FullPage: boolArg(args, "fullPage"),
		Format:   stringArg(args, "format"),
	}
	if q, ok := args["quality"].(float64); ok {
		quality := int(q)
		opts.Quality = &quality
	}
	if opts.Selector != "" && opts.FullPage {
		return Result{}, fmt.Errorf("screenshot: selector capture cannot be combined with fullPage")
	}

	art, err := screenshotFunc(page, opts)
	if err != nil {
		return Result{}, err
	}

	name := stringArg(args, "name")
	caption := fmt.Sprintf("Screenshot %q captured (%s, %d bytes)", name, art.MimeType, len(art.Data))

	if savePath := stringArg(args, "savePath"); savePath != "" {
		path, err := resolveArtifactPath(savePath, name, extFor(art.MimeType))
		if err != nil {
			return Result{}, err
		}
		if err := os.WriteFile(path, art.Data, 0o644); err != nil {
			return Result{}, fmt.Errorf("write screenshot: %w", err)
		}
		caption += fmt.Sprintf(", saved to %s", path)
	}

	return Result{
		Texts:       []string{caption},
		Binary:      art.Data,
		ContentType: art.MimeType,
	}, nil
}

func savePDFHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}

	opts := capture.PDFOptions{
		Landscape:       boolArg(args, "landscape"),
		PrintBackground: boolArg(args, "printBackground"),
		PageRanges:      stringArg(args, "pageRanges"),
		Scale:           floatArg(args, "scale"),
		PaperWidth:      floatArg(args, "paperWidth"),
		PaperHeight:     floatArg(args, "paperHeight"),
	}

	art, err := pdfFunc(page, opts)
	if err != nil {
		return Result{}, err
	}

	outputPath := stringArg(args, "outputPath")
	filename := stringArg(args, "filename")
	path, err := resolvePDFPath(outputPath, filename)
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return Result{}, fmt.Errorf("write pdf: %w", err)
	}

	return Result{Texts: []string{fmt.Sprintf("Saved PDF (%d bytes) to %s", len(art.Data), path)}}, nil
}

func extFor(mimeType string) string {
	if mimeType == "image/jpeg" {
		return "jpg"
	}
	return "png"
}

// resolveArtifactPath turns a user-supplied path into a concrete file path,
// treating existing directories and extension-less paths as directories.
func resolveArtifactPath(raw, name, ext string) (string, error) {
	if name == "" {
		name = "capture"
	}
	file := fmt.Sprintf("%s_%s.%s", sanitizeFileName(name), time.Now().Format("20060102_150405"), ext)

	if raw == "" {
		dir, err := appdirs.DownloadsDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, file), nil
	}

	if info, err := os.Stat(raw); err == nil && info.IsDir() {
		return filepath.Join(raw, file), nil
	}
	if filepath.Ext(raw) == "" {
		if err := appdirs.EnsureDir(raw); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
		return filepath.Join(raw, file), nil
	}
	if err := appdirs.EnsureDir(filepath.Dir(raw)); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return raw, nil
}

func resolvePDFPath(outputPath, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("page_%s.pdf", time.Now().Format("20060102_150405"))
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}

	if outputPath == "" {
		dir, err := appdirs.DownloadsDir()
		if err != nil {
			return "", err
		}
		if err := appdirs.EnsureDir(dir); err != nil {
			return "", err
		}
		return filepath.Join(dir, filename), nil
	}
	if strings.HasSuffix(strings.ToLower(outputPath), ".pdf") {
		if err := appdirs.EnsureDir(filepath.Dir(outputPath)); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
		return outputPath, nil
	}
	if err := appdirs.EnsureDir(outputPath); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(outputPath, filename), nil
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "capture"
	}
	return b.String()
}
