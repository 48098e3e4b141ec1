// Package capture renders the live page into image or PDF artifacts.
package capture

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Artifact is raw capture output plus its mime type.
type Artifact struct {
	Data     []byte
	MimeType string
}

// ScreenshotOptions selects what to capture and how to encode it.
type ScreenshotOptions struct {
	// Selector targets one element; empty captures the viewport.
	Selector string

	// FullPage captures the whole scrollable page instead of the viewport.
	// Ignored when Selector is set.
	FullPage bool

	// Format is png or jpeg. Defaults to png.
	Format string

	// Quality configures jpeg encoding (0-100).
	Quality *int
}

// PDFOptions mirrors the print-to-PDF surface the save_as_pdf tool exposes.
type PDFOptions struct {
	Landscape       bool
	PrintBackground bool
	PageRanges      string
	Scale           *float64
	PaperWidth      *float64
	PaperHeight     *float64
	MarginTop       *float64
	MarginBottom    *float64
	MarginLeft      *float64
	MarginRight     *float64
}

// Screenshot captures the page or a single element.
func Screenshot(page *rod.Page, opts ScreenshotOptions) (*Artifact, error) {
	if page == nil {
		return nil, errors.New("screenshot: page is nil")
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "png"
	}

	var protoFormat proto.PageCaptureScreenshotFormat
	var mimeType string
	switch format {
	case "png":
		protoFormat = proto.PageCaptureScreenshotFormatPng
		mimeType = "image/png"
	case "jpeg", "jpg":
		protoFormat = proto.PageCaptureScreenshotFormatJpeg
		mimeType = "image/jpeg"
	default:
		return nil, fmt.Errorf("screenshot: unsupported format %q", format)
	}

	var data []byte
	if opts.Selector != "" {
		el, err := page.Element(opts.Selector)
		if err != nil {
			return nil, fmt.Errorf("screenshot: locate %q: %w", opts.Selector, err)
		}
		quality := 100
		if opts.Quality != nil {
			quality = *opts.Quality
		}
		data, err = el.Screenshot(protoFormat, quality)
		if err != nil {
			return nil, fmt.Errorf("screenshot: element %q: %w", opts.Selector, err)
		}
	} else {
		req := &proto.PageCaptureScreenshot{
			Format:      protoFormat,
			FromSurface: true,
		}
		if opts.Quality != nil {
			req.Quality = opts.Quality
		}
		var err error
		data, err = page.Screenshot(opts.FullPage, req)
		if err != nil {
			return nil, fmt.Errorf("screenshot: page: %w", err)
		}
	}

	return &Artifact{Data: data, MimeType: mimeType}, nil
}

// PDF renders the current page into a PDF document.
func PDF(page *rod.Page, opts PDFOptions) (*Artifact, error) {
	if page == nil {
		return nil, errors.New("pdf: page is nil")
	}

	req := &proto.PagePrintToPDF{
		Landscape:       opts.Landscape,
		PrintBackground: opts.PrintBackground,
		PageRanges:      opts.PageRanges,
		Scale:           opts.Scale,
		PaperWidth:      opts.PaperWidth,
		PaperHeight:     opts.PaperHeight,
		MarginTop:       opts.MarginTop,
		MarginBottom:    opts.MarginBottom,
		MarginLeft:      opts.MarginLeft,
		MarginRight:     opts.MarginRight,
	}

	stream, err := page.PDF(req)
	if err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("pdf: read stream: %w", err)
	}
	return &Artifact{Data: data, MimeType: "application/pdf"}, nil
}
