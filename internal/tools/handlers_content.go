package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func getVisibleTextHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	source, err := page.HTML()
	if err != nil {
		return Result{}, fmt.Errorf("read page html: %w", err)
	}

	text, err := visibleText(source, stringArg(args, "selector"))
	if err != nil {
		return Result{}, err
	}

	res := Result{Texts: []string{text}}
	if max := intArg(args, "maxLength", 0); max > 0 {
		res.MaxChars = &max
	}
	return res, nil
}

func getVisibleHTMLHandler(ctx context.Context, env *Env, args map[string]interface{}) (Result, error) {
	page, err := pageOf(env)
	if err != nil {
		return Result{}, err
	}
	source, err := page.HTML()
	if err != nil {
		return Result{}, fmt.Errorf("read page html: %w", err)
	}

	opts := htmlCleanOptions{
		Selector:       stringArg(args, "selector"),
		RemoveScripts:  boolArg(args, "removeScripts"),
		RemoveStyles:   boolArg(args, "removeStyles"),
		RemoveComments: boolArg(args, "removeComments"),
		RemoveMeta:     boolArg(args, "removeMeta"),
		Minify:         boolArg(args, "minify"),
	}
	if boolArg(args, "cleanHtml") {
		opts.RemoveScripts = true
		opts.RemoveStyles = true
		opts.RemoveComments = true
		opts.RemoveMeta = true
	}

	out, err := cleanHTML(source, opts)
	if err != nil {
		return Result{}, err
	}

	res := Result{Texts: []string{out}}
	if max := intArg(args, "maxLength", 0); max > 0 {
		res.MaxChars = &max
	}
	return res, nil
}

var collapseSpace = regexp.MustCompile(`[ \t\r\f\v]+`)
var collapseBlank = regexp.MustCompile(`\n{3,}`)

// visibleText extracts readable text from an HTML document, dropping the
// content of script, style and other invisible containers.
func visibleText(source, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, template, head").Remove()

	scope := doc.Selection
	if selector != "" {
		scope = doc.Find(selector)
		if scope.Length() == 0 {
			return "", fmt.Errorf("no element matches %q", selector)
		}
	}

	var lines []string
	for _, raw := range strings.Split(scope.Text(), "\n") {
		line := collapseSpace.ReplaceAllString(strings.TrimSpace(raw), " ")
		lines = append(lines, line)
	}
	text := strings.Join(lines, "\n")
	text = collapseBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

type htmlCleanOptions struct {
	Selector       string
	RemoveScripts  bool
	RemoveStyles   bool
	RemoveComments bool
	RemoveMeta     bool
	Minify         bool
}

var betweenTags = regexp.MustCompile(`>\s+<`)

// cleanHTML returns the document markup with the requested noise stripped.
func cleanHTML(source string, opts htmlCleanOptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	if opts.RemoveScripts {
		doc.Find("script, noscript").Remove()
	}
	if opts.RemoveStyles {
		doc.Find("style, link[rel=stylesheet]").Remove()
	}
	if opts.RemoveMeta {
		doc.Find("meta").Remove()
	}
	if opts.RemoveComments {
		for _, n := range doc.Nodes {
			stripComments(n)
		}
	}

	var out string
	if opts.Selector != "" {
		sel := doc.Find(opts.Selector).First()
		if sel.Length() == 0 {
			return "", fmt.Errorf("no element matches %q", opts.Selector)
		}
		out, err = goquery.OuterHtml(sel)
	} else {
		out, err = doc.Html()
	}
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	if opts.Minify {
		out = betweenTags.ReplaceAllString(out, "><")
		out = strings.TrimSpace(out)
	}
	return out, nil
}

func stripComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			stripComments(c)
		}
		c = next
	}
}
