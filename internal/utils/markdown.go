package utils

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var headingID = regexp.MustCompile(`^[a-z0-9_-]+$`)

var (
	articleMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// editors break lines inside paragraphs on purpose
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	articlePolicy = newArticlePolicy()
)

// newArticlePolicy accepts what an article body may carry: user-generated
// markup, inline images, and heading anchors for section links.
func newArticlePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AllowAttrs("id").Matching(headingID).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// RenderMarkdown turns the Markdown body of a news item into HTML that is
// safe to embed in the detail page. Source that fails to parse is shown
// escaped.
func RenderMarkdown(source string) template.HTML {
	if source == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := articleMarkdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return EnhanceHTMLContent(string(articlePolicy.SanitizeBytes(buf.Bytes())))
}
