package export

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
)

// RenderHTML converts the Markdown rendering of rep into a standalone page.
// Column names and cell values come from the input file, so raw HTML in the
// Markdown source is dropped and links are limited to safe protocols.
// Smartypants is left off because it writes the page title unescaped.
func RenderHTML(rep *analysis.Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(RenderMarkdown(rep)))
	r := html.NewRenderer(html.RendererOptions{
		Title: "Analysis Report: " + rep.Metadata.FileName,
		Flags: html.SkipHTML | html.Safelink | html.CompletePage,
	})
	return markdown.Render(doc, r)
}
