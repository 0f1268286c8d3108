package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

var fence = []byte("---")

// Parser renders coach replies and reads prompt templates.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Render converts markdown to HTML. Raw HTML in the source is dropped.
func (p *Parser) Render(source string) (string, error) {
	var buf bytes.Buffer
	err := p.md.Convert([]byte(source), &buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Document splits a markdown file into its frontmatter and body.
func (p *Parser) Document(source []byte) (meta map[string]any, body []byte) {
	return p.ExtractFrontmatter(source), stripFrontmatter(source)
}

func (p *Parser) ExtractFrontmatter(source []byte) map[string]any {
	context := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(source), parser.WithContext(context))

	data := frontmatter.Get(context)
	if data == nil {
		return make(map[string]any)
	}

	var meta map[string]any
	err := data.Decode(&meta)
	if err != nil {
		return make(map[string]any)
	}
	return meta
}

// stripFrontmatter drops a leading "---" delimited block.
func stripFrontmatter(source []byte) []byte {
	rest, ok := cutOpeningFence(source)
	if !ok {
		return source
	}
	for len(rest) > 0 {
		line, next, _ := bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			return bytes.TrimLeft(next, "\n")
		}
		rest = next
	}
	return source
}

// cutOpeningFence consumes the first line when it is a fence.
func cutOpeningFence(source []byte) ([]byte, bool) {
	line, rest, found := bytes.Cut(source, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimSpace(line), fence) {
		return nil, false
	}
	return rest, true
}
