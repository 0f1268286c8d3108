package coach

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/runpro/runpro/internal/markdown"
)

//go:embed prompts/*.md
var promptFS embed.FS

// prompt is one embedded template plus its fixed fallback replies.
type prompt struct {
	tmpl    *template.Template
	empty   string // model returned nothing
	failure string // model call failed
	nodata  string // nothing to send
}

var funcs = template.FuncMap{
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
}

func loadPrompts(md *markdown.Parser) (map[string]*prompt, error) {
	entries, err := promptFS.ReadDir("prompts")
	if err != nil {
		return nil, err
	}

	prompts := make(map[string]*prompt, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		src, err := promptFS.ReadFile(path.Join("prompts", e.Name()))
		if err != nil {
			return nil, err
		}

		meta, body := md.Document(src)
		tmpl, err := template.New(name).Funcs(funcs).Parse(string(body))
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", name, err)
		}

		prompts[name] = &prompt{
			tmpl:    tmpl,
			empty:   metaString(meta, "empty"),
			failure: metaString(meta, "failure"),
			nodata:  metaString(meta, "nodata"),
		}
	}
	return prompts, nil
}

func (p *prompt) render(data any) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func metaString(meta map[string]any, key string) string {
	s, _ := meta[key].(string)
	return s
}
