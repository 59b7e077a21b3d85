package pipeline

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/md2pdf-server/internal/assets"
)

// stubLoader implements assets.AssetLoader with fixed content.
type stubLoader struct {
	template string
	style    string
	err      error
}

func (s *stubLoader) LoadStyle(string) (string, error)    { return s.style, s.err }
func (s *stubLoader) LoadTemplate(string) (string, error) { return s.template, s.err }

func TestTemplater_Wrap_DocumentStructure(t *testing.T) {
	t.Parallel()

	tpl, err := NewTemplater(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("NewTemplater() unexpected error: %v", err)
	}

	doc := tpl.Wrap(`<h1 id="t">Title</h1><p>Body</p>`)

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("html.Parse() unexpected error: %v", err)
	}

	var (
		style, body, h1 *html.Node
		title           string
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Style:
				style = n
			case atom.Body:
				body = n
			case atom.H1:
				h1 = n
			case atom.Title:
				if n.FirstChild != nil {
					title = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if style == nil || style.FirstChild == nil {
		t.Fatal("document has no <style> content")
	}
	css := style.FirstChild.Data
	for _, want := range []string{"h1", "blockquote", "table", "pre code", "img", "hr", ".chroma"} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing %q", want)
		}
	}
	if title != "Markdown Document" {
		t.Errorf("title = %q, want %q", title, "Markdown Document")
	}
	if body == nil || h1 == nil {
		t.Fatal("body or fragment heading missing from document")
	}
	if h1.Parent != body {
		t.Error("fragment heading is not a direct child of <body>")
	}
}

func TestTemplater_Wrap_Deterministic(t *testing.T) {
	t.Parallel()

	tpl, err := NewTemplater(nil)
	if err != nil {
		t.Fatalf("NewTemplater() unexpected error: %v", err)
	}

	fragment := "<p>same</p>"
	if tpl.Wrap(fragment) != tpl.Wrap(fragment) {
		t.Error("Wrap() is not deterministic for identical input")
	}
	if !strings.Contains(tpl.Wrap(fragment), fragment) {
		t.Error("Wrap() dropped the fragment")
	}
	if strings.Contains(tpl.Wrap(fragment), contentMarker) {
		t.Error("Wrap() leaked the content marker")
	}
}

func TestTemplater_Wrap_EmptyFragment(t *testing.T) {
	t.Parallel()

	tpl, err := NewTemplater(nil)
	if err != nil {
		t.Fatalf("NewTemplater() unexpected error: %v", err)
	}

	doc := tpl.Wrap("")
	if !strings.HasPrefix(doc, "<!DOCTYPE html>") || !strings.Contains(doc, "</html>") {
		t.Errorf("Wrap(\"\") did not produce a full document: %q", doc)
	}
}

func TestNewTemplater_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		loader *stubLoader
	}{
		{
			name:   "loader error",
			loader: &stubLoader{err: errors.New("boom")},
		},
		{
			name:   "template without content placeholder",
			loader: &stubLoader{template: "<html><body></body></html>", style: "p{}"},
		},
		{
			name:   "unparsable template",
			loader: &stubLoader{template: "{{.Content", style: "p{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTemplater(tt.loader)
			if !errors.Is(err, ErrTemplateRender) {
				t.Errorf("NewTemplater() error = %v, want ErrTemplateRender", err)
			}
		})
	}
}
