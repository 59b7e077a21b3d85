package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/md2pdf-server/internal/assets"
)

// HighlightStyle is the chroma style used for fenced code blocks.
const HighlightStyle = "github"

// Document shell metadata.
const (
	DocumentLang  = "en"
	DocumentTitle = "Markdown Document"
)

// contentMarker is substituted for the body while the shell is rendered once,
// then split out so Wrap is plain concatenation.
const contentMarker = "<!--md2pdf:content-->"

// ErrTemplateRender indicates the document shell could not be built.
var ErrTemplateRender = errors.New("document template rendering failed")

// shellData feeds the document template.
type shellData struct {
	Lang    string
	Title   string
	CSS     template.CSS
	Content template.HTML
}

// Templater wraps HTML fragments in the fixed document shell.
// The shell is rendered once at construction; Wrap is pure and safe for
// concurrent use.
type Templater struct {
	head string
	tail string
}

// NewTemplater builds the document shell from the loader's document template
// and stylesheet, appending the chroma CSS for highlighted code blocks.
func NewTemplater(loader assets.AssetLoader) (*Templater, error) {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	tmplText, err := loader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	css, err := loader.LoadStyle(assets.DocumentStyleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	highlightCSS, err := chromaCSS(HighlightStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	tmpl, err := template.New("document").Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	var buf strings.Builder
	err = tmpl.Execute(&buf, shellData{
		Lang:    DocumentLang,
		Title:   DocumentTitle,
		CSS:     template.CSS(css + "\n" + highlightCSS), // #nosec G203 -- embedded stylesheet
		Content: template.HTML(contentMarker),            // #nosec G203 -- constant marker
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	head, tail, ok := strings.Cut(buf.String(), contentMarker)
	if !ok {
		return nil, fmt.Errorf("%w: template has no {{.Content}} placeholder", ErrTemplateRender)
	}
	return &Templater{head: head, tail: tail}, nil
}

// Wrap returns the complete HTML document for the given fragment.
func (t *Templater) Wrap(fragment string) string {
	var b strings.Builder
	b.Grow(len(t.head) + len(fragment) + len(t.tail))
	b.WriteString(t.head)
	b.WriteString(fragment)
	b.WriteString(t.tail)
	return b.String()
}

// chromaCSS renders the class-based stylesheet for a chroma style.
func chromaCSS(name string) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(name)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
