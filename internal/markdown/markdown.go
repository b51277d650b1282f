// Package markdown turns markdown text into narrative nodes.
package markdown

import (
	"bytes"
	"fmt"

	"capnarrative/internal/xhtml"

	gomarkdown "github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Formatter appends the rendering of markdown text beneath a node.
type Formatter interface {
	Render(x *xhtml.Node, text string) error
}

// FormattingError is returned when markdown cannot be rendered.
type FormattingError struct {
	Text string
	Err  error
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("failed to format markdown: %v", e.Err)
}

func (e *FormattingError) Unwrap() error {
	return e.Err
}

// GoMarkdown renders with github.com/gomarkdown/markdown.
type GoMarkdown struct {
	Extensions parser.Extensions
	Flags      mdhtml.Flags
}

// NewGoMarkdown returns a formatter using the common extensions and flags.
func NewGoMarkdown() *GoMarkdown {
	return &GoMarkdown{
		Extensions: parser.CommonExtensions,
		Flags:      mdhtml.CommonFlags,
	}
}

// Render implements Formatter. Empty text appends nothing.
func (g *GoMarkdown) Render(x *xhtml.Node, text string) (err error) {
	if text == "" {
		return nil
	}

	// gomarkdown panics on some malformed input rather than returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = &FormattingError{Text: text, Err: fmt.Errorf("%v", r)}
		}
	}()

	// parsers are single use
	p := parser.NewWithExtensions(g.Extensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: g.Flags})
	out := gomarkdown.ToHTML([]byte(text), p, renderer)

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(bytes.NewReader(out), root)
	if err != nil {
		return &FormattingError{Text: text, Err: err}
	}
	for _, n := range nodes {
		x.AppendChild(n)
	}
	return nil
}
