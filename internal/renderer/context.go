package renderer

import (
	"capnarrative/internal/markdown"
)

// RenderingContext carries what renderers share for one rendering run.
type RenderingContext struct {
	// Prefix is prepended to relative profile references to build link targets.
	Prefix string
	// Markdown renders free-text markdown fields.
	Markdown markdown.Formatter
}

// NewRenderingContext returns a context that links profiles under prefix and
// formats markdown with gomarkdown.
func NewRenderingContext(prefix string) *RenderingContext {
	return &RenderingContext{
		Prefix:   prefix,
		Markdown: markdown.NewGoMarkdown(),
	}
}
