package renderer

import (
	"capnarrative/internal/model"
	"capnarrative/internal/xhtml"
)

// CapabilityStatementRenderer renders a CapabilityStatement as a heading, its
// description and two tables: a summary of the first rest entry and one row
// per resource type with a column per interaction.
//
// Only cs.Rest[0] is rendered. Further rest entries are ignored.
type CapabilityStatementRenderer struct {
	context *RenderingContext
}

// NewCapabilityStatementRenderer creates a renderer bound to context.
func NewCapabilityStatementRenderer(context *RenderingContext) *CapabilityStatementRenderer {
	return &CapabilityStatementRenderer{context: context}
}

// Render appends the narrative for cs under x. It reports true once the
// narrative is complete; errors come from missing required fields or from
// the markdown formatter, whose errors are returned unchanged. x is left
// untouched when an error is returned.
func (r *CapabilityStatementRenderer) Render(x *xhtml.Node, cs *model.CapabilityStatement) (bool, error) {
	if err := CheckRenderable(cs); err != nil {
		return false, err
	}

	description := xhtml.NewFragment()
	if err := r.context.Markdown.Render(description, cs.Description); err != nil {
		return false, err
	}

	x.H2().AddText(cs.Name)
	x.AdoptChildren(description)

	if len(cs.Rest) == 0 {
		return true, nil
	}
	rest := cs.Rest[0]

	t := x.Table("")
	addTableRow(t, "Mode", rest.Mode.String())
	addTableRow(t, "Description", rest.Documentation)
	addTableRow(t, "Transaction", ShowSystemOp(rest, model.SystemTransaction))
	addTableRow(t, "System History", ShowSystemOp(rest, model.SystemHistorySystem))
	addTableRow(t, "System Search", ShowSystemOp(rest, model.SystemSearchSystem))

	columns := SelectColumns(rest)

	t = x.Table("")
	tr := t.Tr()
	tr.Th().B().Tx("Resource Type")
	tr.Th().B().Tx("Profile")
	for _, c := range columns {
		tr.Th().B().Attribute("title", c.Tooltip).Tx(c.Header)
	}

	for _, res := range rest.Resource {
		tr = t.Tr()
		tr.Td().AddText(res.Type)
		td := tr.Td()
		if res.HasProfile() {
			td.Ah(r.context.Prefix + res.Profile).AddText(res.Profile)
		}
		for _, c := range columns {
			tr.Td().AddText(ShowOp(res, c.Interaction))
		}
	}

	return true, nil
}

// Describe appends the one-line display text of cs.
func (r *CapabilityStatementRenderer) Describe(x *xhtml.Node, cs *model.CapabilityStatement) {
	x.Tx(r.Display(cs))
}

// Display returns the statement's own display string.
func (r *CapabilityStatementRenderer) Display(cs *model.CapabilityStatement) string {
	return cs.Present()
}

// CheckRenderable reports the first required field Render would need but cs lacks.
func CheckRenderable(cs *model.CapabilityStatement) error {
	if cs == nil {
		return &model.StructuralError{Field: model.ResourceTypeCapabilityStatement}
	}
	return cs.Validate()
}

func addTableRow(t *xhtml.Node, name, value string) {
	tr := t.Tr()
	tr.Td().AddText(name)
	tr.Td().AddText(value)
}
