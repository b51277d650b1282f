package renderer

import (
	"capnarrative/internal/model"
)

// PresenceMarker is the cell text for a supported interaction.
const PresenceMarker = "y"

// Column is one interaction column of the resource table.
type Column struct {
	Header      string
	Tooltip     string
	Interaction model.TypeRestfulInteraction
	// Optional columns are shown only if some resource type supports the interaction.
	Optional bool
}

// interactionColumns is the fixed column order; Resource Type and Profile precede it.
var interactionColumns = []Column{
	{Header: "Read", Tooltip: "GET a resource (read interaction)", Interaction: model.TypeRead},
	{Header: "V-Read", Tooltip: "GET past versions of resources (vread interaction)", Interaction: model.TypeVRead, Optional: true},
	{Header: "Search", Tooltip: "GET all set of resources of the type (search interaction)", Interaction: model.TypeSearchType},
	{Header: "Update", Tooltip: "PUT a new resource version (update interaction)", Interaction: model.TypeUpdate},
	{Header: "Patch", Tooltip: "PATCH a new resource version (patch interaction)", Interaction: model.TypePatch, Optional: true},
	{Header: "Create", Tooltip: "POST a new resource (create interaction)", Interaction: model.TypeCreate},
	{Header: "Delete", Tooltip: "DELETE a resource (delete interaction)", Interaction: model.TypeDelete, Optional: true},
	{Header: "Updates", Tooltip: "GET changes to a resource (history interaction on instance)", Interaction: model.TypeHistoryInstance, Optional: true},
	{Header: "History", Tooltip: "GET changes for all resources of the type (history interaction on type)", Interaction: model.TypeHistoryType, Optional: true},
}

// SelectColumns returns the interaction columns to render for rest, in order.
// The header and every row must use the same slice so cells stay aligned.
func SelectColumns(rest model.Rest) []Column {
	// one pass over the resources decides every optional column
	present := make(map[model.TypeRestfulInteraction]bool)
	for _, r := range rest.Resource {
		for _, c := range interactionColumns {
			if c.Optional && !present[c.Interaction] && r.HasInteraction(c.Interaction) {
				present[c.Interaction] = true
			}
		}
	}

	columns := make([]Column, 0, len(interactionColumns))
	for _, c := range interactionColumns {
		if !c.Optional || present[c.Interaction] {
			columns = append(columns, c)
		}
	}
	return columns
}

// ShowOp returns the presence marker for a type interaction, or "".
func ShowOp(r model.RestResource, code model.TypeRestfulInteraction) string {
	if r.HasInteraction(code) {
		return PresenceMarker
	}
	return ""
}

// ShowSystemOp returns the presence marker for a system interaction, or "".
func ShowSystemOp(rest model.Rest, code model.SystemRestfulInteraction) string {
	if rest.HasInteraction(code) {
		return PresenceMarker
	}
	return ""
}

// AnyPresent reports whether any of the resources supports code.
func AnyPresent(resources []model.RestResource, code model.TypeRestfulInteraction) bool {
	for _, r := range resources {
		if r.HasInteraction(code) {
			return true
		}
	}
	return false
}
