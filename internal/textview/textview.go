// Package textview prints a CapabilityStatement as styled terminal tables
// with the same columns as the HTML narrative.
package textview

import (
	"fmt"
	"io"
	"strings"

	"capnarrative/internal/model"
	"capnarrative/internal/renderer"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Options tune terminal output.
type Options struct {
	// Prefix is prepended to profile references, as in the HTML narrative.
	Prefix string
	// Width bounds free-text cells; 0 disables truncation.
	Width int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	markerStyle = cellStyle.Foreground(lipgloss.Color("10"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render writes the statement to w.
func Render(w io.Writer, cs *model.CapabilityStatement, opts Options) error {
	if err := renderer.CheckRenderable(cs); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(cs.Name))
	b.WriteString("\n")
	if desc := strings.TrimSpace(cs.Description); desc != "" {
		b.WriteString(truncate(desc, opts.Width))
		b.WriteString("\n")
	}

	if len(cs.Rest) > 0 {
		rest := cs.Rest[0]

		summary := newTable().Rows(
			[]string{"Mode", rest.Mode.String()},
			[]string{"Description", truncate(rest.Documentation, opts.Width/2)},
			[]string{"Transaction", renderer.ShowSystemOp(rest, model.SystemTransaction)},
			[]string{"System History", renderer.ShowSystemOp(rest, model.SystemHistorySystem)},
			[]string{"System Search", renderer.ShowSystemOp(rest, model.SystemSearchSystem)},
		)
		b.WriteString(summary.String())
		b.WriteString("\n")

		b.WriteString(resourceTable(rest, opts).String())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func resourceTable(rest model.Rest, opts Options) *table.Table {
	columns := renderer.SelectColumns(rest)

	headers := []string{"Resource Type", "Profile"}
	for _, c := range columns {
		headers = append(headers, c.Header)
	}

	rows := make([][]string, 0, len(rest.Resource))
	for _, res := range rest.Resource {
		profile := ""
		if res.HasProfile() {
			profile = opts.Prefix + res.Profile
		}
		row := []string{res.Type, truncate(profile, opts.Width/3)}
		for _, c := range columns {
			row = append(row, renderer.ShowOp(res, c.Interaction))
		}
		rows = append(rows, row)
	}

	return newTable().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2 && row >= 0 && row < len(rows) && rows[row][col] == renderer.PresenceMarker:
				return markerStyle
			default:
				return cellStyle
			}
		})
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Summary is the one-line description used by 'capnarrative describe'.
func Summary(cs *model.CapabilityStatement) string {
	resources := 0
	if len(cs.Rest) > 0 {
		resources = len(cs.Rest[0].Resource)
	}
	return fmt.Sprintf("%s %s", titleStyle.Render(cs.Present()),
		lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("(%d resource types)", resources)))
}
