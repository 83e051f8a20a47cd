package shell

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/misteriaud/passeri/controller"
	"github.com/misteriaud/passeri/model"
)

const (
	columnWidthID      = 38
	columnWidthState   = 11
	columnWidthAddress = 24
)

// Renderer projects registry lists and outcomes as console text. Styles
// degrade to plain text when out is not a terminal.
type Renderer struct {
	header  lipgloss.Style
	id      lipgloss.Style
	state   lipgloss.Style
	active  lipgloss.Style
	address lipgloss.Style
	faint   lipgloss.Style
	failure lipgloss.Style
}

// Bridges renders one table per kind.
func (r *Renderer) Bridges(w io.Writer, kind model.Kind, bridges []model.Bridge) {
	title := fmt.Sprintf("%vs (%d)", kind, len(bridges))
	fmt.Fprintln(w, r.header.Render(title))
	if len(bridges) == 0 {
		fmt.Fprintln(w, r.faint.Render("  none"))
		return
	}
	for _, bridge := range bridges {
		fmt.Fprintln(w, "  "+r.row(bridge))
	}
}

func (r *Renderer) row(bridge model.Bridge) string {
	state := r.state
	if bridge.IsActive() {
		state = r.active
	}
	return r.id.Render(bridge.ID.String()) +
		state.Render(bridge.State.String()) +
		r.address.Render(bridge.Address) +
		bridge.Label
}

// Draft renders the pending create inputs of kind, if any.
func (r *Renderer) Draft(w io.Writer, kind model.Kind, draft *controller.Draft) {
	if draft == nil || (draft.Address == "" && draft.Label == "") {
		return
	}
	fmt.Fprintln(w, r.faint.Render(fmt.Sprintf("  draft %v: address=%q label=%q", kind, draft.Address, draft.Label)))
}

// Bridge renders a single outcome line such as "created <row>".
func (r *Renderer) Bridge(w io.Writer, verb string, bridge model.Bridge) {
	fmt.Fprintf(w, "%v %v %v\n", r.header.Render(verb), bridge.Kind, r.row(bridge))
}

// Error renders a failed command.
func (r *Renderer) Error(w io.Writer, err error) {
	fmt.Fprintln(w, r.failure.Render("error: "+err.Error()))
}

// NewRenderer creates a renderer whose color profile follows out.
func NewRenderer(out io.Writer) *Renderer {
	renderer := lipgloss.NewRenderer(out)
	return &Renderer{
		header:  renderer.NewStyle().Bold(true),
		id:      renderer.NewStyle().Width(columnWidthID),
		state:   renderer.NewStyle().Width(columnWidthState).Foreground(lipgloss.Color("245")),
		active:  renderer.NewStyle().Width(columnWidthState).Foreground(lipgloss.Color("42")).Bold(true),
		address: renderer.NewStyle().Width(columnWidthAddress),
		faint:   renderer.NewStyle().Faint(true),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
