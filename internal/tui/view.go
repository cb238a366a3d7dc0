package tui

import (
	"fmt"
	"strings"

	"github.com/adtyap26/enchant-planner/internal/catalog"
	"github.com/adtyap26/enchant-planner/internal/planner"

	"github.com/charmbracelet/lipgloss"
)

var panelTitles = map[planner.Panel]string{
	planner.Current: "2. Current Enchantments",
	planner.Desired: "3. Desired Final Enchantments",
}

// View renders the UI based on the current model state. Required by Bubble Tea.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Anvil Enchantment Planner"))
	b.WriteString("\n\n")

	switch m.stage {
	case ChooseItem:
		b.WriteString(m.items.View())
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(m.renderStatus())
		}

	case EditPanels:
		b.WriteString(m.renderHeader())
		b.WriteString("\n\n")

		var panels []string
		for _, view := range m.board.Panels {
			panels = append(panels, m.renderPanel(view))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
		b.WriteString("\n")

		if m.board.CanCalculate {
			b.WriteString(FocusedStyle.Render("[c] Calculate"))
		} else {
			b.WriteString(BlurredStyle.Render("[c] Calculate (select a desired enchantment first)"))
		}
		if m.submitting {
			b.WriteString(" " + m.spinner.View())
		}
		b.WriteString("\n")

		if len(m.resultLines) > 0 {
			b.WriteString(ResultBoxStyle.Render(m.results.View()))
			b.WriteString("\n")
		}
		if m.status != "" {
			b.WriteString(m.renderStatus())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))

	case ShowError:
		errMsg := "An unexpected error occurred."
		if m.err != nil {
			errMsg = m.err.Error()
		}
		b.WriteString(ErrorStyle.Render("Error: " + errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderHeader() string {
	allow := "off"
	if m.board.AllowIncompatible {
		allow = "on"
	}
	prior := m.priorWork.View()
	if m.focus != FocusPriorWork {
		prior = m.priorWork.Value()
		if prior == "" {
			prior = "0"
		}
	}
	return fmt.Sprintf("Item: %s   Anvil Use Count: %s   Allow incompatible: %s   Optimize for: %s",
		FocusedStyle.Render(catalog.Prettify(m.board.Item)), prior, allow, modeLabel(m.mode))
}

func (m Model) renderPanel(view planner.PanelView) string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render(panelTitles[view.Panel]))
	b.WriteString("\n")

	if len(view.Rows) == 0 {
		b.WriteString(HelpStyle.Render("(no enchantments for this item)"))
	}

	nameWidth := 0
	for _, r := range view.Rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
	}

	active := view.Panel == m.panel && m.focus == FocusPanels
	for i, r := range view.Rows {
		nameStyle := StripeStyles[r.Stripe%len(StripeStyles)]
		if r.Disabled {
			nameStyle = DisabledRowStyle
		}
		marker := "  "
		if active && i == m.row {
			marker = FocusedStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(nameStyle.Render(r.Name))
		b.WriteString(strings.Repeat(" ", nameWidth-lipgloss.Width(r.Name)+1))
		for lv := 1; lv <= len(r.Buttons); lv++ {
			b.WriteString(renderButton(lv, r.Button(lv), active && i == m.row && lv == m.level))
		}
		if i < len(view.Rows)-1 {
			b.WriteString("\n")
		}
	}

	box := PanelBoxStyle
	if active {
		box = ActivePanelBoxStyle
	}
	return box.Render(b.String())
}

func renderButton(level int, state planner.ButtonState, cursor bool) string {
	label := fmt.Sprintf(" %d ", level)
	style := ButtonStyle
	switch state {
	case planner.Selected:
		style = SelectedButtonStyle
	case planner.Disabled:
		style = DisabledButtonStyle
	}
	if cursor {
		label = fmt.Sprintf("[%d]", level)
		style = style.Underline(true)
	}
	return style.Render(label)
}

func (m Model) renderStatus() string {
	if m.statusErr {
		return ErrorStyle.Render("Error: " + m.status)
	}
	return StatusStyle.Render(m.status)
}
