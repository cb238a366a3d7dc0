package tui

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/adtyap26/enchant-planner/internal/catalog"
	"github.com/adtyap26/enchant-planner/internal/export"
	"github.com/adtyap26/enchant-planner/internal/planner"
	"github.com/adtyap26/enchant-planner/internal/submit"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the TUI model. Required by Bubble Tea.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.items.SetSize(msg.Width, max(msg.Height-4, 5))
		m.help.Width = msg.Width
		m.results.Width = max(msg.Width-4, 20)
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitDoneMsg:
		return m.handleSubmitDone(msg), nil

	case exportDoneMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("export failed")
			m.setError(fmt.Errorf("export failed: %w", msg.err))
		} else {
			m.log.Info().Str("path", msg.path).Msg("plan exported")
			m.setStatus("Plan exported to " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.stage {
		case ChooseItem:
			return m.updateChooseItem(msg)
		case EditPanels:
			if m.focus == FocusPriorWork {
				return m.updatePriorWork(msg)
			}
			return m.updatePanels(msg)
		case ShowError:
			return m, tea.Quit
		}
	}

	// Everything else (cursor blink, list filter ticks) goes to the active widgets.
	if m.stage == ChooseItem {
		m.items, cmd = m.items.Update(msg)
		return m, cmd
	}
	if m.focus == FocusPriorWork {
		m.priorWork, cmd = m.priorWork.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateChooseItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.items.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			entry, ok := m.items.SelectedItem().(itemEntry)
			if !ok {
				return m, nil
			}
			return m.chooseItem(entry.id)
		case "q":
			return m, tea.Quit
		}
	}
	m.items, cmd = m.items.Update(msg)
	return m, cmd
}

func (m Model) chooseItem(item string) (tea.Model, tea.Cmd) {
	if err := m.planner.ChooseItem(item); err != nil {
		return m.fail(err)
	}
	m.log.Info().Str("item", item).Int("rows", len(m.planner.Rows())).Msg("item chosen")
	m.stage = EditPanels
	m.focus = FocusPanels
	m.panel = planner.Current
	m.row = 0
	m.level = 1
	m.resultLines = nil
	m.results.SetContent("")
	m.recompute()
	if len(m.planner.Rows()) == 0 {
		m.setStatus(fmt.Sprintf("No enchantments apply to %s.", catalog.Prettify(item)))
	} else {
		m.setStatus("")
	}
	return m, nil
}

func (m Model) updatePriorWork(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyTab, tea.KeyEsc:
		m.priorWork.Blur()
		m.priorWork.PromptStyle = NoStyle
		m.priorWork.TextStyle = NoStyle
		m.focus = FocusPanels
		if _, err := m.parsePriorWork(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("")
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.priorWork, cmd = m.priorWork.Update(msg)
	return m, cmd
}

func (m Model) updatePanels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.board.Panel(m.panel).Rows

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
		m.clampLevel()

	case key.Matches(msg, m.keys.Down):
		if m.row < len(rows)-1 {
			m.row++
		}
		m.clampLevel()

	case key.Matches(msg, m.keys.Left):
		if m.level > 1 {
			m.level--
		}

	case key.Matches(msg, m.keys.Right):
		if m.row < len(rows) && m.level < len(rows[m.row].Buttons) {
			m.level++
		}

	case key.Matches(msg, m.keys.SwitchPane):
		if m.panel == planner.Current {
			m.panel = planner.Desired
		} else {
			m.panel = planner.Current
		}

	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()

	case key.Matches(msg, m.keys.Allow):
		m.planner.SetAllowIncompatible(!m.planner.AllowIncompatible())
		m.recompute()
		if m.planner.AllowIncompatible() {
			m.setStatus("Incompatible enchantments allowed.")
		} else {
			m.setStatus("Incompatible enchantments forbidden; conflicting selections cleared.")
		}

	case key.Matches(msg, m.keys.Mode):
		m.mode = m.mode.Next()
		m.setStatus("Optimizing for " + modeLabel(m.mode) + ".")

	case key.Matches(msg, m.keys.PriorWork):
		m.focus = FocusPriorWork
		m.priorWork.PromptStyle = FocusedStyle
		m.priorWork.TextStyle = FocusedStyle
		return m, m.priorWork.Focus()

	case key.Matches(msg, m.keys.Calculate):
		return m.calculate()

	case key.Matches(msg, m.keys.Export):
		path := filepath.Join(m.exportDir, export.FileName(m.board.Item))
		return m, exportCmd(path, m.board)

	case key.Matches(msg, m.keys.ChangeItem):
		_ = m.planner.ChooseItem("")
		m.recompute()
		m.stage = ChooseItem
		m.setStatus("")

	case key.Matches(msg, m.keys.ScrollUp):
		m.results.SetYOffset(m.results.YOffset - m.results.Height)

	case key.Matches(msg, m.keys.ScrollDown):
		m.results.SetYOffset(m.results.YOffset + m.results.Height)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// toggle presses the button under the cursor. Disabled buttons are refused
// here; the planner itself only rejects invariant violations.
func (m Model) toggle() (tea.Model, tea.Cmd) {
	rows := m.board.Panel(m.panel).Rows
	if m.row >= len(rows) {
		return m, nil
	}
	row := rows[m.row]
	if row.Button(m.level) == planner.Disabled {
		m.setStatus(fmt.Sprintf("%s %d is not available in the %s panel.", row.Name, m.level, m.panel))
		return m, nil
	}
	if err := m.planner.Toggle(m.panel, row.ID, m.level); err != nil {
		return m.fail(err)
	}
	m.log.Debug().Str("panel", m.panel.String()).Str("enchantment", row.ID).Int("level", m.level).Msg("toggled")
	m.recompute()
	m.setStatus("")
	return m, nil
}

func (m Model) calculate() (tea.Model, tea.Cmd) {
	if !m.board.CanCalculate {
		m.setStatus("Select at least one desired enchantment.")
		return m, nil
	}
	priorWork, err := m.parsePriorWork()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	form, err := m.planner.Payload(priorWork, m.mode)
	if err != nil {
		return m.fail(err)
	}
	sub, err := planner.ParseSubmission(m.planner.Catalog(), form)
	if err != nil {
		return m.fail(fmt.Errorf("payload check: %w", err))
	}
	m.log.Info().
		Str("item", sub.Item).
		Int("current", sub.Current.Len()).
		Int("desired", sub.Desired.Len()).
		Int("prior_work", sub.PriorWork).
		Str("mode", string(sub.Mode)).
		Msg("calculation submitted")
	m.submitting = true
	m.setStatus("Calculating…")
	return m, tea.Batch(m.spinner.Tick, submitCmd(m.client, form))
}

func (m Model) handleSubmitDone(msg submitDoneMsg) Model {
	m.submitting = false
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("calculation failed")
		m.setError(msg.err)
		return m
	}

	switch msg.result.Kind {
	case submit.Redirect:
		// The server sends the user back to a fresh page: start over.
		m.log.Info().Str("location", msg.result.Location).Msg("calculation redirected")
		_ = m.planner.ChooseItem("")
		m.recompute()
		m.stage = ChooseItem
		m.resultLines = nil
		m.results.SetContent("")
		m.setStatus("Server redirected to " + msg.result.Location + "; planner reset.")
	default:
		lines, err := msg.result.Text()
		if err != nil {
			m.setError(err)
			return m
		}
		m.log.Info().Int("lines", len(lines)).Msg("calculation received")
		m.resultLines = lines
		m.results.SetContent(strings.Join(lines, "\n"))
		m.results.GotoTop()
		m.setStatus("Plan received.")
	}
	return m
}

// recompute refreshes the derived board once per mutation.
func (m *Model) recompute() {
	m.board = m.planner.Recompute()
	rows := m.board.Panel(m.panel).Rows
	if m.row >= len(rows) {
		m.row = max(len(rows)-1, 0)
	}
	m.clampLevel()
}

func (m *Model) clampLevel() {
	rows := m.board.Panel(m.panel).Rows
	if m.row >= len(rows) {
		m.level = 1
		return
	}
	if n := len(rows[m.row].Buttons); m.level > n {
		m.level = n
	}
	if m.level < 1 {
		m.level = 1
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// fail records an invariant violation and ends the program.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.log.Error().Err(err).Msg("planner invariant violated")
	m.err = err
	m.stage = ShowError
	return m, tea.Quit
}

func submitCmd(client Submitter, form url.Values) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Submit(context.Background(), form)
		return submitDoneMsg{result: res, err: err}
	}
}

func exportCmd(path string, board planner.Board) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: export.Write(path, board)}
	}
}

func modeLabel(mode planner.Mode) string {
	if mode == planner.ModePriorWork {
		return "lowest prior-work penalty"
	}
	return "fewest levels"
}
