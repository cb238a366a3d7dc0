package tui

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/adtyap26/enchant-planner/internal/catalog"
	"github.com/adtyap26/enchant-planner/internal/planner"
	"github.com/adtyap26/enchant-planner/internal/submit"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type fakeSubmitter struct {
	forms  []url.Values
	result submit.Result
	err    error
}

func (f *fakeSubmitter) Submit(_ context.Context, form url.Values) (submit.Result, error) {
	f.forms = append(f.forms, form)
	return f.result, f.err
}

func newTestModel(t *testing.T, sub Submitter) Model {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return NewModel(planner.New(cat), sub, zerolog.Nop(), t.TempDir())
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	right = tea.KeyMsg{Type: tea.KeyRight}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func pickItem(t *testing.T, m Model, item string) Model {
	t.Helper()
	for i, it := range m.items.Items() {
		if it.(itemEntry).id == item {
			m.items.Select(i)
			m, _ = press(t, m, enter)
			if m.stage != EditPanels {
				t.Fatalf("expected panel stage after choosing %s", item)
			}
			return m
		}
	}
	t.Fatalf("item %s not offered", item)
	return m
}

// runCmd executes cmd and any batched commands, returning every message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestChooseItemShowsPanels(t *testing.T) {
	t.Parallel()

	m := pickItem(t, newTestModel(t, &fakeSubmitter{}), "sword")
	if m.board.Item != "sword" || len(m.board.Panels) != 2 {
		t.Fatalf("unexpected board: item=%q panels=%d", m.board.Item, len(m.board.Panels))
	}
	view := m.View()
	for _, want := range []string{"Current Enchantments", "Desired Final Enchantments", "Sharpness", "Sweeping Edge"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view misses %q", want)
		}
	}
}

func TestToggleFromKeys(t *testing.T) {
	t.Parallel()

	m := pickItem(t, newTestModel(t, &fakeSubmitter{}), "sword")
	// Rows: bane_of_arthropods, sharpness, smite, ...
	m, _ = press(t, m, down, right, right, enter)
	if got := m.planner.Current().Level("sharpness"); got != 3 {
		t.Fatalf("expected current sharpness 3, got %d", got)
	}
	smite := m.board.Panel(planner.Current).Rows[2]
	if smite.ID != "smite" || !smite.Disabled {
		t.Fatalf("smite row should be disabled: %+v", smite)
	}

	m, _ = press(t, m, down, enter)
	if m.planner.Current().Level("smite") != 0 {
		t.Fatalf("disabled buttons must not toggle")
	}
	if !strings.Contains(m.status, "not available") {
		t.Fatalf("expected refusal message, got %q", m.status)
	}
}

func TestCalculateNeedsDesired(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	m := pickItem(t, newTestModel(t, sub), "sword")
	m, cmd := press(t, m, runes("c"))
	if cmd != nil || len(sub.forms) != 0 {
		t.Fatalf("calculation must not start without a desired enchantment")
	}
	if !strings.Contains(m.status, "desired") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCalculateShowsFragment(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{result: submit.Result{Kind: submit.Fragment, HTML: "<ol><li>Step 1) Combine</li></ol><p>Total: 5 levels</p>"}}
	m := pickItem(t, newTestModel(t, sub), "sword")
	m, _ = press(t, m, tab, down, right, right, right, right, enter, runes("m"))
	if m.planner.Desired().Level("sharpness") != 5 {
		t.Fatalf("expected desired sharpness 5, got %v", m.planner.Desired())
	}

	m, cmd := press(t, m, runes("c"))
	if !m.submitting {
		t.Fatalf("expected submitting state")
	}
	for _, msg := range runCmd(cmd) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if len(sub.forms) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.forms))
	}
	form := sub.forms[0]
	if form.Get("des-sharpness") != "5" || form.Get("item_type") != "sword" || form.Get("mode") != "prior_work" {
		t.Fatalf("unexpected form: %v", form)
	}
	if form.Get("prior_work") != "0" || form.Get("allow-incompat") != "false" {
		t.Fatalf("unexpected form header: %v", form)
	}
	if m.submitting {
		t.Fatalf("submission should be finished")
	}
	if len(m.resultLines) != 2 || m.resultLines[1] != "Total: 5 levels" {
		t.Fatalf("unexpected result lines: %q", m.resultLines)
	}
	if !strings.Contains(m.View(), "Total: 5 levels") {
		t.Fatalf("result not rendered")
	}
}

func TestCalculateSendsDecodablePayload(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{result: submit.Result{Kind: submit.Fragment, HTML: "<p>ok</p>"}}
	m := pickItem(t, newTestModel(t, sub), "sword")
	// Current sharpness 2, desired sharpness 4, allow incompatible on.
	m, _ = press(t, m, down, right, enter, tab, right, right, enter, runes("a"))
	m, cmd := press(t, m, runes("c"))
	for _, msg := range runCmd(cmd) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if len(sub.forms) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.forms))
	}

	got, err := planner.ParseSubmission(m.planner.Catalog(), sub.forms[0])
	if err != nil {
		t.Fatalf("ParseSubmission: %v", err)
	}
	if got.Item != "sword" || !got.AllowIncompatible || got.Mode != planner.ModeLevels {
		t.Fatalf("unexpected submission: %+v", got)
	}
	if got.Current.Level("sharpness") != 2 || got.Desired.Level("sharpness") != 4 {
		t.Fatalf("unexpected levels: current=%v desired=%v", got.Current, got.Desired)
	}
}

func TestRedirectResetsPlanner(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{result: submit.Result{Kind: submit.Redirect, Location: "http://127.0.0.1:5000/"}}
	m := pickItem(t, newTestModel(t, sub), "sword")
	m, _ = press(t, m, tab, enter)
	m, cmd := press(t, m, runes("c"))
	for _, msg := range runCmd(cmd) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if m.stage != ChooseItem || m.planner.Chosen() {
		t.Fatalf("redirect should reset to item choice")
	}
	if !strings.Contains(m.status, "http://127.0.0.1:5000/") {
		t.Fatalf("redirect target not reported: %q", m.status)
	}
}

func TestPriorWorkValidation(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	m := pickItem(t, newTestModel(t, sub), "sword")
	m, _ = press(t, m, tab, enter)
	m, _ = press(t, m, runes("p"), tea.KeyMsg{Type: tea.KeyBackspace}, runes("4"), runes("5"), enter)
	if m.focus != FocusPanels || !m.statusErr {
		t.Fatalf("expected validation error after leaving the field, status=%q", m.status)
	}
	_, cmd := press(t, m, runes("c"))
	if cmd != nil || len(sub.forms) != 0 {
		t.Fatalf("out of range anvil use count must block submission")
	}
}

func TestAllowIncompatibleKey(t *testing.T) {
	t.Parallel()

	m := pickItem(t, newTestModel(t, &fakeSubmitter{}), "sword")
	m, _ = press(t, m, runes("a"), down, enter, down, enter)
	cur := m.planner.Current()
	if cur.Level("sharpness") != 1 || cur.Level("smite") != 1 {
		t.Fatalf("expected both selections with override on: %v", cur)
	}
	m, _ = press(t, m, runes("a"))
	if m.planner.Current().Len() != 0 {
		t.Fatalf("turning the override off should purge the conflict")
	}
	if m.board.AllowIncompatible {
		t.Fatalf("board should reflect the flag")
	}
}

func TestChangeItemAndExport(t *testing.T) {
	t.Parallel()

	m := pickItem(t, newTestModel(t, &fakeSubmitter{}), "bow")
	_, cmd := press(t, m, runes("e"))
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one export message, got %d", len(msgs))
	}
	next, _ := m.Update(msgs[0])
	m = next.(Model)
	if m.statusErr || !strings.Contains(m.status, "enchant-plan-bow.xlsx") {
		t.Fatalf("unexpected export status %q", m.status)
	}

	m, _ = press(t, m, runes("i"))
	if m.stage != ChooseItem || m.planner.Chosen() {
		t.Fatalf("expected to be back at item choice")
	}
}
