package tui

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adtyap26/enchant-planner/internal/catalog"
	"github.com/adtyap26/enchant-planner/internal/planner"
	"github.com/adtyap26/enchant-planner/internal/submit"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Stage defines the current view of the TUI application.
type Stage int

const (
	ChooseItem Stage = iota
	EditPanels
	ShowError // An invariant broke; the program is quitting
)

// Focus is the part of the panel screen receiving keys.
type Focus int

const (
	FocusPanels Focus = iota
	FocusPriorWork
)

// Submitter posts the planner form. *submit.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, form url.Values) (submit.Result, error)
}

type submitDoneMsg struct {
	result submit.Result
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

// itemEntry is one choice in the item picker.
type itemEntry struct {
	id    string
	count int
}

func (i itemEntry) Title() string       { return catalog.Prettify(i.id) }
func (i itemEntry) Description() string { return fmt.Sprintf("%d enchantments", i.count) }
func (i itemEntry) FilterValue() string { return i.id }

// Model holds the state of the planner TUI.
type Model struct {
	stage   Stage
	focus   Focus
	planner *planner.Planner
	client  Submitter
	log     zerolog.Logger

	exportDir string

	items     list.Model
	priorWork textinput.Model
	results   viewport.Model
	spinner   spinner.Model
	help      help.Model
	keys      KeyMap

	// Derived from the planner after every mutation
	board planner.Board

	// Cursor on the panel screen
	panel planner.Panel
	row   int
	level int

	mode        planner.Mode
	submitting  bool
	resultLines []string
	status      string
	statusErr   bool
	err         error
	width       int
	height      int
}

// NewModel creates the initial state of the TUI model.
func NewModel(p *planner.Planner, client Submitter, log zerolog.Logger, exportDir string) Model {
	cat := p.Catalog()
	var entries []list.Item
	for _, it := range cat.Items() {
		entries = append(entries, itemEntry{id: it, count: len(cat.ApplicableTo(it))})
	}
	items := list.New(entries, list.NewDefaultDelegate(), 80, 20)
	items.Title = "1. Choose an item"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = FocusedStyle

	m := Model{
		stage:     ChooseItem,
		planner:   p,
		client:    client,
		log:       log,
		exportDir: exportDir,
		items:     items,
		results:   viewport.New(80, 8),
		spinner:   sp,
		help:      help.New(),
		keys:      DefaultKeyMap,
		mode:      planner.ModeLevels,
		level:     1,
	}
	m.setupPriorWorkInput()
	m.board = p.Recompute()
	return m
}

// Init initializes the TUI model. Required by Bubble Tea.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Err returns the invariant violation that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Board returns the last derived board.
func (m Model) Board() planner.Board {
	return m.board
}
