package planner

import "github.com/adtyap26/enchant-planner/internal/catalog"

// ButtonState is how a single level button is rendered.
type ButtonState int

const (
	Enabled ButtonState = iota
	Disabled
	Selected
)

func (s ButtonState) String() string {
	switch s {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	case Selected:
		return "selected"
	}
	return "unknown"
}

// Row is one enchantment line of a panel.
type Row struct {
	ID       string
	Name     string
	Group    int
	Stripe   int
	Level    int  // selected level, 0 when none
	Disabled bool // whole row forbidden by an incompatible selection
	Buttons  []ButtonState
}

// Button returns the state of level (1-based).
func (r Row) Button(level int) ButtonState {
	if level < 1 || level > len(r.Buttons) {
		return Disabled
	}
	return r.Buttons[level-1]
}

// PanelView is the rendered state of one panel.
type PanelView struct {
	Panel Panel
	Rows  []Row
}

// Board is everything a view needs to draw both panels.
type Board struct {
	Item              string
	AllowIncompatible bool
	CanCalculate      bool
	Panels            []PanelView
}

// Panel returns the view of panel.
func (b Board) Panel(p Panel) PanelView {
	for _, v := range b.Panels {
		if v.Panel == p {
			return v
		}
	}
	return PanelView{Panel: p}
}

// Recompute derives the state of every row and button from the selections
// alone. It does not modify the planner.
func (p *Planner) Recompute() Board {
	board := Board{
		Item:              p.item,
		AllowIncompatible: p.allowIncompatible,
		CanCalculate:      p.CanCalculate(),
	}
	if !p.Chosen() {
		return board
	}

	forbidden := map[string]bool{}
	if !p.allowIncompatible {
		for _, sel := range p.selections {
			for id := range sel {
				neighbors, _ := p.cat.Neighbors(id)
				for _, n := range neighbors {
					forbidden[n] = true
				}
			}
		}
	}

	names := p.cat.Names()
	current, desired := p.selections[Current], p.selections[Desired]
	for _, panel := range Panels {
		view := PanelView{Panel: panel}
		sel := p.selections[panel]
		for gi, group := range p.groups {
			for _, id := range group {
				def, _ := p.cat.Lookup(id)
				view.Rows = append(view.Rows, p.row(panel, def, gi, names, sel.Level(id), current.Level(id), desired.Level(id), forbidden[id]))
			}
		}
		board.Panels = append(board.Panels, view)
	}
	return board
}

func (p *Planner) row(panel Panel, def catalog.Definition, group int, names catalog.Names, chosen, have, want int, forbidden bool) Row {
	r := Row{
		ID:       def.ID,
		Name:     names.Label(def.ID),
		Group:    group,
		Stripe:   group % 2,
		Level:    chosen,
		Disabled: forbidden && chosen == 0,
		Buttons:  make([]ButtonState, def.LevelMax),
	}
	for lv := 1; lv <= def.LevelMax; lv++ {
		state := Enabled
		switch {
		case lv == chosen:
			// The active choice can always be taken back.
			state = Selected
		case r.Disabled:
			state = Disabled
		case panel == Desired && lv <= have:
			// An anvil never lowers a level.
			state = Disabled
		case panel == Current && want > 0 && lv >= want:
			state = Disabled
		}
		r.Buttons[lv-1] = state
	}
	return r
}
