// Package planner is the panel state machine: it owns what is selected in
// the "current" and "desired" panels for one item and derives which level
// buttons can be pressed. Selections are only changed through Toggle,
// SetAllowIncompatible and ChooseItem; everything else is computed from
// them by Recompute. Toggle does not consult button states: callers check
// the Board and only press buttons it reports as Enabled or Selected.
package planner

import (
	"errors"
	"fmt"
	"maps"

	"github.com/adtyap26/enchant-planner/internal/catalog"
	"github.com/adtyap26/enchant-planner/internal/cluster"
)

var (
	ErrLevelOutOfRange = errors.New("level out of range")
	ErrNotOnBoard      = errors.New("enchantment not on board")
	ErrNoItem          = errors.New("no item chosen")
	ErrBadPanel        = errors.New("unknown panel")
)

// Panel identifies one of the two selection panels.
type Panel int

const (
	Current Panel = iota
	Desired
)

// Panels lists both panels in display order.
var Panels = []Panel{Current, Desired}

// Key is the form-field prefix of the panel.
func (p Panel) Key() string {
	if p == Desired {
		return "des"
	}
	return "cur"
}

func (p Panel) String() string {
	switch p {
	case Current:
		return "current"
	case Desired:
		return "desired"
	}
	return fmt.Sprintf("panel(%d)", int(p))
}

func (p Panel) valid() bool {
	return p == Current || p == Desired
}

// Selection maps an enchantment to its chosen level. A missing entry means
// nothing is selected.
type Selection map[string]int

// Level returns the selected level of id, 0 when unselected.
func (s Selection) Level(id string) int {
	return s[id]
}

// Len counts selected enchantments.
func (s Selection) Len() int {
	return len(s)
}

// Planner holds the live selection state for one chosen item.
type Planner struct {
	cat               *catalog.Catalog
	item              string
	groups            []cluster.Group
	rows              []string
	onBoard           map[string]bool
	selections        [2]Selection
	allowIncompatible bool
}

// New returns a planner with no item chosen.
func New(cat *catalog.Catalog) *Planner {
	return &Planner{
		cat:        cat,
		onBoard:    map[string]bool{},
		selections: [2]Selection{{}, {}},
	}
}

// Catalog returns the catalog the planner reads from.
func (p *Planner) Catalog() *catalog.Catalog {
	return p.cat
}

// ChooseItem discards every selection and rebuilds the rows for item.
// An empty item returns the planner to the unchosen state.
func (p *Planner) ChooseItem(item string) error {
	p.selections = [2]Selection{{}, {}}
	p.item = ""
	p.groups = nil
	p.rows = nil
	p.onBoard = map[string]bool{}
	if item == "" {
		return nil
	}

	groups, err := cluster.ForItem(p.cat, item)
	if err != nil {
		return fmt.Errorf("choose item %q: %w", item, err)
	}
	p.item = item
	p.groups = groups
	for _, g := range groups {
		for _, id := range g {
			p.rows = append(p.rows, id)
			p.onBoard[id] = true
		}
	}
	return nil
}

// Item returns the chosen item, "" when none.
func (p *Planner) Item() string {
	return p.item
}

// Chosen reports whether an item is chosen and panels are shown.
func (p *Planner) Chosen() bool {
	return p.item != ""
}

// Rows returns the enchantment identifiers in display order.
func (p *Planner) Rows() []string {
	return p.rows
}

// Toggle selects level for ns in panel, or clears it if it is already
// selected. Selecting in the current panel clears the current selection
// of every enchantment incompatible with ns unless incompatible
// combinations are allowed.
func (p *Planner) Toggle(panel Panel, ns string, level int) error {
	if !panel.valid() {
		return fmt.Errorf("toggle %s: %w", panel, ErrBadPanel)
	}
	def, err := p.cat.Lookup(ns)
	if err != nil {
		return fmt.Errorf("toggle: %w", err)
	}
	if !p.onBoard[ns] {
		return fmt.Errorf("toggle %q on %q: %w", ns, p.item, ErrNotOnBoard)
	}
	if level < 1 || level > def.LevelMax {
		return fmt.Errorf("toggle %q level %d (max %d): %w", ns, level, def.LevelMax, ErrLevelOutOfRange)
	}

	sel := p.selections[panel]
	if sel[ns] == level {
		delete(sel, ns)
		return nil
	}
	sel[ns] = level

	if panel == Current && !p.allowIncompatible {
		neighbors, err := p.cat.Neighbors(ns)
		if err != nil {
			return fmt.Errorf("toggle: %w", err)
		}
		for _, other := range neighbors {
			delete(sel, other)
		}
	}
	return nil
}

// AllowIncompatible reports the override flag.
func (p *Planner) AllowIncompatible() bool {
	return p.allowIncompatible
}

// SetAllowIncompatible sets the override flag. Switching it off clears both
// members of every incompatible pair selected in either panel.
func (p *Planner) SetAllowIncompatible(allow bool) {
	wasAllowed := p.allowIncompatible
	p.allowIncompatible = allow
	if !wasAllowed || allow {
		return
	}

	var selected []string
	for _, id := range p.rows {
		if p.selections[Current][id] > 0 || p.selections[Desired][id] > 0 {
			selected = append(selected, id)
		}
	}
	purge := map[string]bool{}
	for i, a := range selected {
		for _, b := range selected[i+1:] {
			if p.cat.Incompatible(a, b) {
				purge[a] = true
				purge[b] = true
			}
		}
	}
	for id := range purge {
		delete(p.selections[Current], id)
		delete(p.selections[Desired], id)
	}
}

// CanCalculate reports whether something is wanted in the desired panel.
func (p *Planner) CanCalculate() bool {
	return p.selections[Desired].Len() > 0
}

// Current returns a copy of the current-panel selection.
func (p *Planner) Current() Selection {
	return maps.Clone(p.selections[Current])
}

// Desired returns a copy of the desired-panel selection.
func (p *Planner) Desired() Selection {
	return maps.Clone(p.selections[Desired])
}
