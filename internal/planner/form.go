package planner

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/adtyap26/enchant-planner/internal/catalog"
)

// Form field names understood by the calculation endpoint.
const (
	FieldItem              = "item_type"
	FieldPriorWork         = "prior_work"
	FieldAllowIncompatible = "allow-incompat"
	FieldMode              = "mode"

	MaxPriorWork = 39
)

var (
	ErrPriorWork = errors.New("anvil use count out of range")
	ErrBadMode   = errors.New("unknown optimization mode")
)

// Mode tells the server what the cheapest plan should minimize.
type Mode string

const (
	ModeLevels    Mode = "levels"
	ModePriorWork Mode = "prior_work"
)

// Next cycles between the modes.
func (m Mode) Next() Mode {
	if m == ModePriorWork {
		return ModeLevels
	}
	return ModePriorWork
}

func (m Mode) valid() bool {
	return m == ModeLevels || m == ModePriorWork
}

// FieldName returns the form field carrying the level of ns in panel.
func FieldName(panel Panel, ns string) string {
	return panel.Key() + "-" + ns
}

// Payload encodes the planner state as the submission form. Every row of
// both panels is present; unselected rows carry an empty value.
func (p *Planner) Payload(priorWork int, mode Mode) (url.Values, error) {
	if !p.Chosen() {
		return nil, ErrNoItem
	}
	if priorWork < 0 || priorWork > MaxPriorWork {
		return nil, fmt.Errorf("prior work %d: %w", priorWork, ErrPriorWork)
	}
	if !mode.valid() {
		return nil, fmt.Errorf("mode %q: %w", mode, ErrBadMode)
	}

	vals := url.Values{}
	vals.Set(FieldItem, p.item)
	for _, panel := range Panels {
		sel := p.selections[panel]
		for _, id := range p.rows {
			v := ""
			if lv := sel.Level(id); lv > 0 {
				v = strconv.Itoa(lv)
			}
			vals.Set(FieldName(panel, id), v)
		}
	}
	vals.Set(FieldPriorWork, strconv.Itoa(priorWork))
	vals.Set(FieldAllowIncompatible, strconv.FormatBool(p.allowIncompatible))
	vals.Set(FieldMode, string(mode))
	return vals, nil
}

// Submission is a decoded submission form.
type Submission struct {
	Item              string
	Current           Selection
	Desired           Selection
	PriorWork         int
	AllowIncompatible bool
	Mode              Mode
}

// ParseSubmission decodes a form built by Payload back into selections.
// It is used to check a payload before it leaves the program. Fields for
// enchantments outside the catalog are ignored.
func ParseSubmission(cat *catalog.Catalog, vals url.Values) (Submission, error) {
	sub := Submission{
		Item:    strings.TrimSpace(vals.Get(FieldItem)),
		Current: Selection{},
		Desired: Selection{},
		Mode:    ModeLevels,
	}
	if sub.Item == "" {
		return Submission{}, ErrNoItem
	}

	for _, def := range cat.All() {
		for _, panel := range Panels {
			raw := strings.TrimSpace(vals.Get(FieldName(panel, def.ID)))
			if raw == "" {
				continue
			}
			lv, err := strconv.Atoi(raw)
			if err != nil {
				return Submission{}, fmt.Errorf("field %s: %w", FieldName(panel, def.ID), err)
			}
			if lv > def.LevelMax {
				return Submission{}, fmt.Errorf("field %s level %d (max %d): %w", FieldName(panel, def.ID), lv, def.LevelMax, ErrLevelOutOfRange)
			}
			if lv > 0 {
				if panel == Current {
					sub.Current[def.ID] = lv
				} else {
					sub.Desired[def.ID] = lv
				}
			}
		}
	}

	if raw := strings.TrimSpace(vals.Get(FieldPriorWork)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Submission{}, fmt.Errorf("field %s: %w", FieldPriorWork, err)
		}
		if n < 0 || n > MaxPriorWork {
			return Submission{}, fmt.Errorf("prior work %d: %w", n, ErrPriorWork)
		}
		sub.PriorWork = n
	}

	switch strings.ToLower(strings.TrimSpace(vals.Get(FieldAllowIncompatible))) {
	case "true", "on", "1":
		sub.AllowIncompatible = true
	}

	if raw := strings.TrimSpace(vals.Get(FieldMode)); raw != "" {
		sub.Mode = Mode(raw)
		if !sub.Mode.valid() {
			return Submission{}, fmt.Errorf("mode %q: %w", raw, ErrBadMode)
		}
	}
	return sub, nil
}
