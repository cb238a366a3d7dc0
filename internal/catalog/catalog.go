// Package catalog holds the read-only enchantment catalog: per-enchantment
// metadata (applicable items, maximum level, incompatibilities) and the
// lookups the clustering and planner packages are built on.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	CurseOfBinding   = "curse_of_binding"
	CurseOfVanishing = "curse_of_vanishing"

	// Book can receive any enchantment and is never offered as a target item.
	Book = "book"
)

// Curses are rendered as singleton groups, in this order.
var Curses = []string{CurseOfBinding, CurseOfVanishing}

var (
	ErrNotFound       = errors.New("enchantment not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

//go:embed enchantments.yaml
var embedded []byte

// Definition describes one enchantment. Slices are shared with the catalog
// and must not be modified.
type Definition struct {
	ID           string
	Name         string
	LevelMax     int
	Weight       int
	Items        []string
	Incompatible []string
}

// AppliesTo reports whether the enchantment can be put on item.
func (d Definition) AppliesTo(item string) bool {
	return item == Book || slices.Contains(d.Items, item)
}

// Catalog is an ordered, validated set of definitions.
type Catalog struct {
	defs      []Definition
	index     map[string]int
	neighbors map[string][]string
	names     Names
}

type fileEntry struct {
	ID           string   `yaml:"id"`
	LevelMax     int      `yaml:"level_max"`
	Weight       int      `yaml:"weight"`
	Incompatible []string `yaml:"incompatible"`
	Items        []string `yaml:"items"`
}

type fileFormat struct {
	Enchantments []fileEntry      `yaml:"enchantments"`
	Names        map[string]string `yaml:"names"`
}

// Default returns the catalog embedded in the binary.
var Default = sync.OnceValues(func() (*Catalog, error) {
	return Load(bytes.NewReader(embedded))
})

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	defer f.Close()

	cat, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return cat, nil
}

// Load decodes a YAML catalog and validates it.
func Load(r io.Reader) (*Catalog, error) {
	var raw fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidCatalog, err)
	}

	defs := make([]Definition, 0, len(raw.Enchantments))
	for _, e := range raw.Enchantments {
		defs = append(defs, Definition{
			ID:           strings.TrimSpace(e.ID),
			LevelMax:     e.LevelMax,
			Weight:       e.Weight,
			Items:        e.Items,
			Incompatible: e.Incompatible,
		})
	}
	return New(defs, raw.Names)
}

// New builds a catalog from definitions in display order. Labels in
// overrides win over the prettified identifier. Any reference to an
// unknown enchantment is reported instead of skipped.
func New(defs []Definition, overrides map[string]string) (*Catalog, error) {
	c := &Catalog{
		defs:      make([]Definition, 0, len(defs)),
		index:     make(map[string]int, len(defs)),
		neighbors: make(map[string][]string, len(defs)),
	}

	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidCatalog, len(c.defs))
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate enchantment %q", ErrInvalidCatalog, d.ID)
		}
		if d.LevelMax < 1 {
			return nil, fmt.Errorf("%w: %q has max level %d", ErrInvalidCatalog, d.ID, d.LevelMax)
		}
		d.Items = dedupe(d.Items)
		d.Incompatible = dedupe(d.Incompatible)
		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}

	edges := make(map[string]map[string]struct{}, len(c.defs))
	link := func(a, b string) {
		if edges[a] == nil {
			edges[a] = make(map[string]struct{})
		}
		edges[a][b] = struct{}{}
	}
	for _, d := range c.defs {
		for _, other := range d.Incompatible {
			if other == d.ID {
				return nil, fmt.Errorf("%w: %q is incompatible with itself", ErrInvalidCatalog, d.ID)
			}
			if _, ok := c.index[other]; !ok {
				return nil, fmt.Errorf("%w: %q lists incompatible %q: %w", ErrInvalidCatalog, d.ID, other, ErrNotFound)
			}
			link(d.ID, other)
			link(other, d.ID)
		}
	}
	for id, set := range edges {
		list := make([]string, 0, len(set))
		for other := range set {
			list = append(list, other)
		}
		sort.Slice(list, func(i, j int) bool { return c.index[list[i]] < c.index[list[j]] })
		c.neighbors[id] = list
	}

	c.names = make(Names, len(c.defs))
	for _, d := range c.defs {
		c.names[d.ID] = Prettify(d.ID)
	}
	for id, label := range overrides {
		if _, ok := c.index[id]; !ok {
			return nil, fmt.Errorf("%w: name override for %q: %w", ErrInvalidCatalog, id, ErrNotFound)
		}
		c.names[id] = label
	}
	for i := range c.defs {
		c.defs[i].Name = c.names.Label(c.defs[i].ID)
	}
	return c, nil
}

// Lookup returns the definition for id.
func (c *Catalog) Lookup(id string) (Definition, error) {
	i, ok := c.index[id]
	if !ok {
		return Definition{}, fmt.Errorf("lookup %q: %w", id, ErrNotFound)
	}
	return c.defs[i], nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// All returns every definition in catalog order.
func (c *Catalog) All() []Definition {
	return slices.Clone(c.defs)
}

// ApplicableTo returns the definitions usable on item, in catalog order.
func (c *Catalog) ApplicableTo(item string) []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.AppliesTo(item) {
			out = append(out, d)
		}
	}
	return out
}

// Neighbors returns every enchantment incompatible with id in either
// direction, in catalog order.
func (c *Catalog) Neighbors(id string) ([]string, error) {
	if !c.Has(id) {
		return nil, fmt.Errorf("neighbors of %q: %w", id, ErrNotFound)
	}
	return c.neighbors[id], nil
}

// Incompatible reports whether a and b cannot coexist on one item.
func (c *Catalog) Incompatible(a, b string) bool {
	return slices.Contains(c.neighbors[a], b)
}

// Items returns every item identifier some enchantment applies to, sorted,
// without Book.
func (c *Catalog) Items() []string {
	seen := make(map[string]struct{})
	var items []string
	for _, d := range c.defs {
		for _, it := range d.Items {
			if it == Book {
				continue
			}
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			items = append(items, it)
		}
	}
	sort.Strings(items)
	return items
}

// Names returns the display-name table.
func (c *Catalog) Names() Names {
	return c.names
}

// IsCurse reports whether id is rendered outside incompatibility clustering.
func IsCurse(id string) bool {
	return slices.Contains(Curses, id)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
