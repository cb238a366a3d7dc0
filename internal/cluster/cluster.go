// Package cluster groups the enchantments applicable to an item into
// incompatibility groups. Groups only decide display order: members of
// a group are rendered next to each other.
package cluster

import (
	"fmt"
	"sort"

	"github.com/adtyap26/enchant-planner/internal/catalog"
)

// Group is one connected component of the incompatibility graph, members
// in discovery order.
type Group []string

// ForItem clusters every enchantment applicable to item.
func ForItem(cat *catalog.Catalog, item string) ([]Group, error) {
	defs := cat.ApplicableTo(item)
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return Cluster(cat, ids)
}

// Cluster partitions applicable (in catalog order) into groups.
// Curses are left out of the graph and appended as singletons after
// every other group. The result is deterministic for a given input.
func Cluster(cat *catalog.Catalog, applicable []string) ([]Group, error) {
	remaining := make(map[string]bool, len(applicable))
	var order []string
	var curses []string
	for _, id := range applicable {
		if !cat.Has(id) {
			return nil, fmt.Errorf("cluster %q: %w", id, catalog.ErrNotFound)
		}
		if catalog.IsCurse(id) {
			curses = append(curses, id)
			continue
		}
		if !remaining[id] {
			remaining[id] = true
			order = append(order, id)
		}
	}

	var groups []Group
	for _, root := range order {
		if !remaining[root] {
			continue // Already swallowed by an earlier component
		}
		group := Group{root}
		delete(remaining, root)
		// Breadth-first over the symmetrized edges keeps member order stable.
		for i := 0; i < len(group); i++ {
			neighbors, err := cat.Neighbors(group[i])
			if err != nil {
				return nil, fmt.Errorf("cluster %q: %w", group[i], err)
			}
			for _, n := range neighbors {
				if remaining[n] {
					delete(remaining, n)
					group = append(group, n)
				}
			}
		}
		groups = append(groups, group)
	}

	// Larger groups first; equal sizes keep discovery order.
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) > len(groups[j])
	})

	for _, c := range catalog.Curses {
		for _, id := range curses {
			if id == c {
				groups = append(groups, Group{c})
				break
			}
		}
	}
	return groups, nil
}
