package catalog

import "strings"

// Names maps an enchantment identifier to its display label.
type Names map[string]string

// Label returns the label for id, or id itself when none is known.
func (n Names) Label(id string) string {
	if label, ok := n[id]; ok && label != "" {
		return label
	}
	return id
}

// special labels that do not follow from the identifier.
var special = map[string]string{
	"sweeping": "Sweeping Edge",
}

// Prettify turns "bane_of_arthropods" into "Bane of Arthropods".
func Prettify(id string) string {
	if label, ok := special[id]; ok {
		return label
	}
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" || w == "of" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
