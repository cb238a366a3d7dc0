package submit

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "h1, h2, h3, h4, p, li, pre, tr"

// Text flattens the HTML fragment into display lines, one per block
// element. A fragment without block elements yields its collapsed text.
func (r Result) Text() ([]string, error) {
	if r.Kind != Fragment {
		return nil, nil
	}
	return FragmentText(r.HTML)
}

// FragmentText extracts readable lines from an HTML fragment.
func FragmentText(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return // Nested blocks are covered by their outermost parent
		}
		switch goquery.NodeName(s) {
		case "pre":
			for _, l := range strings.Split(s.Text(), "\n") {
				if l = strings.TrimRight(l, " \t\r"); strings.TrimSpace(l) != "" {
					lines = append(lines, l)
				}
			}
		case "tr":
			var cells []string
			s.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, collapse(cell.Text()))
			})
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " | "))
			}
		default:
			if t := collapse(s.Text()); t != "" {
				lines = append(lines, t)
			}
		}
	})

	if len(lines) == 0 {
		if t := collapse(doc.Text()); t != "" {
			lines = append(lines, t)
		}
	}
	return lines, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
