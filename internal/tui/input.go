package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adtyap26/enchant-planner/internal/planner"
	"github.com/charmbracelet/bubbles/textinput"
)

// setupPriorWorkInput configures the anvil use count field.
func (m *Model) setupPriorWorkInput() {
	m.priorWork = textinput.New()
	m.priorWork.Cursor.Style = CursorStyle
	m.priorWork.CharLimit = 2
	m.priorWork.Width = 3
	m.priorWork.Placeholder = "0"
	m.priorWork.Prompt = ""
	m.priorWork.Validate = isNumber
	m.priorWork.SetValue("0")
}

// isNumber is a validation function for textinput, ensuring input is numeric.
func isNumber(s string) error {
	if s == "" {
		return nil // Allow empty while typing
	}
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

// parsePriorWork reads the anvil use count. Empty means zero.
func (m *Model) parsePriorWork() (int, error) {
	raw := strings.TrimSpace(m.priorWork.Value())
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid anvil use count %q: %w", raw, err)
	}
	if n < 0 || n > planner.MaxPriorWork {
		return 0, fmt.Errorf("anvil use count must be between 0 and %d: %w", planner.MaxPriorWork, planner.ErrPriorWork)
	}
	return n, nil
}
