// Package export writes the planner board to a spreadsheet.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/adtyap26/enchant-planner/internal/planner"
)

const SheetName = "Plan"

var headers = []string{"Group", "Enchantment", "Max level", "Current", "Desired"}

// FileName returns the default workbook name for item.
func FileName(item string) string {
	return fmt.Sprintf("enchant-plan-%s.xlsx", strings.ReplaceAll(item, string(filepath.Separator), "_"))
}

// Write saves board as an .xlsx workbook at path with one row per
// enchantment. Unselected levels are left blank.
func Write(path string, board planner.Board) error {
	if board.Item == "" {
		return planner.ErrNoItem
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetCellValue(SheetName, "A1", "Item"); err != nil {
		return fmt.Errorf("write item: %w", err)
	}
	if err := f.SetCellValue(SheetName, "B1", board.Item); err != nil {
		return fmt.Errorf("write item: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A3", &headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	cur := board.Panel(planner.Current)
	des := board.Panel(planner.Desired)
	for i, row := range cur.Rows {
		values := []any{row.Group + 1, row.Name, len(row.Buttons), blankZero(row.Level), nil}
		if i < len(des.Rows) && des.Rows[i].ID == row.ID {
			values[4] = blankZero(des.Rows[i].Level)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %s: %w", row.ID, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

func blankZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
