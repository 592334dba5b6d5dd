package identity

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TableName returns the table identifier for the block at the given 1-based ordinal.
func TableName(sheet string, ordinal int) string {
	return fmt.Sprintf("%s_Table%d", sheet, ordinal)
}

// RowID returns the row identifier for a 0-based sheet row index.
func RowID(table string, rowIndex int) string {
	return fmt.Sprintf("%s_Row%d", table, rowIndex+1)
}

// CellID returns the cell identifier for a column letter and 0-based row index.
func CellID(table, column string, rowIndex int) string {
	return fmt.Sprintf("%s!%s%d", table, column, rowIndex+1)
}

// QualifyRef places a bare coordinate reference (e.g. "B2") into a table's namespace.
func QualifyRef(table, ref string) string {
	return table + "!" + ref
}

// ColumnLetter converts a 0-based column index into its spreadsheet letters
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColumnLetter(index int) string {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return ""
	}
	return name
}

// ParseAddress splits a cell address into its column letters and 1-based row number.
// Sheet qualifiers ("Sheet1!C3", "'My Sheet'!C3") and absolute markers ("$C$3")
// are ignored.
func ParseAddress(address string) (column string, row int, err error) {
	ref := strings.TrimSpace(address)
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		ref = ref[i+1:]
	}
	ref = strings.ReplaceAll(ref, "$", "")
	if ref == "" {
		return "", 0, fmt.Errorf("empty cell address %q", address)
	}

	column, row, err = excelize.SplitCellName(strings.ToUpper(ref))
	if err != nil {
		return "", 0, fmt.Errorf("invalid cell address %q: %w", address, err)
	}
	return column, row, nil
}

// ColumnIndex converts column letters into a 0-based index ("A" -> 0, "AA" -> 26).
func ColumnIndex(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return -1, fmt.Errorf("invalid column %q: %w", letters, err)
	}
	return n - 1, nil
}
