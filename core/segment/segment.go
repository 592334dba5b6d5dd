// Package segment partitions the rows of one sheet into logical tables.
//
// A sheet often stacks several tables vertically. The segmenter walks the rows
// once, top to bottom: every row that qualifies as a header closes the current
// block and opens a new one, and every other row is attached to the open block
// as a data row. Boundaries are final once set; rows above the first header are
// dropped.
package segment

import (
	"math"
	"strconv"
	"strings"

	"sheet-graph/core/sheet"
)

// prefixLen is how many leading characters of a cell are inspected by the header rule.
const prefixLen = 3

// Block is one header row plus the data rows that follow it.
type Block struct {
	HeaderRow int   `json:"header_row"`
	DataRows  []int `json:"data_rows"`
}

// Contains reports whether rowIndex is one of the block's data rows.
func (b Block) Contains(rowIndex int) bool {
	for _, r := range b.DataRows {
		if r == rowIndex {
			return true
		}
	}
	return false
}

// Split partitions rows into blocks. A sheet without any header row yields no blocks.
func Split(rows []sheet.Row) []Block {
	var (
		blocks  []Block
		current *Block
	)

	for i, row := range rows {
		if IsHeaderRow(row) {
			if current != nil {
				blocks = append(blocks, *current)
			}
			current = &Block{HeaderRow: i, DataRows: []int{}}
			continue
		}
		if current != nil {
			// Blank and numeric rows belong to the open block too.
			current.DataRows = append(current.DataRows, i)
		}
	}

	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}

// IsHeaderRow reports whether row has at least one non-empty cell and none of
// its non-empty cells starts with a digit, a numeric literal or a formula marker.
func IsHeaderRow(row sheet.Row) bool {
	hasNonEmpty := false
	for _, cell := range row {
		p := prefix(cell.Text())
		if p == "" {
			continue
		}
		hasNonEmpty = true
		if strings.HasPrefix(p, "=") || startsWithDigit(p) || isNumeric(strings.TrimSpace(p)) {
			return false
		}
	}
	return hasNonEmpty
}

func prefix(value string) string {
	v := []rune(strings.TrimSpace(value))
	if len(v) > prefixLen {
		v = v[:prefixLen]
	}
	return string(v)
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// isNumeric follows number-literal conversion: finite decimals and exponents
// with an optional sign, or 0x/0o/0b integer literals.
func isNumeric(s string) bool {
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			_, err := strconv.ParseUint(s[2:], base, 64)
			return err == nil
		}
	}

	if strings.ContainsAny(s, "_xXpP") {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
