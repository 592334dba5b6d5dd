package segment

import (
	"testing"

	"sheet-graph/core/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_NumericRowNeverOpensHeader(t *testing.T) {
	rows := []sheet.Row{
		sheet.Values("Name", "Age"),
		sheet.Values("Alice", "30"),
		sheet.Values("Bob", "25"),
		sheet.Values("2024", ""),
	}

	blocks := Split(rows)
	require.Len(t, blocks, 1)
	assert.Equal(t, 0, blocks[0].HeaderRow)
	assert.Equal(t, []int{1, 2, 3}, blocks[0].DataRows)
}

func TestSplit_MultipleBlocks(t *testing.T) {
	rows := []sheet.Row{
		sheet.Values("", ""),         // dropped: before first header
		sheet.Values("42", "43"),     // dropped: before first header
		sheet.Values("Product", "Revenue"),
		sheet.Values("Product A", "100"),
		sheet.Values(),               // blank row stays in the block
		sheet.Values("Region", "Owner"),
		sheet.Values("North", "42"),
	}

	blocks := Split(rows)
	require.Len(t, blocks, 2)

	assert.Equal(t, Block{HeaderRow: 2, DataRows: []int{3, 4}}, blocks[0])
	assert.Equal(t, Block{HeaderRow: 5, DataRows: []int{6}}, blocks[1])
}

func TestSplit_NoHeader(t *testing.T) {
	rows := []sheet.Row{
		sheet.Values("1", "2"),
		sheet.Values("=A1", ""),
		sheet.Values(),
	}
	assert.Empty(t, Split(rows))
	assert.Empty(t, Split(nil))
}

func TestSplit_HeaderWithoutData(t *testing.T) {
	blocks := Split([]sheet.Row{sheet.Values("Name")})
	require.Len(t, blocks, 1)
	assert.Equal(t, 0, blocks[0].HeaderRow)
	assert.Empty(t, blocks[0].DataRows)
}

func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		name string
		row  sheet.Row
		want bool
	}{
		{"Text", sheet.Values("Name", "Age"), true},
		{"TextWithBlanks", sheet.Values("", "Name", "", "Age"), true},
		{"Empty", sheet.Values(), false},
		{"AllBlank", sheet.Values("", "  "), false},
		{"DigitsAndFormulas", sheet.Values("12", "", "=SUM(A1:A2)", "3.5"), false},
		{"OneNumericCell", sheet.Values("Name", "30"), false},
		{"FormulaMarker", sheet.Values("Total", "=B2"), false},
		{"LeadingWhitespaceNumber", sheet.Values("  7 apples"), false},
		{"DigitLedText", sheet.Values("1st Quarter"), false},
		{"SignedText", sheet.Values("-ish"), true},
		{"NegativeNumber", sheet.Values("-12"), false},
		{"Exponent", sheet.Values("1e5"), false},
		{"HexLiteral", sheet.Values("0x1F"), false},
		{"NaNLooksLikeText", sheet.Values("Nancy"), true},
		{"InfLooksLikeText", sheet.Values("Info"), true},
		{"DecimalFraction", sheet.Values(".5 kg"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHeaderRow(tt.row))
		})
	}
}

func TestBlockContains(t *testing.T) {
	b := Block{HeaderRow: 0, DataRows: []int{1, 2, 5}}
	assert.True(t, b.Contains(5))
	assert.False(t, b.Contains(0))
	assert.False(t, b.Contains(3))
}
