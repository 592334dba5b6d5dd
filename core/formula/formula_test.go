package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"Deduplicated", "=A1+B2*C3+A1", []string{"A1", "B2", "C3"}},
		{"Range", "=SUM(B2:B10)", []string{"B2", "B10"}},
		{"MultiLetterColumn", "=AA12-AB3", []string{"AA12", "AB3"}},
		{"NoReferences", "=PI()*2", []string{}},
		{"Empty", "", []string{}},
		{"Lowercase", "=a1+b2", []string{}},
		{"Garbage", "=((((", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractReferences(tt.expr))
		})
	}
}

func TestDependencies(t *testing.T) {
	deps := Dependencies("=A1+B2*C3+A1", "Q1_Table1")
	assert.ElementsMatch(t, []string{"Q1_Table1!A1", "Q1_Table1!B2", "Q1_Table1!C3"}, deps)

	assert.Empty(t, Dependencies("=TODAY()", "Q1_Table1"))
}

// Cross-sheet references are still qualified into the current table.
func TestDependencies_CrossSheetApproximation(t *testing.T) {
	deps := Dependencies("=Other!B2", "Q1_Table1")
	assert.Equal(t, []string{"Q1_Table1!B2"}, deps)
}
