package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCell(t *testing.T) {
	c := NewCell("200", "")
	assert.True(t, c.Populated())
	assert.Equal(t, "200", c.Text())
	assert.Nil(t, c.Formula)

	c = NewCell("", "")
	assert.False(t, c.Populated())
	assert.Equal(t, "", c.Text())

	c = NewCell("300", "=B2 + C2 ")
	assert.Equal(t, "=B2 + C2 ", c.Expression())

	c = NewCell("1", "   ")
	assert.Nil(t, c.Formula)
}

func TestValues(t *testing.T) {
	row := Values("Name", "", "Age")
	assert.Len(t, row, 3)
	assert.True(t, row[0].Populated())
	assert.False(t, row[1].Populated())
	assert.Equal(t, "Age", row[2].Text())
}
