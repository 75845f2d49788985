package mines

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellStateString(t *testing.T) {
	assert.Equal(t, " ", Hidden.String())
	assert.Equal(t, "*", Mine.String())
	for i := range 9 {
		assert.Equal(t, string(rune('0'+i)), CellState(i).String())
	}
	assert.Equal(t, "!", CellState(42).String())
}

func TestGridRender(t *testing.T) {
	g := Grid{1, Mine, Hidden, 1}
	want := "" +
		"    0   1\n" +
		"-----------\n" +
		"0 | 1 | * |\n" +
		"1 |   | 1 |\n" +
		"-----------\n"
	assert.Equal(t, want, g.Render(2))
}

func TestGridRenderWideLabels(t *testing.T) {
	b, err := NewBoard(12, 0, seeded())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 12+3)

	header, rule := lines[0], lines[1]
	assert.True(t, strings.HasSuffix(header, "11"))
	assert.Equal(t, strings.Repeat("-", len(lines[2])), rule)
	assert.Equal(t, rule, lines[len(lines)-1])
	for _, row := range lines[2 : len(lines)-1] {
		assert.Len(t, row, len(rule))
	}
	assert.True(t, strings.HasPrefix(lines[2], "0  |"))
	assert.True(t, strings.HasPrefix(lines[13], "11 |"))
	// column 11 is padded to its two-digit label
	assert.True(t, strings.HasSuffix(lines[2], "|    |"))
}

func TestGridRenderEmpty(t *testing.T) {
	assert.Empty(t, Grid{}.Render(0))
	assert.Empty(t, Grid{1}.Render(2))
	assert.Empty(t, Grid{}.Render(1<<32))
}
