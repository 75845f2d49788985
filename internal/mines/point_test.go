package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input string
		want  Point
	}{
		{"3,4", Point{3, 4}},
		{"3, 4", Point{3, 4}},
		{"3,   4", Point{3, 4}},
		{"  0 ,0\n", Point{0, 0}},
		{"-1,12", Point{-1, 12}},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			p, err := ParsePoint(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, p)
		})
	}
}

func TestParsePointMalformed(t *testing.T) {
	for _, input := range []string{"", "abc", "3", "3 4", "3,", ",4", "a,4", "3,b", "3,4,5", "3.5,4"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParsePoint(input)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestMalformedInputLeavesBoardUntouched(t *testing.T) {
	b, err := NewBoard(4, 3, seeded())
	require.NoError(t, err)
	before := b.Grid()

	_, err = ParsePoint("abc")
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Zero(t, b.Revealed())
	assert.Equal(t, before, b.Grid())
}
