package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePoint reads "row,col" with optional whitespace around either number.
func ParsePoint(s string) (Point, error) {
	rowStr, colStr, found := strings.Cut(strings.TrimSpace(s), ",")
	if !found {
		return Point{}, fmt.Errorf("%w: %q", ErrMalformedInput, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return Point{}, fmt.Errorf("%w: row %q is not an int", ErrMalformedInput, rowStr)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return Point{}, fmt.Errorf("%w: col %q is not an int", ErrMalformedInput, colStr)
	}
	return Point{Row: row, Col: col}, nil
}
