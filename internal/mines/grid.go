package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden CellState = -2
	Mine   CellState = -1
	// 0-8 for a safe cell with given number of mined neighbors
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return " "
	case Mine:
		return "*"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid holds row-major cell states of a square board.
type Grid []CellState

// Render draws the grid with column and row indices, e.g. for size 2:
//
//	    0   1
//	-----------
//	0 | 1 | * |
//	1 |   | 1 |
//	-----------
func (g Grid) Render(size int) string {
	if size <= 0 || len(g)/size < size {
		return ""
	}

	labelWidth := len(strconv.Itoa(size - 1))
	widths := make([]int, size)
	for col := range size {
		widths[col] = len(strconv.Itoa(col))
		for row := range size {
			if w := len(g[row*size+col].String()); w > widths[col] {
				widths[col] = w
			}
		}
	}

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", labelWidth+2))
	for col := range size {
		fmt.Fprintf(&header, " %-*d  ", widths[col], col)
	}

	var rows strings.Builder
	lineLen := 0
	for row := range size {
		var line strings.Builder
		fmt.Fprintf(&line, "%-*d |", labelWidth, row)
		for col := range size {
			fmt.Fprintf(&line, " %-*s |", widths[col], g[row*size+col].String())
		}
		lineLen = line.Len()
		rows.WriteString(line.String())
		rows.WriteByte('\n')
	}

	rule := strings.Repeat("-", lineLen)

	var b strings.Builder
	b.WriteString(strings.TrimRight(header.String(), " "))
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteByte('\n')
	b.WriteString(rows.String())
	b.WriteString(rule)
	b.WriteByte('\n')
	return b.String()
}
