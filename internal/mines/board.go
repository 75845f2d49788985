package mines

import (
	"fmt"
	"hash/maphash"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Point struct {
	Row int `json:"row" schema:"row,required"`
	Col int `json:"col" schema:"col,required"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Board is a square minefield. It is not safe for concurrent use.
type Board struct {
	size      int
	mineCount int
	mines     []bool /* real mine points */
	counts    []int8 /* mined neighbors of each safe cell */
	revealed  []bool
	nrevealed int
	exploded  bool
	exposed   bool /* display-only reveal of the whole board */
}

// Validate checks board parameters without building a board.
func Validate(size, mineCount int) error {
	if size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDimension, size)
	}
	if size > math.MaxInt/size {
		return fmt.Errorf("%w: %d x %d cells overflow int", ErrInvalidDimension, size, size)
	}
	if mineCount < 0 || mineCount > size*size {
		return fmt.Errorf("%w: got %d for %d cells", ErrInvalidMineCount, mineCount, size*size)
	}
	return nil
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewBoard places mineCount mines on a size x size grid. A nil r falls back
// to a freshly seeded source.
func NewBoard(size, mineCount int, r *rand.Rand) (*Board, error) {
	if err := Validate(size, mineCount); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand()
	}

	n := size * size
	b := &Board{
		size:      size,
		mineCount: mineCount,
		mines:     make([]bool, n),
		counts:    make([]int8, n),
		revealed:  make([]bool, n),
	}

	b.placeMines(r)
	b.countNeighbors()

	Log.WithFields(logrus.Fields{
		"size":      size,
		"mineCount": mineCount,
	}).Debug("board created")

	return b, nil
}

/*
Partial Fisher-Yates: pick mineCount cells off the candidate list, moving the
last live candidate into each picked slot. Linear in the number of cells
however dense the board is.
*/
func (b *Board) placeMines(r *rand.Rand) {
	candidates := make([]int, len(b.mines))
	for i := range candidates {
		candidates[i] = i
	}
	k := len(candidates)
	for range b.mineCount {
		i := r.IntN(k)
		b.mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}
}

func (b *Board) countNeighbors() {
	for i := range b.mines {
		if b.mines[i] {
			continue
		}
		var c int8
		b.neighbors(i, func(j int) {
			if b.mines[j] {
				c++
			}
		})
		b.counts[i] = c
	}
}

// neighbors calls f for every in-bounds cell around i, i excluded.
func (b *Board) neighbors(i int, f func(j int)) {
	row, col := i/b.size, i%b.size
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r >= 0 && r < b.size && c >= 0 && c < b.size {
				f(r*b.size + c)
			}
		}
	}
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Dig reveals the cell at row, col. It reports false when the cell is a mine.
// Digging a cell with no mined neighbors keeps revealing the surrounding
// cells until every edge of the opened region has a non-zero count.
func (b *Board) Dig(row, col int) (bool, error) {
	if !b.InBounds(row, col) {
		return false, fmt.Errorf("%w: %d,%d on a %dx%d board",
			ErrOutOfRange, row, col, b.size, b.size)
	}

	start := row*b.size + col
	if b.revealed[start] {
		return !b.mines[start], nil
	}
	b.reveal(start)

	if b.mines[start] {
		b.exploded = true
		Log.WithField("point", Point{row, col}).Debug("mine hit")
		return false, nil
	}

	opened := 1
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.counts[i] != 0 {
			continue
		}
		b.neighbors(i, func(j int) {
			if !b.revealed[j] {
				b.reveal(j)
				opened++
				stack = append(stack, j)
			}
		})
	}

	Log.WithFields(logrus.Fields{
		"point":  Point{row, col},
		"opened": opened,
	}).Debug("dug")

	return true, nil
}

func (b *Board) reveal(i int) {
	b.revealed[i] = true
	b.nrevealed++
}

// RevealAll makes every cell visible to State and Grid. The revealed set,
// and with it Revealed and Won, is left untouched.
func (b *Board) RevealAll() {
	b.exposed = true
}

func (b *Board) State(row, col int) CellState {
	if !b.InBounds(row, col) {
		return Hidden
	}
	return b.state(row*b.size + col)
}

func (b *Board) state(i int) CellState {
	switch {
	case !b.revealed[i] && !b.exposed:
		return Hidden
	case b.mines[i]:
		return Mine
	default:
		return CellState(b.counts[i])
	}
}

func (b *Board) Grid() Grid {
	g := make(Grid, len(b.mines))
	for i := range g {
		g[i] = b.state(i)
	}
	return g
}

func (b *Board) String() string {
	return b.Grid().Render(b.size)
}

func (b *Board) Size() int      { return b.size }
func (b *Board) MineCount() int { return b.mineCount }
func (b *Board) Revealed() int  { return b.nrevealed }
func (b *Board) SafeCells() int { return b.size*b.size - b.mineCount }
func (b *Board) Exploded() bool { return b.exploded }
func (b *Board) Exposed() bool  { return b.exposed }

func (b *Board) Won() bool {
	return !b.exploded && b.nrevealed == b.SafeCells()
}
