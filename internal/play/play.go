package play

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	Prompt          = "Where would you like to dig? Input as row, col: "
	WinMessage      = "Congratulations!! You won..."
	LossMessage     = "Sorry!! Game over. Better luck next time."
	invalidInput    = "Invalid input. Enter two numbers separated by a comma."
	invalidLocation = "Invalid location. Try again."
)

var ErrAborted = errors.New("input ended before the game was decided")

type Outcome int

const (
	Lost Outcome = iota
	Won
)

func (o Outcome) String() string {
	if o == Won {
		return "won"
	}
	return "lost"
}

// Game drives one board over a line-oriented text terminal.
type Game struct {
	board *mines.Board
	in    *bufio.Scanner
	out   io.Writer
	log   logrus.FieldLogger
}

func New(board *mines.Board, in io.Reader, out io.Writer, log logrus.FieldLogger) *Game {
	return &Game{
		board: board,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
	}
}

// Run prompts for cells to dig until the game is won or lost. Malformed and
// out-of-range input is reported and asked again.
func (g *Game) Run() (Outcome, error) {
	for !g.board.Won() {
		fmt.Fprint(g.out, g.board.String())
		fmt.Fprint(g.out, Prompt)

		if !g.in.Scan() {
			fmt.Fprintln(g.out)
			if err := g.in.Err(); err != nil {
				return Lost, fmt.Errorf("unable to read input: %w", err)
			}
			return Lost, ErrAborted
		}

		p, err := mines.ParsePoint(g.in.Text())
		if err != nil {
			g.log.WithError(err).Debug("bad input")
			fmt.Fprintln(g.out, invalidInput)
			continue
		}

		safe, err := g.board.Dig(p.Row, p.Col)
		if errors.Is(err, mines.ErrOutOfRange) {
			g.log.WithError(err).Debug("bad location")
			fmt.Fprintln(g.out, invalidLocation)
			continue
		} else if err != nil {
			return Lost, err
		}

		g.log.WithFields(logrus.Fields{
			"point":    p,
			"safe":     safe,
			"revealed": g.board.Revealed(),
		}).Debug("dig")

		if !safe {
			fmt.Fprintln(g.out, LossMessage)
			g.board.RevealAll()
			fmt.Fprint(g.out, g.board.String())
			return Lost, nil
		}
	}

	fmt.Fprintln(g.out, WinMessage)
	return Won, nil
}
