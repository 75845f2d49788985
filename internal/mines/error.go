package mines

import "errors"

var (
	ErrInvalidDimension = errors.New("invalid grid size")
	ErrInvalidMineCount = errors.New("mine count must be between 0 and the number of cells")
	ErrOutOfRange       = errors.New("cell coordinates out of range")
	ErrMalformedInput   = errors.New("input must be two integers separated by a comma")
)
