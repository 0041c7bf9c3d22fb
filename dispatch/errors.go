package dispatch

import "errors"

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrOutOfRange       = errors.New("coordinate out of range")
)
