package parser

import "errors"

var (
	ErrEmptyInput    = errors.New("empty input")
	ErrNotANumber    = errors.New("not a number")
	ErrNegativeValue = errors.New("negative value")
)
