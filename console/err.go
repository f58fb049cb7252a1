package console

import (
	"errors"

	"github.com/ezrec/kasm/translate"
)

var f = translate.From

var (
	ErrNoOutput    = errors.New(f("console has no output"))
	ErrInvalidUtf8 = errors.New(f("console text is not valid utf-8"))
)
