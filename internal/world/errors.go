package world

import "errors"

// ErrInvalidState reports an operation that needs world membership on an
// actor that currently has none.
var ErrInvalidState = errors.New("actor is not in a world")
