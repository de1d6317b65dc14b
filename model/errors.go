package model

import "github.com/sarchlab/dcsmapper/taskerr"

// errInvariant panics with a labeled invariant-violation error. Every
// error kind in this system is fatal (see taskerr); panicking here, deep
// inside the hot path of the evaluator, avoids threading an error return
// through every recursive helper for a class of bug that should never be
// observed in a correct build.
func errInvariant(format string, args ...any) error {
	panic(taskerr.New(taskerr.Invariant, format, args...))
}
