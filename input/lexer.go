// Package input parses the task-mapper's whitespace-delimited
// configuration format: an architecture section, a tasks section (a
// static task graph or a Kahn process network), an optimization
// section naming a method and its parameters, and an optional trailing
// run of mapping_list overrides.
package input

import (
	"bufio"
	"io"
	"strconv"

	"github.com/sarchlab/dcsmapper/taskerr"
)

// lexer tokenizes a configuration stream word by word, mirroring the
// original format's fscanf("%s", ...)-based reader: every value, however
// it is spelled, is read as one whitespace-delimited token first and
// converted afterward.
type lexer struct {
	sc *bufio.Scanner
}

func newLexer(r io.Reader) *lexer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	sc.Split(bufio.ScanWords)
	return &lexer{sc: sc}
}

// errf panics with a tagged input-format error; it is recovered by Parse.
func errf(format string, args ...any) {
	panic(taskerr.New(taskerr.InputFormat, format, args...))
}

// word returns the next whitespace-delimited token, or panics if the
// stream is exhausted.
func (l *lexer) word() string {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			errf("reading input: %v", err)
		}
		errf("unexpected end of input")
	}
	return l.sc.Text()
}

// peekWord reads and consumes the next token like word, but reports a
// clean end of input as ok == false instead of panicking. Parse's
// trailing-section loop and parseKPN use it where running out of input
// is a legitimate way for a list to end.
func (l *lexer) peekWord() (string, bool) {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			errf("reading input: %v", err)
		}
		return "", false
	}
	return l.sc.Text(), true
}

func (l *lexer) match(want string) {
	got := l.word()
	if got != want {
		errf("expected %q, got %q", want, got)
	}
}

// matchAlternatives reads one word and returns the index of the
// matching entry in alts, panicking if nothing matches.
func (l *lexer) matchAlternatives(alts ...string) int {
	got := l.word()
	for i, a := range alts {
		if a == got {
			return i
		}
	}
	errf("expected one of %v, got %q", alts, got)
	return -1
}

func (l *lexer) int() int {
	s := l.word()
	n, err := strconv.Atoi(s)
	if err != nil {
		errf("expected an integer, got %q", s)
	}
	return n
}

func (l *lexer) uint() uint {
	s := l.word()
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		errf("expected an unsigned integer, got %q", s)
	}
	return uint(n)
}

func (l *lexer) int64() int64 {
	s := l.word()
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		errf("expected an integer, got %q", s)
	}
	return n
}

func (l *lexer) float64() float64 {
	s := l.word()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		errf("expected a number, got %q", s)
	}
	return f
}
