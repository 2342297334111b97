// Package dump renders an annotated chunk arena as text, one line per
// chunk with its position, kinds, level counters and flags. The CLI
// prints it for -p and tests diff against it.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/arma2d0/uncrustify/internal/chunk"
)

var flagLetters = []struct {
	flag   chunk.Flags
	letter byte
}{
	{chunk.FlagInPreproc, 'P'},
	{chunk.FlagStmtStart, 'S'},
	{chunk.FlagExprStart, 'X'},
	{chunk.FlagInSParen, 's'},
	{chunk.FlagInFor, 'f'},
	{chunk.FlagInNamespace, 'n'},
	{chunk.FlagLongBlock, 'L'},
	{chunk.FlagVirtual, 'v'},
	{chunk.FlagOwnsVSemi, 'o'},
}

const header = "#   idx  line:col   kind             parent           lvl br pp  flags      text"

// Write renders the arena to w.
func Write(w io.Writer, a *chunk.Arena) error {
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for i := a.Head(); i != chunk.None; i = a.Next(i) {
		c := a.At(i)
		_, err := fmt.Fprintf(w, "%6d  %4d:%-4d  %-16s %-16s %3d %2d %2d  %-9s  %s\n",
			i, c.Line, c.Col, c.Kind, c.Parent,
			c.Level, c.BraceLevel, c.PPLevel,
			letters(c.Flags), escape(c.Text))
		if err != nil {
			return err
		}
	}
	return nil
}

// String renders the arena into a string.
func String(a *chunk.Arena) string {
	var b strings.Builder
	Write(&b, a)
	return b.String()
}

// letters spells the set flags out as one letter each, with dots
// keeping the column width stable.
func letters(f chunk.Flags) string {
	out := make([]byte, len(flagLetters))
	for i, fl := range flagLetters {
		out[i] = '.'
		if f.Has(fl.flag) {
			out[i] = fl.letter
		}
	}
	return string(out)
}

// escape makes control characters visible and marks zero width text.
func escape(text string) string {
	if text == "" {
		return `""`
	}
	var b strings.Builder
	for _, r := range text {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
