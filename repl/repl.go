// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	goerrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arma2d0/uncrustify/internal/brace"
	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/dump"
	"github.com/arma2d0/uncrustify/internal/errors"
	"github.com/arma2d0/uncrustify/internal/lexer"
)

const PROMPT = ">> "

// Start reads one snippet per line and prints its annotated chunk dump.
// A line starting with ':dialect ' switches the input language, e.g.
// ':dialect pawn'. Returns when the input is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	dialect := config.C()
	opts := config.Default()

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if name, ok := strings.CutPrefix(line, ":dialect "); ok {
			d, found := config.ByName(strings.TrimSpace(name))
			if !found {
				fmt.Fprintf(out, "unknown dialect %q\n", strings.TrimSpace(name))
				continue
			}
			dialect = d
			fmt.Fprintf(out, "dialect set to %s\n", dialect.Name)
			continue
		}

		arena, err := lexer.New(dialect).Lex("repl", line)
		if err != nil {
			fmt.Fprintf(out, "scan error: %v\n", err)
			continue
		}

		warns, err := brace.Resolve(arena, opts, dialect)

		reporter := errors.NewErrorReporter("repl", line)
		fmt.Fprint(out, reporter.FormatAll(warns))
		if err != nil {
			var serr errors.StructuralError
			if goerrors.As(err, &serr) {
				fmt.Fprint(out, reporter.FormatError(serr))
			} else {
				fmt.Fprintf(out, "resolve error: %v\n", err)
			}
			continue
		}

		if err := dump.Write(out, arena); err != nil {
			fmt.Fprintf(out, "dump error: %v\n", err)
		}
	}
}
