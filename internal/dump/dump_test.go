package dump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma2d0/uncrustify/internal/brace"
	"github.com/arma2d0/uncrustify/internal/chunk"
	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/lexer"
)

func TestDumpRendersEveryChunk(t *testing.T) {
	d := config.C()
	arena, err := lexer.New(d).Lex("test", "if (x)\n    y();\n")
	require.NoError(t, err, "lexing should not fail")
	_, err = brace.Resolve(arena, config.Default(), d)
	require.NoError(t, err, "resolving should not fail")

	out := String(arena)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, arena.Len()+1, "one header line plus one line per chunk")

	assert.Contains(t, out, "VBRACE_OPEN", "virtual chunks show up like real ones")
	assert.Contains(t, out, "SPAREN_OPEN")
	assert.Contains(t, out, `""`, "zero width text is marked")
	assert.Contains(t, out, `\n`, "newline text is escaped")
}

func TestFlagLetters(t *testing.T) {
	assert.Equal(t, ".........", letters(0))
	assert.Equal(t, "P........", letters(chunk.FlagInPreproc))
	assert.Equal(t, ".SX......", letters(chunk.FlagStmtStart|chunk.FlagExprStart))
	assert.Equal(t, ".......v.", letters(chunk.FlagVirtual))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `""`, escape(""))
	assert.Equal(t, `\n`, escape("\n"))
	assert.Equal(t, `a\tb`, escape("a\tb"))
	assert.Equal(t, "plain", escape("plain"))
}
