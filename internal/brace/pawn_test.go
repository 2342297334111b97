package brace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma2d0/uncrustify/internal/chunk"
	"github.com/arma2d0/uncrustify/internal/config"
)

func TestPawnVirtualSemicolon(t *testing.T) {
	arena, warns := resolveSource(t, config.Pawn(), config.Default(), "if (x)\n    y\n")
	assert.Empty(t, warns)

	vsemis := chunksOf(arena, chunk.VSEMICOLON)
	require.Len(t, vsemis, 1, "the line end closes the statement")
	assert.True(t, vsemis[0].Flags.Has(chunk.FlagVirtual))
	assert.Empty(t, vsemis[0].Text)
	assert.Equal(t, 1, vsemis[0].Level)

	y := chunkWithText(t, arena, "y")
	assert.True(t, y.Flags.Has(chunk.FlagOwnsVSemi))

	closes := chunksOf(arena, chunk.VBRACE_CLOSE)
	require.Len(t, closes, 1, "the virtual semicolon also ends the virtual brace")
	assert.Equal(t, 0, closes[0].Level)

	eof := firstOf(t, arena, chunk.EOF)
	assert.Equal(t, 0, eof.Level)
}

func TestPawnContinuedLine(t *testing.T) {
	src := `if (a)
    x =
    5
`
	arena, warns := resolveSource(t, config.Pawn(), config.Default(), src)
	assert.Empty(t, warns)

	vsemis := chunksOf(arena, chunk.VSEMICOLON)
	require.Len(t, vsemis, 1, "a trailing operator keeps the statement open")

	five := chunkWithText(t, arena, "5")
	assert.True(t, five.Flags.Has(chunk.FlagOwnsVSemi))
	x := chunkWithText(t, arena, "x")
	assert.False(t, x.Flags.Has(chunk.FlagOwnsVSemi))
}

func TestPawnNestedCascade(t *testing.T) {
	src := `if (a)
    if (b)
        x
`
	arena, warns := resolveSource(t, config.Pawn(), config.Default(), src)
	assert.Empty(t, warns)

	require.Len(t, chunksOf(arena, chunk.VSEMICOLON), 1)

	opens := chunksOf(arena, chunk.VBRACE_OPEN)
	require.Len(t, opens, 2, "each unbraced if opens its own scope")
	assert.Equal(t, chunk.IF, opens[0].Parent)
	assert.Equal(t, chunk.IF, opens[1].Parent)
	assert.Len(t, chunksOf(arena, chunk.VBRACE_CLOSE), 2, "one line end closes both")

	eof := firstOf(t, arena, chunk.EOF)
	assert.Equal(t, 0, eof.Level)
	assert.Equal(t, 0, eof.BraceLevel)
}

func TestPawnBraceCloseEndsStatement(t *testing.T) {
	src := "f() {\n    if (x) y }\n"
	arena, warns := resolveSource(t, config.Pawn(), config.Default(), src)
	assert.Empty(t, warns)

	assert.Empty(t, chunksOf(arena, chunk.VSEMICOLON), "the brace close is terminator enough")

	vcloses := chunksOf(arena, chunk.VBRACE_CLOSE)
	require.Len(t, vcloses, 1)
	assert.Equal(t, chunk.IF, vcloses[0].Parent)
	assert.Equal(t, 1, vcloses[0].Level, "the virtual scope ends inside the function body")

	closeBr := firstOf(t, arena, chunk.BRACE_CLOSE)
	assert.Equal(t, chunk.FUNCTION, closeBr.Parent)
	assert.Equal(t, 0, closeBr.Level)
}

func TestPawnSemicolonStillRespected(t *testing.T) {
	arena, warns := resolveSource(t, config.Pawn(), config.Default(), "if (x)\n    y();\n")
	assert.Empty(t, warns)

	assert.Empty(t, chunksOf(arena, chunk.VSEMICOLON), "an explicit semicolon wins")
	require.Len(t, chunksOf(arena, chunk.VBRACE_CLOSE), 1)
}
