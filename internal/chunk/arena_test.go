package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendLinksSequence(t *testing.T) {
	a := NewArena()
	assert.Equal(t, None, a.Head())
	assert.Equal(t, None, a.Tail())

	first := a.Append(Chunk{Kind: WORD, Text: "x"})
	second := a.Append(Chunk{Kind: SEMICOLON, Text: ";"})
	third := a.Append(Chunk{Kind: EOF})

	assert.Equal(t, first, a.Head())
	assert.Equal(t, third, a.Tail())
	assert.Equal(t, second, a.Next(first))
	assert.Equal(t, second, a.Prev(third))
	assert.Equal(t, None, a.Next(third))
	assert.Equal(t, None, a.Prev(first))
}

func TestInsertAfterSplicesBetweenNeighbors(t *testing.T) {
	a := NewArena()
	open := a.Append(Chunk{Kind: DO, Text: "do"})
	stmt := a.Append(Chunk{Kind: WORD, Text: "x"})

	vb := a.InsertAfter(open, Chunk{Kind: VBRACE_OPEN, Flags: FlagVirtual})

	assert.Equal(t, vb, a.Next(open))
	assert.Equal(t, stmt, a.Next(vb))
	assert.Equal(t, open, a.Prev(vb))
	assert.Equal(t, vb, a.Prev(stmt))
	assert.Equal(t, stmt, a.Tail())
}

func TestInsertAfterNoneBecomesHead(t *testing.T) {
	a := NewArena()
	old := a.Append(Chunk{Kind: WORD, Text: "x"})

	vb := a.InsertAfter(None, Chunk{Kind: VBRACE_OPEN, Flags: FlagVirtual})

	assert.Equal(t, vb, a.Head())
	assert.Equal(t, old, a.Next(vb))
	assert.Equal(t, vb, a.Prev(old))
}

func TestInsertAfterTailMovesTail(t *testing.T) {
	a := NewArena()
	last := a.Append(Chunk{Kind: SEMICOLON, Text: ";"})

	vb := a.InsertAfter(last, Chunk{Kind: VBRACE_CLOSE, Flags: FlagVirtual})

	assert.Equal(t, vb, a.Tail())
	assert.Equal(t, None, a.Next(vb))
}

func TestNavigationSkipsTrivia(t *testing.T) {
	a := NewArena()
	w := a.Append(Chunk{Kind: WORD, Text: "if"})
	a.Append(Chunk{Kind: COMMENT, Text: "/* c */"})
	a.Append(Chunk{Kind: NEWLINE, Text: "\n"})
	p := a.Append(Chunk{Kind: PAREN_OPEN, Text: "("})

	assert.Equal(t, p, a.NextNcNnl(w))
	assert.Equal(t, w, a.PrevNcNnl(p))

	// NextNc stops on the newline, NextNcNnl does not.
	nl := a.Next(a.Next(w))
	assert.Equal(t, nl, a.NextNc(w))
}

func TestPrevNcNnlNppSkipsPreprocText(t *testing.T) {
	a := NewArena()
	closeBrace := a.Append(Chunk{Kind: VBRACE_CLOSE, Parent: DO, Flags: FlagVirtual})
	a.Append(Chunk{Kind: NEWLINE, Text: "\n"})
	a.Append(Chunk{Kind: PREPROC, Text: "#", Flags: FlagInPreproc})
	a.Append(Chunk{Kind: PP_OTHER, Text: "region", Flags: FlagInPreproc})
	a.Append(Chunk{Kind: NEWLINE, Text: "\n"})
	while := a.Append(Chunk{Kind: WHILE, Text: "while"})

	assert.Equal(t, closeBrace, a.PrevNcNnlNpp(while))
	// The plain walk stops inside the directive instead.
	inDirective := a.PrevNcNnl(while)
	require.NotEqual(t, None, inDirective)
	assert.True(t, a.At(inDirective).Flags.Has(FlagInPreproc))
}

func TestClosingBraceMatchesNesting(t *testing.T) {
	a := NewArena()
	outer := a.Append(Chunk{Kind: BRACE_OPEN, Text: "{"})
	a.Append(Chunk{Kind: BRACE_OPEN, Text: "{"})
	a.Append(Chunk{Kind: WORD, Text: "x"})
	a.Append(Chunk{Kind: BRACE_CLOSE, Text: "}"})
	match := a.Append(Chunk{Kind: BRACE_CLOSE, Text: "}"})
	a.Append(Chunk{Kind: EOF})

	assert.Equal(t, match, a.ClosingBrace(outer))
}

func TestClosingBraceUnterminated(t *testing.T) {
	a := NewArena()
	open := a.Append(Chunk{Kind: BRACE_OPEN, Text: "{"})
	a.Append(Chunk{Kind: EOF})

	assert.Equal(t, None, a.ClosingBrace(open))
}
