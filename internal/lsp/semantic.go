package lsp

import (
	"strings"
	"unicode/utf8"

	"github.com/arma2d0/uncrustify/internal/chunk"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens classifies every chunk of the arena. Chunk
// kinds are already the resolved classification, so this is a flat
// walk, not a tree descent.
func collectSemanticTokens(a *chunk.Arena) []SemanticToken {
	var tokens []SemanticToken

	if a == nil {
		return tokens
	}

	for i := a.Head(); i != chunk.None; i = a.Next(i) {
		c := a.At(i)
		tokenType, modifiers, ok := classifyChunk(a, i, c)
		if !ok {
			continue
		}
		tokens = append(tokens, makeToken(c, tokenType, modifiers)...)
	}

	return tokens
}

// classifyChunk maps a chunk kind to a semantic token type. Chunks
// with no highlighting value (operators, punctuation, plain words)
// report ok=false.
func classifyChunk(a *chunk.Arena, i int, c *chunk.Chunk) (string, int, bool) {
	switch c.Kind {
	case chunk.IF, chunk.ELSE, chunk.ELSEIF, chunk.FOR, chunk.WHILE,
		chunk.WHILE_OF_DO, chunk.DO, chunk.SWITCH, chunk.CASE,
		chunk.DEFAULT, chunk.BREAK, chunk.CONTINUE, chunk.RETURN,
		chunk.GOTO, chunk.THROW, chunk.TRY, chunk.CATCH, chunk.FINALLY,
		chunk.WHEN, chunk.USING, chunk.USING_STMT, chunk.SYNCHRONIZED,
		chunk.NAMESPACE, chunk.CONSTEXPR, chunk.ENUM, chunk.UNION,
		chunk.STRUCT, chunk.CLASS, chunk.TYPEDEF, chunk.ATTRIBUTE,
		chunk.VERSION, chunk.SCOPE:
		return "keyword", 0, true

	case chunk.WORD:
		// A word directly heading a function paren reads as a call or
		// definition.
		if next := a.NextNcNnl(i); next != chunk.None && a.At(next).Kind == chunk.FPAREN_OPEN {
			return "function", 0, true
		}
		return "", 0, false

	case chunk.MACRO, chunk.MACRO_FUNC:
		return "macro", 1, true

	case chunk.POUND, chunk.PREPROC, chunk.PP_DEFINE, chunk.PP_IF,
		chunk.PP_ELSE, chunk.PP_ENDIF, chunk.PP_INCLUDE, chunk.PP_PRAGMA,
		chunk.PP_UNDEF, chunk.PP_OTHER:
		return "macro", 0, true

	case chunk.NUMBER:
		return "number", 0, true

	case chunk.STRING, chunk.CHAR:
		return "string", 0, true

	case chunk.COMMENT:
		return "comment", 0, true
	}

	return "", 0, false
}

// makeToken creates a semantic token for one chunk. Virtual chunks
// have no text and produce nothing. Block comments spanning lines
// highlight their first line only, since LSP tokens cannot wrap.
func makeToken(c *chunk.Chunk, tokenType string, declModifier int) []SemanticToken {
	text := c.Text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	if text == "" {
		return nil
	}

	return []SemanticToken{{
		Line:           uint32(c.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(c.Col - 1),    // LSP uses 0-based column numbers
		Length:         uint32(utf8.RuneCountInString(text)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0 // Default to first token type if not found
}
