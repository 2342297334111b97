// Package lexer turns C-family source text into a classified chunk
// arena. It resolves keywords per dialect, associates preprocessor
// directives with the tokens they own, and seeds paren kinds so the
// brace resolver only has to reason about structure.
package lexer

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/arma2d0/uncrustify/internal/chunk"
	"github.com/arma2d0/uncrustify/internal/config"
)

// Lexer classifies raw tokens for one dialect. It is stateless across
// calls and safe to reuse for multiple files.
type Lexer struct {
	dialect  config.Dialect
	keywords map[string]chunk.Kind
}

// New builds a lexer for the given dialect.
func New(d config.Dialect) *Lexer {
	return &Lexer{
		dialect:  d,
		keywords: keywordTable(d),
	}
}

// Lex scans source into a chunk arena. The arena always ends with a
// NEWLINE chunk followed by an EOF chunk, even for empty input.
func (l *Lexer) Lex(filename, source string) (*chunk.Arena, error) {
	lex, err := braceLexer.LexString(filename, source)
	if err != nil {
		return nil, err
	}

	run := &lexRun{
		dialect:   l.dialect,
		keywords:  l.keywords,
		arena:     chunk.NewArena(),
		lineStart: true,
		lastSig:   chunk.None,
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			run.finish(tok)
			return run.arena, nil
		}
		run.classify(tok)
	}
}

// lexRun is the per-file classification state.
type lexRun struct {
	dialect  config.Dialect
	keywords map[string]chunk.Kind
	arena    *chunk.Arena

	lineStart     bool // next significant token is the first on its line
	inDirective   bool // between a line-starting '#' and its terminating newline
	wantDirective bool // next significant token names the directive
	wantMacroName bool // next word is the name being defined

	lastSig  int // index of the last significant chunk, or chunk.None
	macroEnd int // column just past the macro name, for MACRO_FUNC detection
}

func (r *lexRun) classify(tok lexer.Token) {
	switch tok.Type {
	case tWhitespace:
		return
	case tContinuation:
		// A spliced line keeps the directive alive and emits nothing.
		return
	case tNewline:
		// The terminating newline of a directive belongs to the code
		// that follows, not to the directive itself.
		r.inDirective = false
		r.wantDirective = false
		r.wantMacroName = false
		r.emit(chunk.NEWLINE, tok)
		r.lineStart = true
		return
	case tBlockComment, tLineComment:
		r.emit(chunk.COMMENT, tok)
		return
	}

	r.significant(tok)
	r.lineStart = false
}

// significant classifies one non-trivia token and appends its chunk.
func (r *lexRun) significant(tok lexer.Token) {
	if r.wantDirective {
		r.wantDirective = false
		kind, ok := directives[tok.Value]
		if !ok {
			kind = chunk.PP_OTHER
		}
		if kind == chunk.PP_DEFINE {
			r.wantMacroName = true
		}
		r.lastSig = r.emit(kind, tok)
		return
	}

	if r.wantMacroName {
		r.wantMacroName = false
		if tok.Type == tIdent {
			r.lastSig = r.emit(chunk.MACRO, tok)
			r.macroEnd = tok.Pos.Column + utf8.RuneCountInString(tok.Value)
			return
		}
	}

	var kind chunk.Kind

	switch tok.Type {
	case tIdent:
		kind = r.identKind(tok.Value)
	case tNumber:
		kind = chunk.NUMBER
	case tString:
		kind = chunk.STRING
	case tChar:
		kind = chunk.CHAR
	case tOperator:
		kind = operators[tok.Value]
	case tPunct:
		kind = r.punctKind(tok)
	default:
		kind = chunk.IGNORED
	}

	r.lastSig = r.emit(kind, tok)
}

func (r *lexRun) identKind(word string) chunk.Kind {
	if kind, ok := r.keywords[word]; ok {
		return kind
	}
	if word == "__attribute__" {
		return chunk.ATTRIBUTE
	}
	return chunk.WORD
}

func (r *lexRun) punctKind(tok lexer.Token) chunk.Kind {
	switch tok.Value {
	case "{":
		return chunk.BRACE_OPEN
	case "}":
		return chunk.BRACE_CLOSE
	case "(":
		return r.openParenKind(tok)
	case ")":
		return chunk.PAREN_CLOSE
	case "[":
		return chunk.SQUARE_OPEN
	case "]":
		return chunk.SQUARE_CLOSE
	case ";":
		return chunk.SEMICOLON
	case ",":
		return chunk.COMMA
	case "#":
		if r.lineStart && !r.inDirective {
			r.inDirective = true
			r.wantDirective = true
			return chunk.PREPROC
		}
		return chunk.POUND
	default:
		return chunk.IGNORED
	}
}

// openParenKind decides what an opening paren starts. A paren glued to
// a freshly defined macro name makes it function-like; a paren after a
// plain word is a call or declaration paren; `using (` in C# opens a
// using statement. Control-flow parens keep the plain kind here and
// are retyped by the resolver.
func (r *lexRun) openParenKind(tok lexer.Token) chunk.Kind {
	if r.lastSig == chunk.None {
		return chunk.PAREN_OPEN
	}
	prev := r.arena.At(r.lastSig)

	switch prev.Kind {
	case chunk.MACRO:
		if tok.Pos.Line == prev.Line && tok.Pos.Column == r.macroEnd {
			prev.Kind = chunk.MACRO_FUNC
			return chunk.FPAREN_OPEN
		}
	case chunk.MACRO_FUNC, chunk.WORD:
		return chunk.FPAREN_OPEN
	case chunk.USING:
		if r.dialect.UsingStatement {
			prev.Kind = chunk.USING_STMT
		}
	}
	return chunk.PAREN_OPEN
}

// emit appends one chunk and returns its arena index.
func (r *lexRun) emit(kind chunk.Kind, tok lexer.Token) int {
	var flags chunk.Flags
	if r.inDirective {
		flags = chunk.FlagInPreproc
	}
	return r.arena.Append(chunk.Chunk{
		Kind:  kind,
		Text:  tok.Value,
		Line:  tok.Pos.Line,
		Col:   tok.Pos.Column,
		Flags: flags,
	})
}

// finish guarantees the trailing NEWLINE and EOF chunks.
func (r *lexRun) finish(tok lexer.Token) {
	tail := r.arena.Tail()
	if tail == chunk.None || r.arena.At(tail).Kind != chunk.NEWLINE {
		r.inDirective = false
		r.emit(chunk.NEWLINE, tok)
	}
	r.arena.Append(chunk.Chunk{
		Kind: chunk.EOF,
		Line: tok.Pos.Line,
		Col:  tok.Pos.Column,
	})
}
