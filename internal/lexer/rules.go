package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// braceLexer splits C-family source into raw tokens. Classification
// into chunk kinds happens afterwards; here order matters: comments
// before operators, line continuations before newlines, numbers before
// the member-access '.', and a catch-all so no input can fail to lex.
var braceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments (an unterminated block comment runs to EOF)
		{Name: "BlockComment", Pattern: `/\*[\s\S]*?\*/|/\*[\s\S]*`},
		{Name: "LineComment", Pattern: `//[^\n]*`},

		// Backslash-newline keeps a preprocessor directive alive
		{Name: "Continuation", Pattern: `\\\r?\n`},

		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t\f]+`},

		// Literals
		{Name: "String", Pattern: `"(\\[\s\S]|[^"\\\n])*"`},
		{Name: "Char", Pattern: `'(\\[\s\S]|[^'\\\n])*'`},
		{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+[uUlL]*|(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?[fFuUlL]*`},

		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

		// Operators (longest first)
		{Name: "Operator", Pattern: `<<=|>>=|\.\.\.|->|\+\+|--|<<|>>|<=|>=|==|!=|&&|\|\||::|[+\-*/%&|^!~=<>]=?|[?:.]`},

		// Punctuation (must come after operators)
		{Name: "Punct", Pattern: `[{}()\[\];,#@]`},

		// Anything else becomes an ignored chunk
		{Name: "Any", Pattern: `.`},
	},
})

// Token types resolved once so classification can switch on them.
var (
	tBlockComment = braceLexer.Symbols()["BlockComment"]
	tLineComment  = braceLexer.Symbols()["LineComment"]
	tContinuation = braceLexer.Symbols()["Continuation"]
	tNewline      = braceLexer.Symbols()["Newline"]
	tWhitespace   = braceLexer.Symbols()["Whitespace"]
	tString       = braceLexer.Symbols()["String"]
	tChar         = braceLexer.Symbols()["Char"]
	tNumber       = braceLexer.Symbols()["Number"]
	tIdent        = braceLexer.Symbols()["Ident"]
	tOperator     = braceLexer.Symbols()["Operator"]
	tPunct        = braceLexer.Symbols()["Punct"]
)
