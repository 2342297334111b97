package lexer

import (
	"github.com/arma2d0/uncrustify/internal/chunk"
	"github.com/arma2d0/uncrustify/internal/config"
)

// baseKeywords are the statement keywords shared by every dialect.
var baseKeywords = map[string]chunk.Kind{
	"if":       chunk.IF,
	"else":     chunk.ELSE,
	"for":      chunk.FOR,
	"while":    chunk.WHILE,
	"do":       chunk.DO,
	"switch":   chunk.SWITCH,
	"case":     chunk.CASE,
	"default":  chunk.DEFAULT,
	"break":    chunk.BREAK,
	"continue": chunk.CONTINUE,
	"return":   chunk.RETURN,
	"goto":     chunk.GOTO,
	"enum":     chunk.ENUM,
	"union":    chunk.UNION,
	"struct":   chunk.STRUCT,
	"typedef":  chunk.TYPEDEF,
}

// keywordTable builds the keyword set for one dialect. Capability
// flags drive most of it; the few words that exist in exactly one
// language are keyed on the dialect name.
func keywordTable(d config.Dialect) map[string]chunk.Kind {
	kw := make(map[string]chunk.Kind, len(baseKeywords)+12)

	for word, kind := range baseKeywords {
		kw[word] = kind
	}

	if d.CatchTakesParen || d.OptionalCatchParen {
		kw["try"] = chunk.TRY
		kw["catch"] = chunk.CATCH
		kw["throw"] = chunk.THROW
		if d.Name != "cpp" {
			kw["finally"] = chunk.FINALLY
		}
	}
	if d.CatchWhen {
		kw["when"] = chunk.WHEN
	}
	if d.UsingStatement {
		kw["using"] = chunk.USING
	}
	if d.SynchronizedBlocks {
		kw["synchronized"] = chunk.SYNCHRONIZED
	}
	if d.VersionBlocks {
		kw["version"] = chunk.VERSION
		kw["scope"] = chunk.SCOPE
	}

	switch d.Name {
	case "cpp":
		kw["namespace"] = chunk.NAMESPACE
		kw["using"] = chunk.USING
		kw["class"] = chunk.CLASS
		kw["constexpr"] = chunk.CONSTEXPR
	case "cs":
		kw["namespace"] = chunk.NAMESPACE
		kw["class"] = chunk.CLASS
	case "java", "d":
		kw["class"] = chunk.CLASS
	}
	return kw
}

// directives maps the word after a line-starting '#' to its chunk kind.
var directives = map[string]chunk.Kind{
	"define":  chunk.PP_DEFINE,
	"if":      chunk.PP_IF,
	"ifdef":   chunk.PP_IF,
	"ifndef":  chunk.PP_IF,
	"elif":    chunk.PP_ELSE,
	"else":    chunk.PP_ELSE,
	"endif":   chunk.PP_ENDIF,
	"include": chunk.PP_INCLUDE,
	"import":  chunk.PP_INCLUDE,
	"pragma":  chunk.PP_PRAGMA,
	"undef":   chunk.PP_UNDEF,
}

// operators maps operator text to chunk kinds. '<' and '>' always
// classify as comparisons; template disambiguation is a later pass
// and never affects brace levels.
var operators = map[string]chunk.Kind{
	"=":   chunk.ASSIGN,
	"+=":  chunk.ASSIGN,
	"-=":  chunk.ASSIGN,
	"*=":  chunk.ASSIGN,
	"/=":  chunk.ASSIGN,
	"%=":  chunk.ASSIGN,
	"&=":  chunk.ASSIGN,
	"|=":  chunk.ASSIGN,
	"^=":  chunk.ASSIGN,
	"~=":  chunk.ASSIGN,
	"<<=": chunk.ASSIGN,
	">>=": chunk.ASSIGN,
	"+":   chunk.PLUS,
	"-":   chunk.MINUS,
	"*":   chunk.STAR,
	"/":   chunk.ARITH,
	"%":   chunk.ARITH,
	"&":   chunk.ARITH,
	"|":   chunk.ARITH,
	"++":  chunk.ARITH,
	"--":  chunk.ARITH,
	"^":   chunk.CARET,
	"<<":  chunk.SHIFT,
	">>":  chunk.SHIFT,
	"<":   chunk.COMPARE,
	">":   chunk.COMPARE,
	"<=":  chunk.COMPARE,
	">=":  chunk.COMPARE,
	"==":  chunk.COMPARE,
	"!=":  chunk.COMPARE,
	"&&":  chunk.BOOL,
	"||":  chunk.BOOL,
	"!":   chunk.NOT,
	"~":   chunk.INV,
	"?":   chunk.QUESTION,
	":":   chunk.COLON,
	".":   chunk.MEMBER,
	"->":  chunk.MEMBER,
	"::":  chunk.MEMBER,
	"...": chunk.MEMBER,
}
