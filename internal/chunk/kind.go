package chunk

import "fmt"

// Kind classifies a chunk. The brace resolver rewrites some kinds in
// place as it learns more context (WHILE becomes WHILE_OF_DO, a plain
// PAREN_OPEN becomes SPAREN_OPEN or FPAREN_OPEN), so a chunk's kind is
// the current best classification, not a fixed lexer fact.
type Kind int

const (
	// Special kinds
	NONE Kind = iota
	EOF
	NEWLINE
	COMMENT
	IGNORED

	// Identifiers + literals
	WORD
	NUMBER
	STRING
	CHAR

	// Preprocessor
	POUND
	PREPROC
	PP_DEFINE
	PP_IF
	PP_ELSE
	PP_ENDIF
	PP_INCLUDE
	PP_PRAGMA
	PP_UNDEF
	PP_OTHER
	MACRO
	MACRO_FUNC

	// Open/close pairs
	PAREN_OPEN
	PAREN_CLOSE
	SPAREN_OPEN
	SPAREN_CLOSE
	FPAREN_OPEN
	FPAREN_CLOSE
	BRACE_OPEN
	BRACE_CLOSE
	VBRACE_OPEN
	VBRACE_CLOSE
	SQUARE_OPEN
	SQUARE_CLOSE
	ANGLE_OPEN
	ANGLE_CLOSE
	MACRO_OPEN
	MACRO_CLOSE

	// Separators
	SEMICOLON
	VSEMICOLON
	COMMA
	COLON
	QUESTION
	MEMBER

	// Operators
	ASSIGN
	ARITH
	SHIFT
	COMPARE
	BOOL
	NOT
	INV
	STAR
	PLUS
	MINUS
	CARET

	// Keywords
	IF
	ELSE
	ELSEIF
	FOR
	WHILE
	WHILE_OF_DO
	DO
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN
	GOTO
	THROW
	TRY
	CATCH
	FINALLY
	WHEN
	USING
	USING_STMT
	SYNCHRONIZED
	NAMESPACE
	CONSTEXPR
	ENUM
	UNION
	STRUCT
	CLASS
	TYPEDEF
	ATTRIBUTE
	VERSION
	SCOPE

	// Resolved by context, never emitted by the lexer
	FUNCTION
)

// String returns a string representation of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

var kindNames = map[Kind]string{
	NONE:    "NONE",
	EOF:     "EOF",
	NEWLINE: "NEWLINE",
	COMMENT: "COMMENT",
	IGNORED: "IGNORED",

	WORD:   "WORD",
	NUMBER: "NUMBER",
	STRING: "STRING",
	CHAR:   "CHAR",

	POUND:      "POUND",
	PREPROC:    "PREPROC",
	PP_DEFINE:  "PP_DEFINE",
	PP_IF:      "PP_IF",
	PP_ELSE:    "PP_ELSE",
	PP_ENDIF:   "PP_ENDIF",
	PP_INCLUDE: "PP_INCLUDE",
	PP_PRAGMA:  "PP_PRAGMA",
	PP_UNDEF:   "PP_UNDEF",
	PP_OTHER:   "PP_OTHER",
	MACRO:      "MACRO",
	MACRO_FUNC: "MACRO_FUNC",

	PAREN_OPEN:   "PAREN_OPEN",
	PAREN_CLOSE:  "PAREN_CLOSE",
	SPAREN_OPEN:  "SPAREN_OPEN",
	SPAREN_CLOSE: "SPAREN_CLOSE",
	FPAREN_OPEN:  "FPAREN_OPEN",
	FPAREN_CLOSE: "FPAREN_CLOSE",
	BRACE_OPEN:   "BRACE_OPEN",
	BRACE_CLOSE:  "BRACE_CLOSE",
	VBRACE_OPEN:  "VBRACE_OPEN",
	VBRACE_CLOSE: "VBRACE_CLOSE",
	SQUARE_OPEN:  "SQUARE_OPEN",
	SQUARE_CLOSE: "SQUARE_CLOSE",
	ANGLE_OPEN:   "ANGLE_OPEN",
	ANGLE_CLOSE:  "ANGLE_CLOSE",
	MACRO_OPEN:   "MACRO_OPEN",
	MACRO_CLOSE:  "MACRO_CLOSE",

	SEMICOLON:  "SEMICOLON",
	VSEMICOLON: "VSEMICOLON",
	COMMA:      "COMMA",
	COLON:      "COLON",
	QUESTION:   "QUESTION",
	MEMBER:     "MEMBER",

	ASSIGN:  "ASSIGN",
	ARITH:   "ARITH",
	SHIFT:   "SHIFT",
	COMPARE: "COMPARE",
	BOOL:    "BOOL",
	NOT:     "NOT",
	INV:     "INV",
	STAR:    "STAR",
	PLUS:    "PLUS",
	MINUS:   "MINUS",
	CARET:   "CARET",

	IF:           "IF",
	ELSE:         "ELSE",
	ELSEIF:       "ELSEIF",
	FOR:          "FOR",
	WHILE:        "WHILE",
	WHILE_OF_DO:  "WHILE_OF_DO",
	DO:           "DO",
	SWITCH:       "SWITCH",
	CASE:         "CASE",
	DEFAULT:      "DEFAULT",
	BREAK:        "BREAK",
	CONTINUE:     "CONTINUE",
	RETURN:       "RETURN",
	GOTO:         "GOTO",
	THROW:        "THROW",
	TRY:          "TRY",
	CATCH:        "CATCH",
	FINALLY:      "FINALLY",
	WHEN:         "WHEN",
	USING:        "USING",
	USING_STMT:   "USING_STMT",
	SYNCHRONIZED: "SYNCHRONIZED",
	NAMESPACE:    "NAMESPACE",
	CONSTEXPR:    "CONSTEXPR",
	ENUM:         "ENUM",
	UNION:        "UNION",
	STRUCT:       "STRUCT",
	CLASS:        "CLASS",
	TYPEDEF:      "TYPEDEF",
	ATTRIBUTE:    "ATTRIBUTE",
	VERSION:      "VERSION",
	SCOPE:        "SCOPE",

	FUNCTION: "FUNCTION",
}

// CloseOf returns the close kind matching an open kind, or NONE when
// the kind does not open anything.
func CloseOf(k Kind) Kind {
	switch k {
	case PAREN_OPEN:
		return PAREN_CLOSE
	case SPAREN_OPEN:
		return SPAREN_CLOSE
	case FPAREN_OPEN:
		return FPAREN_CLOSE
	case BRACE_OPEN:
		return BRACE_CLOSE
	case VBRACE_OPEN:
		return VBRACE_CLOSE
	case SQUARE_OPEN:
		return SQUARE_CLOSE
	case ANGLE_OPEN:
		return ANGLE_CLOSE
	case MACRO_OPEN:
		return MACRO_CLOSE
	default:
		return NONE
	}
}
