package config

import (
	"path/filepath"
	"strings"
)

// Dialect is the capability view of one input language, resolved once
// per run. The resolver reads single flags instead of re-deriving
// language membership at each site.
type Dialect struct {
	Name string

	// HasPreprocessor enables '#' directive handling, frame forking
	// and macro-body isolation.
	HasPreprocessor bool

	// CatchTakesParen makes 'catch' a paren-then-brace construct.
	CatchTakesParen bool

	// OptionalCatchParen makes 'catch' an optional-paren construct
	// (the head clause may be omitted entirely).
	OptionalCatchParen bool

	// CatchWhen enables the 'when' filter clause after a catch head.
	CatchWhen bool

	// UsingStatement recognizes 'using (...)' as a statement head
	// rather than a directive.
	UsingStatement bool

	// SynchronizedBlocks recognizes 'synchronized (...)' blocks.
	SynchronizedBlocks bool

	// VersionBlocks recognizes 'version (...)' and 'scope (...)'
	// conditional blocks.
	VersionBlocks bool

	// VirtualSemicolons synthesizes statement terminators at line
	// ends inside virtual braces.
	VirtualSemicolons bool

	// BraceCloseEndsVBrace lets a literal '}' close a pending virtual
	// brace, for dialects where bodies need no ';' first.
	BraceCloseEndsVBrace bool
}

// C is the plain C dialect.
func C() Dialect {
	return Dialect{
		Name:            "c",
		HasPreprocessor: true,
	}
}

// CPP is the C++ dialect.
func CPP() Dialect {
	return Dialect{
		Name:            "cpp",
		HasPreprocessor: true,
		CatchTakesParen: true,
	}
}

// CS is the C# dialect.
func CS() Dialect {
	return Dialect{
		Name:               "cs",
		HasPreprocessor:    true,
		OptionalCatchParen: true,
		CatchWhen:          true,
		UsingStatement:     true,
	}
}

// D is the D dialect.
func D() Dialect {
	return Dialect{
		Name:                 "d",
		OptionalCatchParen:   true,
		SynchronizedBlocks:   true,
		VersionBlocks:        true,
		BraceCloseEndsVBrace: true,
	}
}

// Java is the Java dialect.
func Java() Dialect {
	return Dialect{
		Name:               "java",
		CatchTakesParen:    true,
		SynchronizedBlocks: true,
	}
}

// Pawn is the Pawn dialect.
func Pawn() Dialect {
	return Dialect{
		Name:                 "pawn",
		HasPreprocessor:      true,
		VirtualSemicolons:    true,
		BraceCloseEndsVBrace: true,
	}
}

var dialectsByName = map[string]func() Dialect{
	"c":    C,
	"cpp":  CPP,
	"c++":  CPP,
	"cs":   CS,
	"c#":   CS,
	"d":    D,
	"java": Java,
	"pawn": Pawn,
}

// ByName resolves a dialect from its -l flag spelling.
func ByName(name string) (Dialect, bool) {
	ctor, ok := dialectsByName[strings.ToLower(name)]
	if !ok {
		return Dialect{}, false
	}
	return ctor(), true
}

var dialectsByExt = map[string]func() Dialect{
	".c":    C,
	".h":    C,
	".cpp":  CPP,
	".cc":   CPP,
	".cxx":  CPP,
	".hpp":  CPP,
	".hh":   CPP,
	".hxx":  CPP,
	".cs":   CS,
	".d":    D,
	".di":   D,
	".java": Java,
	".p":    Pawn,
	".pwn":  Pawn,
	".sma":  Pawn,
	".inc":  Pawn,
}

// FromExtension resolves a dialect from a file name.
func FromExtension(path string) (Dialect, bool) {
	ctor, ok := dialectsByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Dialect{}, false
	}
	return ctor(), true
}
