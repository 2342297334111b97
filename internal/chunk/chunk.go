// Package chunk holds the token sequence the brace resolver works on.
// Chunks live in an arena and are addressed by stable integer indices,
// so splicing virtual tokens into the sequence never invalidates a held
// reference.
package chunk

// Flags are per-chunk boolean attributes.
type Flags uint32

const (
	FlagInPreproc Flags = 1 << iota
	FlagStmtStart
	FlagExprStart
	FlagInSParen
	FlagInFor
	FlagInNamespace
	FlagLongBlock
	FlagVirtual
	FlagOwnsVSemi
)

// FlagsCopyMask selects the flags a synthesized chunk inherits from the
// chunk that triggered its insertion.
const FlagsCopyMask = FlagInPreproc | FlagInSParen | FlagInFor | FlagInNamespace

// Has reports whether all bits in f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// None marks the absence of a chunk index.
const None = -1

// Chunk is one token of the sequence. Level, BraceLevel, PPLevel,
// Parent, ParentIdx and Flags start zeroed and are filled in by the
// resolver; everything else comes from the lexer. Virtual chunks
// (VBRACE_OPEN, VBRACE_CLOSE, VSEMICOLON) have empty Text and carry
// FlagVirtual.
type Chunk struct {
	Kind       Kind
	Parent     Kind // kind of the construct that owns this chunk
	ParentIdx  int  // owning chunk for case/default/break, None otherwise
	Text       string
	Line       int // 1-based
	Col        int // 1-based
	Level      int
	BraceLevel int
	PPLevel    int
	Flags      Flags

	next int
	prev int
}

// IsCommentOrNewline reports whether the chunk is trivia the resolver
// skips over.
func (c *Chunk) IsCommentOrNewline() bool {
	return c.Kind == COMMENT || c.Kind == NEWLINE
}

// IsSemicolon reports whether the chunk ends a statement, counting the
// virtual semicolons synthesized for semicolon-less dialects.
func (c *Chunk) IsSemicolon() bool {
	return c.Kind == SEMICOLON || c.Kind == VSEMICOLON
}
