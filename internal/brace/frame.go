package brace

import "github.com/arma2d0/uncrustify/internal/chunk"

// Entry is one open scope on the paren stack: the chunk that opened
// it, the stage its statement pattern is in, and the parent tag its
// close will receive.
type Entry struct {
	Tok    int // arena index of the opening chunk, or chunk.None
	Kind   chunk.Kind
	Stage  Stage
	Parent chunk.Kind
	Braced bool // opening bumped the brace level, so closing drops it
}

// Frame is the paren stack plus the counters that travel with it.
// Each preprocessor context parses against its own frame.
type Frame struct {
	entries []Entry

	Level      int
	BraceLevel int

	StmtCount   int
	ExprCount   int
	SParenCount int
}

// NewFrame returns a frame holding only the end-of-file sentinel.
func NewFrame() *Frame {
	return &Frame{
		entries: []Entry{{Tok: chunk.None, Kind: chunk.EOF}},
	}
}

func (f *Frame) Len() int { return len(f.entries) }

// Top returns the innermost entry. The sentinel keeps it valid even
// when nothing is open.
func (f *Frame) Top() *Entry { return &f.entries[len(f.entries)-1] }

// Prev returns the entry just below the top.
func (f *Frame) Prev() Entry {
	return f.At(len(f.entries) - 2)
}

// At returns the entry at index i, counting up from the sentinel.
// Out of range reads come back as the sentinel value.
func (f *Frame) At(i int) Entry {
	if i < 0 || i >= len(f.entries) {
		return Entry{Tok: chunk.None, Kind: chunk.EOF}
	}
	return f.entries[i]
}

func (f *Frame) Push(e Entry) {
	f.entries = append(f.entries, e)
}

// Pop removes and returns the top entry. The sentinel never pops.
func (f *Frame) Pop() Entry {
	e := *f.Top()
	if len(f.entries) > 1 {
		f.entries = f.entries[:len(f.entries)-1]
	}
	return e
}

// Clone returns an independent copy for preprocessor forking.
func (f *Frame) Clone() *Frame {
	dup := *f
	dup.entries = append([]Entry(nil), f.entries...)
	return &dup
}
