package chunk

// Arena owns every chunk of one source file and threads them into a
// doubly-linked sequence. Chunks are appended or spliced but never
// removed, so an index handed out once stays valid for the life of the
// arena.
type Arena struct {
	chunks []Chunk
	head   int
	tail   int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{head: None, tail: None}
}

// Len returns the number of chunks, including spliced virtual ones.
func (a *Arena) Len() int {
	return len(a.chunks)
}

// Head returns the index of the first chunk, or None when empty.
func (a *Arena) Head() int {
	return a.head
}

// Tail returns the index of the last chunk, or None when empty.
func (a *Arena) Tail() int {
	return a.tail
}

// At returns the chunk stored at i, or nil for None or out-of-range
// indices.
func (a *Arena) At(i int) *Chunk {
	if i < 0 || i >= len(a.chunks) {
		return nil
	}
	return &a.chunks[i]
}

// Append adds c at the end of the sequence and returns its index.
func (a *Arena) Append(c Chunk) int {
	idx := len(a.chunks)
	c.ParentIdx = None
	c.prev = a.tail
	c.next = None
	a.chunks = append(a.chunks, c)

	if a.tail != None {
		a.chunks[a.tail].next = idx
	} else {
		a.head = idx
	}
	a.tail = idx
	return idx
}

// InsertAfter splices c into the sequence directly after ref and
// returns its index. A ref of None inserts at the head.
func (a *Arena) InsertAfter(ref int, c Chunk) int {
	idx := len(a.chunks)
	c.ParentIdx = None

	var nxt int
	if ref == None {
		nxt = a.head
	} else {
		nxt = a.chunks[ref].next
	}
	c.prev = ref
	c.next = nxt
	a.chunks = append(a.chunks, c)

	if ref != None {
		a.chunks[ref].next = idx
	} else {
		a.head = idx
	}

	if nxt != None {
		a.chunks[nxt].prev = idx
	} else {
		a.tail = idx
	}
	return idx
}

// Next returns the index after i, or None at the end of the sequence.
func (a *Arena) Next(i int) int {
	if i == None {
		return None
	}
	return a.chunks[i].next
}

// Prev returns the index before i, or None at the start of the sequence.
func (a *Arena) Prev(i int) int {
	if i == None {
		return None
	}
	return a.chunks[i].prev
}

// NextNc returns the next non-comment chunk.
func (a *Arena) NextNc(i int) int {
	for i = a.Next(i); i != None; i = a.Next(i) {
		if a.chunks[i].Kind != COMMENT {
			return i
		}
	}
	return None
}

// PrevNc returns the previous non-comment chunk.
func (a *Arena) PrevNc(i int) int {
	for i = a.Prev(i); i != None; i = a.Prev(i) {
		if a.chunks[i].Kind != COMMENT {
			return i
		}
	}
	return None
}

// NextNcNnl returns the next chunk that is neither comment nor newline.
func (a *Arena) NextNcNnl(i int) int {
	for i = a.Next(i); i != None; i = a.Next(i) {
		if !a.chunks[i].IsCommentOrNewline() {
			return i
		}
	}
	return None
}

// PrevNcNnl returns the previous chunk that is neither comment nor
// newline.
func (a *Arena) PrevNcNnl(i int) int {
	for i = a.Prev(i); i != None; i = a.Prev(i) {
		if !a.chunks[i].IsCommentOrNewline() {
			return i
		}
	}
	return None
}

// PrevNcNnlNpp returns the previous chunk that is neither comment,
// newline, nor part of preprocessor text.
func (a *Arena) PrevNcNnlNpp(i int) int {
	for i = a.Prev(i); i != None; i = a.Prev(i) {
		c := &a.chunks[i]
		if !c.IsCommentOrNewline() && c.Flags&FlagInPreproc == 0 {
			return i
		}
	}
	return None
}

// ClosingBrace scans forward from a BRACE_OPEN for the brace that
// closes it, counting raw braces only. Returns None when the file ends
// first.
func (a *Arena) ClosingBrace(open int) int {
	depth := 0
	for i := open; i != None; i = a.Next(i) {
		switch a.chunks[i].Kind {
		case BRACE_OPEN:
			depth++
		case BRACE_CLOSE:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return None
}
