package brace

import "github.com/arma2d0/uncrustify/internal/chunk"

// insertVBraceCloseAfter splices a zero width close behind ref,
// stamped with the frame's current levels.
func (r *resolver) insertVBraceCloseAfter(ref int) int {
	rc := r.arena.At(ref)
	c := chunk.Chunk{
		Kind:       chunk.VBRACE_CLOSE,
		Parent:     r.frm.Top().Kind,
		Line:       rc.Line,
		Col:        rc.Col,
		Level:      r.frm.Level,
		BraceLevel: r.frm.BraceLevel,
		PPLevel:    rc.PPLevel,
		Flags:      rc.Flags&chunk.FlagsCopyMask | chunk.FlagVirtual,
	}
	return r.arena.InsertAfter(ref, c)
}

// insertVBraceOpenBefore splices a zero width open in front of the
// chunk at i, hoisting any comments and newlines directly before it
// into the new scope.
func (r *resolver) insertVBraceOpenBefore(i int) int {
	pc := r.arena.At(i)
	inPP := pc.Flags.Has(chunk.FlagInPreproc)

	flags := pc.Flags & chunk.FlagsCopyMask
	ref := r.arena.Prev(i)
	if ref != chunk.None && !r.arena.At(ref).Flags.Has(chunk.FlagInPreproc) {
		flags &^= chunk.FlagInPreproc
	}
	refIsComment := ref != chunk.None && r.arena.At(ref).Kind == chunk.COMMENT

	for ref != chunk.None && r.arena.At(ref).IsCommentOrNewline() {
		rc := r.arena.At(ref)
		rc.Level++
		rc.BraceLevel++
		ref = r.arena.Prev(ref)
	}

	// An unbraced body right after a directive keeps the open outside
	// the directive text.
	if ref != chunk.None && !inPP && r.arena.At(ref).Flags.Has(chunk.FlagInPreproc) {
		ref = r.arena.Next(ref)
		if ref != chunk.None && r.arena.At(ref).Kind == chunk.COMMENT {
			ref = r.arena.NextNc(ref)
		}
	}

	// A body led by a trailing comment opens after the comment, not
	// before it.
	if refIsComment && ref != chunk.None {
		ref = r.arena.Next(ref)
	}

	line, col, pp := pc.Line, pc.Col, pc.PPLevel
	if ref != chunk.None {
		rc := r.arena.At(ref)
		line, col, pp = rc.Line, rc.Col, rc.PPLevel
	}

	c := chunk.Chunk{
		Kind:       chunk.VBRACE_OPEN,
		Parent:     r.frm.Top().Kind,
		Line:       line,
		Col:        col,
		Level:      r.frm.Level,
		BraceLevel: r.frm.BraceLevel,
		PPLevel:    pp,
		Flags:      flags | chunk.FlagVirtual,
	}
	return r.arena.InsertAfter(ref, c)
}

// pawnCheckVSemicolon decides whether the line end at i finishes the
// statement inside the open virtual brace. It returns the chunk the
// driver should process instead, either i itself or a virtual
// semicolon spliced in before it.
func (r *resolver) pawnCheckVSemicolon(i int) int {
	vbOpen := r.frm.Top().Tok

	prev := r.arena.PrevNcNnl(i)
	if prev == chunk.None || prev == vbOpen ||
		r.arena.At(prev).Flags.Has(chunk.FlagInPreproc) {
		return i
	}

	need := 0
	if vbOpen != chunk.None {
		need = r.arena.At(vbOpen).Level + 1
	}
	if r.pawnContinued(prev, need) {
		return i
	}
	return r.pawnAddVSemiAfter(prev)
}

// pawnContinued reports whether the statement is still open after the
// chunk at i, so no terminator belongs at this line end.
func (r *resolver) pawnContinued(i, brLevel int) bool {
	pc := r.arena.At(i)
	if pc.Level > brLevel {
		return true
	}
	if pc.IsSemicolon() {
		return true
	}
	switch pc.Kind {
	case chunk.ARITH, chunk.SHIFT, chunk.CARET, chunk.QUESTION, chunk.BOOL,
		chunk.ASSIGN, chunk.COMMA, chunk.COMPARE, chunk.COLON, chunk.PLUS,
		chunk.MINUS, chunk.STAR,
		chunk.IF, chunk.ELSE, chunk.ELSEIF, chunk.DO, chunk.SWITCH,
		chunk.WHILE, chunk.CASE,
		chunk.BRACE_OPEN, chunk.VBRACE_OPEN, chunk.PAREN_OPEN,
		chunk.SPAREN_OPEN, chunk.FPAREN_OPEN:
		return true
	default:
		return false
	}
}

// pawnAddVSemiAfter splices a virtual semicolon behind the chunk at i
// unless a terminator is already there.
func (r *resolver) pawnAddVSemiAfter(i int) int {
	pc := r.arena.At(i)
	if pc.IsSemicolon() {
		return i
	}
	if n := r.arena.NextNc(i); n != chunk.None && r.arena.At(n).IsSemicolon() {
		return i
	}
	log.Debugf("line %d: virtual semicolon after '%s'", pc.Line, pc.Text)

	c := chunk.Chunk{
		Kind:       chunk.VSEMICOLON,
		Line:       pc.Line,
		Col:        pc.Col,
		Level:      pc.Level,
		BraceLevel: pc.BraceLevel,
		PPLevel:    pc.PPLevel,
		Flags:      pc.Flags&chunk.FlagsCopyMask | chunk.FlagVirtual,
	}
	idx := r.arena.InsertAfter(i, c)
	r.arena.At(i).Flags |= chunk.FlagOwnsVSemi
	return idx
}
