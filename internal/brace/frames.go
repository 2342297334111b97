package brace

import "github.com/arma2d0/uncrustify/internal/chunk"

// savedFrame pairs a suspended frame with the directive that parked it.
type savedFrame struct {
	frm *Frame
	tag chunk.Kind // PP_IF, PP_ELSE or PP_DEFINE
}

// frameRepo holds suspended frames while conditional regions and
// define bodies rewrite the active one.
//
// An #if parks a snapshot of the live frame. The first #else or #elif
// parks the end state of the #if branch above it and restarts from the
// snapshot. At #endif the #if branch state becomes live again, so a
// region without an #else leaves the flow of the surrounding code
// untouched and alternative branches never leak scopes.
type frameRepo struct {
	stack []savedFrame
}

func (r *frameRepo) push(f *Frame, tag chunk.Kind) {
	r.stack = append(r.stack, savedFrame{frm: f, tag: tag})
}

func (r *frameRepo) pop() (*Frame, chunk.Kind, bool) {
	if len(r.stack) == 0 {
		return nil, chunk.NONE, false
	}
	sf := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return sf.frm, sf.tag, true
}

func (r *frameRepo) topTag() (chunk.Kind, bool) {
	if len(r.stack) == 0 {
		return chunk.NONE, false
	}
	return r.stack[len(r.stack)-1].tag, true
}

// find returns the most recent suspended frame with the given tag.
func (r *frameRepo) find(tag chunk.Kind) (*Frame, bool) {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].tag == tag {
			return r.stack[i].frm, true
		}
	}
	return nil, false
}
