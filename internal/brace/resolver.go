// Package brace assigns nesting levels to a chunk arena and closes
// every construct the source leaves implicit. It walks the chunks
// once, tracking open parens, braces and statement patterns on a
// frame stack, inserting virtual braces around unbraced bodies and
// isolating preprocessor regions in forked frames.
package brace

import (
	"github.com/tliron/commonlog"

	"github.com/arma2d0/uncrustify/internal/chunk"
	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/errors"
)

var log = commonlog.GetLogger("ubrace.brace")

// resolver carries the pass state for one arena.
type resolver struct {
	arena *chunk.Arena
	opts  config.Options
	d     config.Dialect

	frm  *Frame
	repo frameRepo

	// inPreproc is the directive kind owning the current region, or
	// NONE between directives.
	inPreproc chunk.Kind
	ppLevel   int

	// consumed marks the current chunk as absorbed by a close or a
	// statement pattern.
	consumed bool

	warnings []errors.StructuralError
}

// Resolve assigns Level, BraceLevel, PPLevel, parent tags and
// statement boundaries to every chunk in the arena, inserting virtual
// braces and semicolons where the source omits them. Tolerated
// imbalances come back as warnings; a structural error aborts the
// pass with the arena in a partially stamped state.
func Resolve(arena *chunk.Arena, opts config.Options, d config.Dialect) ([]errors.StructuralError, error) {
	r := &resolver{
		arena:     arena,
		opts:      opts,
		d:         d,
		frm:       NewFrame(),
		inPreproc: chunk.NONE,
	}

	i := arena.Head()
	for i != chunk.None {
		next, err := r.step(i)
		if err != nil {
			return r.warnings, err
		}
		i = next
	}
	return r.warnings, nil
}

// step processes one chunk and returns the index to visit next.
func (r *resolver) step(i int) (int, error) {
	pc := r.arena.At(i)

	// The first chunk off a directive line ends the region. Leaving a
	// define body also restores the frame suspended at the #define.
	if r.inPreproc != chunk.NONE && !pc.Flags.Has(chunk.FlagInPreproc) {
		if r.inPreproc == chunk.PP_DEFINE {
			r.leaveDefine(pc)
		}
		r.inPreproc = chunk.NONE
	}

	pp := r.ppLevel
	if pc.Kind == chunk.PREPROC {
		pp = r.preprocStart(i)
	}

	// Pawn ends unbraced statements at line ends.
	if r.d.VirtualSemicolons && r.opts.VirtualSemicolons &&
		r.frm.Top().Kind == chunk.VBRACE_OPEN && pc.Kind == chunk.NEWLINE {
		i = r.pawnCheckVSemicolon(i)
		pc = r.arena.At(i)
	}

	if pc.Kind == chunk.NAMESPACE {
		r.markNamespace(i)
	}

	pc.Level = r.frm.Level
	pc.BraceLevel = r.frm.BraceLevel
	pc.PPLevel = pp

	// Define bodies get the full treatment; other directive lines only
	// receive levels.
	if !pc.IsCommentOrNewline() && pc.Kind != chunk.EOF &&
		pc.Kind != chunk.ATTRIBUTE && pc.Kind != chunk.IGNORED &&
		(r.inPreproc == chunk.PP_DEFINE || r.inPreproc == chunk.NONE) {
		r.consumed = false
		if err := r.parseToken(i); err != nil {
			return chunk.None, err
		}
	}
	return r.arena.Next(i), nil
}

// leaveDefine swaps the suspended frame back in when the chunk after a
// define body arrives. A body that opened more braces than it closed
// is reported but never leaks into the surrounding code.
func (r *resolver) leaveDefine(pc *chunk.Chunk) {
	if r.opts.WarnUnbalancedPPIf && r.frm.BraceLevel != 1 {
		w := errors.MacroImbalance(r.frm.BraceLevel, errors.Position{Line: pc.Line, Column: pc.Col})
		r.warnings = append(r.warnings, w)
		log.Warningf("line %d: %s", pc.Line, w.Message)
	}
	if tag, ok := r.repo.topTag(); ok && tag == chunk.PP_DEFINE {
		f, _, _ := r.repo.pop()
		r.frm = f
	}
}

// preprocStart notes which directive owns the upcoming region and
// returns the level to stamp on the '#'. A define body parses against
// a fresh frame; conditionals fork the frame repository.
func (r *resolver) preprocStart(i int) int {
	pp := r.ppLevel

	next := r.arena.NextNcNnl(i)
	if next == chunk.None {
		return pp
	}
	r.inPreproc = r.arena.At(next).Kind

	if r.inPreproc != chunk.PP_DEFINE {
		return r.flCheck(r.arena.At(next))
	}

	r.repo.push(r.frm, chunk.PP_DEFINE)

	f := NewFrame()
	f.Level = 1
	f.BraceLevel = 1
	f.Push(Entry{Tok: chunk.None, Kind: chunk.PP_DEFINE})
	r.frm = f

	return pp
}

// flCheck forks and merges frames at conditional directives. Each
// branch parses against the state the #if saw, and the #if branch
// decides the state after the #endif. Returns the preprocessor level
// to stamp on the directive itself.
func (r *resolver) flCheck(dir *chunk.Chunk) int {
	switch dir.Kind {
	case chunk.PP_IF:
		pp := r.ppLevel
		r.ppLevel++
		r.repo.push(r.frm.Clone(), chunk.PP_IF)
		return pp

	case chunk.PP_ELSE:
		if tag, ok := r.repo.topTag(); ok && tag != chunk.PP_ELSE {
			r.repo.push(r.frm, chunk.PP_ELSE)
		}
		if base, ok := r.repo.find(chunk.PP_IF); ok {
			r.frm = base.Clone()
		} else {
			log.Warningf("line %d: #%s without a matching #if", dir.Line, dir.Text)
		}
		if r.ppLevel > 0 {
			return r.ppLevel - 1
		}
		return 0

	case chunk.PP_ENDIF:
		if r.ppLevel > 0 {
			r.ppLevel--
		}
		if tag, ok := r.repo.topTag(); ok && tag == chunk.PP_ELSE {
			f, _, _ := r.repo.pop()
			r.frm = f
			r.repo.pop()
		} else if ok && tag == chunk.PP_IF {
			r.repo.pop()
		} else {
			log.Warningf("line %d: #endif without a matching #if", dir.Line)
		}
		return r.ppLevel

	default:
		return r.ppLevel
	}
}
