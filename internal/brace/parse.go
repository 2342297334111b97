package brace

import (
	"github.com/arma2d0/uncrustify/internal/chunk"
	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/errors"
)

// patternClassOf maps a chunk kind to its statement pattern. Catch
// varies by dialect: C# and D allow a bare catch, C++ and Java demand
// the paren.
func patternClassOf(d config.Dialect, k chunk.Kind) patternClass {
	switch k {
	case chunk.DO, chunk.TRY, chunk.FINALLY:
		return patternBraced
	case chunk.IF, chunk.ELSEIF, chunk.FOR, chunk.WHILE, chunk.SWITCH,
		chunk.SYNCHRONIZED, chunk.USING_STMT:
		return patternParenBraced
	case chunk.CATCH:
		if d.OptionalCatchParen {
			return patternOpParenBraced
		}
		return patternParenBraced
	case chunk.VERSION, chunk.SCOPE:
		return patternOpParenBraced
	case chunk.ELSE:
		return patternElse
	default:
		return patternNone
	}
}

func isCloseKind(k chunk.Kind) bool {
	switch k {
	case chunk.PAREN_CLOSE, chunk.BRACE_CLOSE, chunk.VBRACE_CLOSE,
		chunk.ANGLE_CLOSE, chunk.MACRO_CLOSE, chunk.SQUARE_CLOSE:
		return true
	default:
		return false
	}
}

func isOpenKind(k chunk.Kind) bool {
	switch k {
	case chunk.PAREN_OPEN, chunk.SPAREN_OPEN, chunk.FPAREN_OPEN,
		chunk.BRACE_OPEN, chunk.ANGLE_OPEN, chunk.MACRO_OPEN,
		chunk.SQUARE_OPEN:
		return true
	default:
		return false
	}
}

// closeTextOf returns the literal that would close an open entry, for
// error messages.
func closeTextOf(k chunk.Kind) string {
	switch k {
	case chunk.BRACE_OPEN, chunk.VBRACE_OPEN, chunk.MACRO_OPEN:
		return "}"
	case chunk.SQUARE_OPEN:
		return "]"
	case chunk.ANGLE_OPEN:
		return ">"
	default:
		return ")"
	}
}

// startsControlParen reports whether a paren after this kind is the
// head clause of a control statement.
func startsControlParen(k chunk.Kind) bool {
	switch k {
	case chunk.IF, chunk.CONSTEXPR, chunk.ELSEIF, chunk.WHILE,
		chunk.WHILE_OF_DO, chunk.DO, chunk.FOR, chunk.SWITCH, chunk.CATCH,
		chunk.SYNCHRONIZED, chunk.VERSION, chunk.SCOPE:
		return true
	default:
		return false
	}
}

func isRecordKind(k chunk.Kind) bool {
	switch k {
	case chunk.ENUM, chunk.UNION, chunk.STRUCT, chunk.CLASS:
		return true
	default:
		return false
	}
}

// parseToken advances the paren stack for one significant chunk.
func (r *resolver) parseToken(i int) error {
	pc := r.arena.At(i)

	// First significant chunk of a statement or expression gets marked.
	// Closes and semicolons never start anything.
	if (r.frm.StmtCount == 0 || r.frm.ExprCount == 0) &&
		!pc.IsSemicolon() &&
		pc.Kind != chunk.BRACE_CLOSE && pc.Kind != chunk.VBRACE_CLOSE &&
		pc.Text != ")" && pc.Text != "]" {
		flags := chunk.FlagExprStart
		if r.frm.StmtCount == 0 {
			flags |= chunk.FlagStmtStart
		}
		pc.Flags |= flags
	}
	r.frm.StmtCount++
	r.frm.ExprCount++

	if r.frm.SParenCount > 0 {
		pc.Flags |= chunk.FlagInSParen

		// Anything inside a for's control parens gets tagged too.
		for idx := r.frm.Len() - 2; idx >= 0; idx-- {
			if r.frm.At(idx).Kind == chunk.FOR {
				pc.Flags |= chunk.FlagInFor
				break
			}
		}

		if pc.Kind == chunk.SEMICOLON && r.frm.Len() > 2 && r.frm.Prev().Kind == chunk.FOR {
			pc.Parent = chunk.FOR
		}
	}

	// Progress the complex statement on top of the stack.
	if r.frm.Top().Stage != StageNone {
		done, err := r.checkComplexStatements(i)
		if err != nil || done {
			return err
		}
		pc = r.arena.At(i)
	}

	// A semicolon, or in some dialects a brace close, ends the
	// statement inside a virtual brace.
	if r.frm.Top().Kind == chunk.VBRACE_OPEN {
		if pc.IsSemicolon() {
			r.consumed = true
			if _, err := r.closeStatement(i); err != nil {
				return err
			}
		} else if r.d.BraceCloseEndsVBrace && pc.Kind == chunk.BRACE_CLOSE {
			if _, err := r.closeStatement(i); err != nil {
				return err
			}
		}
		pc = r.arena.At(i)
	}

	if isCloseKind(pc.Kind) {
		if err := r.handleClose(i); err != nil {
			return err
		}
		pc = r.arena.At(i)
	}

	// A while-of-do needs its terminating semicolon. The close paren of
	// the while lands here already consumed by the dispatch above.
	if r.frm.Top().Stage == StageWodSemi {
		if r.consumed {
			if r.d.VirtualSemicolons {
				if n := r.arena.NextNcNnl(i); n == chunk.None || !r.arena.At(n).IsSemicolon() {
					r.pawnAddVSemiAfter(i)
				}
			}
		} else {
			pc = r.arena.At(i)
			if !pc.IsSemicolon() {
				return errors.DanglingConstruct("do", ";", pc.Text,
					errors.Position{Line: pc.Line, Column: pc.Col})
			}
			r.consumed = true
			pc.Parent = chunk.WHILE_OF_DO
			if _, err := r.handleComplexClose(i); err != nil {
				return err
			}
		}
		pc = r.arena.At(i)
	}

	// Resolve what an open token belongs to before pushing it.
	parentType := pc.Parent

	if pc.Kind == chunk.PAREN_OPEN || pc.Kind == chunk.FPAREN_OPEN ||
		pc.Kind == chunk.SPAREN_OPEN || pc.Kind == chunk.BRACE_OPEN {
		prevIdx := r.arena.PrevNcNnl(i)
		if prevIdx != chunk.None {
			prev := r.arena.At(prevIdx)
			if pc.Kind != chunk.BRACE_OPEN {
				if startsControlParen(prev.Kind) {
					pc.Kind = chunk.SPAREN_OPEN
					parentType = r.frm.Top().Kind
					r.frm.SParenCount++
				}
			} else {
				switch {
				case r.frm.Top().Stage != StageNone:
					parentType = r.frm.Top().Kind
				case prev.Kind == chunk.ASSIGN && len(prev.Text) > 0 && prev.Text[0] == '=':
					parentType = chunk.ASSIGN
				case prev.Kind == chunk.RETURN:
					parentType = chunk.RETURN
				case prev.Kind == chunk.FPAREN_CLOSE:
					parentType = chunk.FUNCTION
				case isRecordKind(prev.Kind):
					parentType = prev.Kind
				case prev.Kind == chunk.WORD:
					if pp := r.arena.PrevNcNnl(prevIdx); pp != chunk.None && isRecordKind(r.arena.At(pp).Kind) {
						parentType = r.arena.At(pp).Kind
					}
				}
			}
		}
	}

	if isOpenKind(pc.Kind) {
		r.frm.Level++

		braced := false
		if pc.Kind == chunk.BRACE_OPEN || pc.Kind == chunk.MACRO_OPEN {
			// Directly nested namespaces can share one indent level.
			single := false
			if pc.Parent == chunk.NAMESPACE &&
				r.opts.IndentNamespace && r.opts.IndentNamespaceSingleIndent {
				if t := r.frm.Top().Tok; t != chunk.None && r.arena.At(t).Parent == chunk.NAMESPACE {
					single = true
				}
			}
			if !single {
				r.frm.BraceLevel++
			}
			braced = !single
		}

		r.frm.Push(Entry{Tok: i, Kind: pc.Kind, Stage: StageNone, Parent: parentType, Braced: braced})
		pc.Parent = parentType
	}

	// Link switch members back to the construct that owns them.
	if pc.Kind == chunk.BRACE_OPEN && pc.Parent == chunk.SWITCH {
		if t := r.frm.At(r.frm.Len() - 2).Tok; t != chunk.None {
			pc.ParentIdx = t
		}
	}

	if pc.Kind == chunk.CASE || pc.Kind == chunk.DEFAULT {
		prevKind := chunk.NONE
		if p := r.arena.PrevNcNnl(i); p != chunk.None {
			prevKind = r.arena.At(p).Kind
		}
		// 'default' is also a plain value in some dialects.
		if pc.Kind == chunk.CASE || prevKind != chunk.ASSIGN {
			pc.Parent = chunk.SWITCH
			if t := r.frm.At(r.frm.Len() - 2).Tok; t != chunk.None {
				pc.ParentIdx = t
			}
		}
	}

	if pc.Kind == chunk.BREAK {
		if t := r.frm.At(r.frm.Len() - 2).Tok; t != chunk.None {
			pc.ParentIdx = t
		}
	}

	// Keywords that start a multi-part statement open a pattern entry.
	switch patternClassOf(r.d, pc.Kind) {
	case patternBraced:
		stage := StageBrace2
		if pc.Kind == chunk.DO {
			stage = StageBraceDo
		}
		r.frm.Push(Entry{Tok: i, Kind: pc.Kind, Stage: stage})
	case patternParenBraced:
		stage := StageParen1
		if pc.Kind == chunk.WHILE && r.maybeWhileOfDo(i) {
			log.Debugf("line %d: while continues a do body across a directive", pc.Line)
			pc.Kind = chunk.WHILE_OF_DO
			stage = StageWodParen
		}
		r.frm.Push(Entry{Tok: i, Kind: pc.Kind, Stage: stage})
	case patternOpParenBraced:
		r.frm.Push(Entry{Tok: i, Kind: pc.Kind, Stage: StageOpParen1})
	case patternElse:
		r.frm.Push(Entry{Tok: i, Kind: pc.Kind, Stage: StageElseIf})
	}

	// Statement boundaries.
	top := r.frm.Top()
	if pc.Kind == chunk.SQUARE_OPEN ||
		(pc.Kind == chunk.BRACE_OPEN && pc.Parent != chunk.ASSIGN) ||
		pc.Kind == chunk.BRACE_CLOSE || pc.Kind == chunk.VBRACE_CLOSE ||
		(pc.Kind == chunk.SPAREN_OPEN && pc.Parent == chunk.FOR) ||
		pc.Kind == chunk.COLON || pc.Kind == chunk.MACRO ||
		(pc.IsSemicolon() &&
			top.Kind != chunk.PAREN_OPEN &&
			top.Kind != chunk.FPAREN_OPEN &&
			top.Kind != chunk.SPAREN_OPEN) {
		r.frm.StmtCount = 0
		r.frm.ExprCount = 0
	}

	// Expression boundaries.
	switch pc.Kind {
	case chunk.ARITH, chunk.SHIFT, chunk.ASSIGN, chunk.CASE, chunk.COMPARE,
		chunk.BOOL, chunk.MINUS, chunk.PLUS, chunk.CARET,
		chunk.ANGLE_OPEN, chunk.ANGLE_CLOSE, chunk.RETURN, chunk.THROW,
		chunk.GOTO, chunk.CONTINUE, chunk.PAREN_OPEN, chunk.FPAREN_OPEN,
		chunk.SPAREN_OPEN, chunk.BRACE_OPEN, chunk.SEMICOLON,
		chunk.VSEMICOLON, chunk.COMMA, chunk.NOT, chunk.INV, chunk.COLON,
		chunk.QUESTION:
		r.frm.ExprCount = 0
	case chunk.STAR:
		// The second star of a double pointer is not an operator.
		if n := r.arena.NextNcNnl(i); n == chunk.None || r.arena.At(n).Kind != chunk.STAR {
			r.frm.ExprCount = 0
		}
	}
	return nil
}

// handleClose pops the scope a close token ends, retyping plain close
// parens to match how their open was classified.
func (r *resolver) handleClose(i int) error {
	pc := r.arena.At(i)
	top := r.frm.Top()

	if pc.Kind == chunk.PAREN_CLOSE &&
		(top.Kind == chunk.FPAREN_OPEN || top.Kind == chunk.SPAREN_OPEN) {
		pc.Kind = chunk.CloseOf(top.Kind)
		if pc.Kind == chunk.SPAREN_CLOSE {
			r.frm.SParenCount--
			pc.Flags &^= chunk.FlagInSParen
		}
	}

	if pc.Kind != chunk.CloseOf(top.Kind) {
		// Mismatches inside a directive are the preprocessor's problem.
		if pc.Flags.Has(chunk.FlagInPreproc) {
			log.Debugf("line %d: ignoring '%s' against %s inside a directive",
				pc.Line, pc.Text, top.Kind)
			return nil
		}
		// A stray close at file scope is noise, not a broken file.
		if top.Kind == chunk.EOF || top.Kind == chunk.PP_DEFINE {
			w := errors.FileScopeClose(pc.Text, errors.Position{Line: pc.Line, Column: pc.Col})
			r.warnings = append(r.warnings, w)
			log.Warningf("line %d: %s", pc.Line, w.Message)
			return nil
		}
		openLine := 0
		if top.Tok != chunk.None {
			openLine = r.arena.At(top.Tok).Line
		}
		return errors.MismatchedClose(pc.Text, closeTextOf(top.Kind), openLine,
			errors.Position{Line: pc.Line, Column: pc.Col})
	}

	r.consumed = true

	pc.Parent = top.Parent
	r.frm.Level--
	if top.Braced {
		r.frm.BraceLevel--
	}
	pc.Level = r.frm.Level
	pc.BraceLevel = r.frm.BraceLevel

	r.frm.Pop()

	// A close that pops back to a bare virtual brace must end it too,
	// so a dummy entry re-arms the complex close below.
	top = r.frm.Top()
	if top.Stage == StageNone && top.Kind == chunk.VBRACE_OPEN &&
		(pc.Kind == chunk.BRACE_CLOSE || pc.Kind == chunk.VBRACE_CLOSE || pc.Kind == chunk.SEMICOLON) {
		r.frm.Push(Entry{Tok: chunk.None, Kind: chunk.NONE, Stage: StageBrace2})
		top = r.frm.Top()
	}

	if top.Stage != StageNone {
		_, err := r.handleComplexClose(i)
		return err
	}
	return nil
}

// checkComplexStatements progresses the pattern on top of the stack.
// It reports true when the chunk was fully handled here.
func (r *resolver) checkComplexStatements(i int) (bool, error) {
	pc := r.arena.At(i)

	// An optional head clause either becomes a real paren stage or
	// skips straight to the body.
	if top := r.frm.Top(); top.Stage == StageOpParen1 {
		if pc.Kind == chunk.PAREN_OPEN {
			top.Stage = StageParen1
		} else {
			top.Stage = StageBrace2
		}
	}

	// else continues an if, anything other token closes it.
	for r.frm.Top().Stage == StageElse {
		if pc.Kind == chunk.ELSE {
			top := r.frm.Top()
			top.Kind = chunk.ELSE
			top.Stage = StageElseIf
			return true, nil
		}
		r.frm.Pop()
		done, err := r.closeStatement(i)
		if err != nil || done {
			return done, err
		}
		pc = r.arena.At(i)
	}

	// An if straight after the else chains the two into one construct.
	if top := r.frm.Top(); top.Stage == StageElseIf {
		if pc.Kind == chunk.IF &&
			(!r.opts.ElseIfSameLine || !r.prevIsNewline(i)) {
			log.Debugf("line %d: if continues the else", pc.Line)
			pc.Kind = chunk.ELSEIF
			top.Kind = chunk.ELSEIF
			top.Stage = StageParen1
			return true, nil
		}
		top.Stage = StageBrace2
	}

	// catch or finally continues a try, any other token closes it.
	for r.frm.Top().Stage == StageCatch {
		if pc.Kind == chunk.CATCH || pc.Kind == chunk.FINALLY {
			top := r.frm.Top()
			top.Kind = pc.Kind
			top.Stage = StageBrace2
			if pc.Kind == chunk.CATCH {
				if r.d.CatchWhen {
					top.Stage = StageCatchWhen
				} else {
					top.Stage = StageParen1
				}
			}
			return true, nil
		}
		r.frm.Pop()
		done, err := r.closeStatement(i)
		if err != nil || done {
			return done, err
		}
		pc = r.arena.At(i)
	}

	// After a catch head the paren, the when filter and the body are
	// all legal continuations.
	if top := r.frm.Top(); top.Stage == StageCatchWhen {
		switch pc.Kind {
		case chunk.PAREN_OPEN:
			pc.Kind = chunk.SPAREN_OPEN
			top.Kind = chunk.SPAREN_OPEN
			top.Stage = StageParen1
			return false, nil
		case chunk.WHEN:
			top.Kind = chunk.WHEN
			top.Stage = StageOpParen1
			return true, nil
		case chunk.BRACE_OPEN:
			top.Stage = StageBrace2
			return false, nil
		}
	}

	// Only while may follow a do body.
	if top := r.frm.Top(); top.Stage == StageWhile {
		if pc.Kind == chunk.WHILE {
			log.Debugf("line %d: while closes the do body", pc.Line)
			pc.Kind = chunk.WHILE_OF_DO
			top.Kind = chunk.WHILE_OF_DO
			top.Stage = StageWodParen
			return true, nil
		}
		r.frm.Pop()
		return false, errors.DanglingConstruct("do", "while", pc.Text,
			errors.Position{Line: pc.Line, Column: pc.Col})
	}

	// A body arriving without its brace gets a virtual one, except
	// inside preprocessor text.
	if pc.Kind != chunk.BRACE_OPEN && !pc.Flags.Has(chunk.FlagInPreproc) &&
		(r.frm.Top().Stage == StageBrace2 || r.frm.Top().Stage == StageBraceDo) {
		if r.d.UsingStatement && pc.Kind == chunk.USING_STMT && !r.opts.IndentUsingBlock {
			// chained using heads share one body
		} else {
			parentType := r.frm.Top().Kind

			vb := r.insertVBraceOpenBefore(i)
			r.arena.At(vb).Parent = parentType

			r.frm.Level++
			r.frm.BraceLevel++
			r.frm.Push(Entry{Tok: vb, Kind: chunk.VBRACE_OPEN, Stage: StageNone, Parent: parentType, Braced: true})

			pc = r.arena.At(i)
			pc.Level = r.frm.Level
			pc.BraceLevel = r.frm.BraceLevel

			// The chunk that forced the open starts its statement.
			pc.Flags |= chunk.FlagStmtStart | chunk.FlagExprStart
			r.frm.StmtCount = 1
			r.frm.ExprCount = 1
		}
	}

	// if constexpr keeps the paren stage alive.
	if top := r.frm.Top(); top.Stage == StageParen1 &&
		(top.Kind == chunk.IF || top.Kind == chunk.ELSEIF) &&
		pc.Kind == chunk.CONSTEXPR {
		return false, nil
	}

	// Anything but the expected paren here is broken input.
	if top := r.frm.Top(); pc.Kind != chunk.PAREN_OPEN &&
		(top.Stage == StageParen1 || top.Stage == StageWodParen) {
		owner := top.Kind.String()
		r.frm.Pop()
		return false, errors.DanglingConstruct(owner, "(", pc.Text,
			errors.Position{Line: pc.Line, Column: pc.Col})
	}
	return false, nil
}

// handleComplexClose advances a pattern when one of its pieces just
// closed. It reports true when the trailing chunk was consumed by a
// recursive statement close.
func (r *resolver) handleComplexClose(i int) (bool, error) {
	pc := r.arena.At(i)
	top := r.frm.Top()

	switch top.Stage {
	case StageParen1:
		if n := r.arena.Next(i); n != chunk.None && r.arena.At(n).Kind == chunk.WHEN {
			top.Kind = pc.Kind
			top.Stage = StageCatchWhen
			return true, nil
		}
		top.Stage = StageBrace2

	case StageBrace2:
		switch top.Kind {
		case chunk.IF, chunk.ELSEIF:
			top.Stage = StageElse
			if n := r.arena.NextNcNnl(i); n == chunk.None || r.arena.At(n).Kind != chunk.ELSE {
				r.frm.Pop()
				return r.closeStatement(i)
			}
		case chunk.TRY, chunk.CATCH:
			top.Stage = StageCatch
			if n := r.arena.NextNcNnl(i); n == chunk.None ||
				(r.arena.At(n).Kind != chunk.CATCH && r.arena.At(n).Kind != chunk.FINALLY) {
				r.frm.Pop()
				return r.closeStatement(i)
			}
		default:
			r.frm.Pop()
			return r.closeStatement(i)
		}

	case StageBraceDo:
		top.Stage = StageWhile

	case StageWodParen:
		top.Stage = StageWodSemi

	case StageWodSemi:
		r.frm.Pop()
		return r.closeStatement(i)

	default:
		return false, errors.UnknownEntry(top.Kind.String(), top.Stage.String(),
			errors.Position{Line: pc.Line, Column: pc.Col})
	}
	return false, nil
}

// closeStatement finishes the statement the chunk at i ended, closing
// the virtual brace it sat in.
func (r *resolver) closeStatement(i int) (bool, error) {
	if r.consumed {
		r.frm.StmtCount = 0
		r.frm.ExprCount = 0
	}

	vbc := i
	if top := r.frm.Top(); top.Kind == chunk.VBRACE_OPEN {
		if r.consumed {
			// The chunk is spent. The close lands after it and pops the
			// entry when the walk reaches it.
			r.insertVBraceCloseAfter(i)
		} else {
			// The chunk belongs outside the virtual brace, so the close
			// lands in front of it and the entry pops now.
			parent := top.Parent
			prev := r.arena.PrevNcNnl(i)
			if prev == chunk.None {
				prev = i
			}
			r.frm.Level--
			r.frm.BraceLevel--
			vbc = r.insertVBraceCloseAfter(prev)
			r.arena.At(vbc).Parent = parent
			r.frm.Pop()

			pc := r.arena.At(i)
			pc.Level = r.frm.Level
			pc.BraceLevel = r.frm.BraceLevel

			if _, err := r.closeStatement(i); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	if r.frm.Top().Stage != StageNone {
		return r.handleComplexClose(vbc)
	}
	return false, nil
}

// maybeWhileOfDo reports whether a while follows a do body that a
// preprocessor region separates from it.
func (r *resolver) maybeWhileOfDo(i int) bool {
	prev := r.arena.PrevNcNnl(i)
	if prev == chunk.None || !r.arena.At(prev).Flags.Has(chunk.FlagInPreproc) {
		return false
	}
	prev = r.arena.PrevNcNnlNpp(i)
	if prev == chunk.None {
		return false
	}
	pc := r.arena.At(prev)
	return (pc.Kind == chunk.VBRACE_CLOSE || pc.Kind == chunk.BRACE_CLOSE) &&
		pc.Parent == chunk.DO
}

// markNamespace tags everything from the namespace keyword through its
// braces. Runs before the keyword itself is parsed.
func (r *resolver) markNamespace(i int) {
	isUsing := false
	if p := r.arena.PrevNcNnl(i); p != chunk.None && r.arena.At(p).Kind == chunk.USING {
		isUsing = true
		r.arena.At(i).Parent = chunk.USING
	}

	for n := r.arena.NextNcNnl(i); n != chunk.None; n = r.arena.NextNcNnl(n) {
		pc := r.arena.At(n)
		pc.Parent = chunk.NAMESPACE

		if pc.Kind != chunk.BRACE_OPEN {
			// A semicolon ends a namespace alias or using declaration.
			if pc.Kind == chunk.SEMICOLON {
				if isUsing {
					pc.Parent = chunk.USING
				}
				return
			}
			continue
		}

		brClose := r.arena.ClosingBrace(n)
		if brClose == chunk.None {
			return
		}
		if lim := r.opts.IndentNamespaceLimit; lim > 0 {
			if body := r.arena.At(brClose).Line - pc.Line - 1; body > lim {
				pc.Flags |= chunk.FlagLongBlock
				r.arena.At(brClose).Flags |= chunk.FlagLongBlock
			}
		}
		for t := r.arena.Next(n); t != chunk.None && t != brClose; t = r.arena.Next(t) {
			r.arena.At(t).Flags |= chunk.FlagInNamespace
		}
		r.arena.At(brClose).Parent = chunk.NAMESPACE
		return
	}
}

func (r *resolver) prevIsNewline(i int) bool {
	p := r.arena.PrevNc(i)
	return p != chunk.None && r.arena.At(p).Kind == chunk.NEWLINE
}
