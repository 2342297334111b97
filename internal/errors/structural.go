package errors

import "fmt"

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// StructuralError is a diagnostic produced by the brace resolver. Fatal
// errors abort the pass for the file; warnings are collected and the
// pass continues with best-effort state.
type StructuralError struct {
	Level       ErrorLevel
	Code        string   // Error code like E1001
	Message     string   // Primary error message
	Position    Position // Location in source
	Length      int      // Length of the problematic region
	Expected    string   // What the resolver expected at this point
	Got         string   // What it found instead
	Suggestions []string // Suggested fixes
	Notes       []string // Additional context notes
}

func (e StructuralError) Error() string {
	return fmt.Sprintf("%s[%s] %d:%d: %s",
		e.Level, e.Code, e.Position.Line, e.Position.Column, e.Message)
}

// MismatchedClose creates the fatal error for a close token whose kind
// does not match the innermost open construct.
func MismatchedClose(got, expected string, openLine int, pos Position) StructuralError {
	err := StructuralError{
		Level:    Error,
		Code:     ErrorMismatchedClose,
		Message:  fmt.Sprintf("unexpected '%s', expected '%s'", got, expected),
		Position: pos,
		Length:   len(got),
		Expected: expected,
		Got:      got,
	}
	if openLine > 0 {
		err.Notes = append(err.Notes,
			fmt.Sprintf("the enclosing construct was opened on line %d", openLine))
	}
	return err
}

// DanglingConstruct creates the fatal error for a multi-part statement
// missing its mandatory continuation token.
func DanglingConstruct(owner, expected, got string, pos Position) StructuralError {
	err := StructuralError{
		Level:    Error,
		Code:     ErrorDanglingConstruct,
		Message:  fmt.Sprintf("expected '%s' to continue '%s', got '%s'", expected, owner, got),
		Position: pos,
		Length:   len(got),
		Expected: expected,
		Got:      got,
	}
	switch expected {
	case "while":
		err.Suggestions = append(err.Suggestions,
			"a 'do' body must be followed by 'while (condition);'")
	case ";":
		err.Suggestions = append(err.Suggestions,
			"terminate the do-while loop with a semicolon")
	case "(":
		err.Suggestions = append(err.Suggestions,
			fmt.Sprintf("'%s' requires a parenthesized head clause", owner))
	}
	return err
}

// UnknownEntry creates the fatal error for a close that found an entry
// kind the dispatch logic does not recognize.
func UnknownEntry(kind, stage string, pos Position) StructuralError {
	return StructuralError{
		Level:    Error,
		Code:     ErrorUnknownEntry,
		Message:  fmt.Sprintf("cannot close construct '%s' in stage %s", kind, stage),
		Position: pos,
		Got:      kind,
		Notes: []string{
			"the nesting stack no longer reflects the source structure",
		},
	}
}

// MacroImbalance creates the warning for a #define body that ends with
// an unbalanced brace depth. Emitted only under the policy option.
func MacroImbalance(braceLevel int, pos Position) StructuralError {
	return StructuralError{
		Level:    Warning,
		Code:     WarningMacroImbalance,
		Message:  fmt.Sprintf("unbalanced braces in macro body, depth %d at end", braceLevel),
		Position: pos,
		Notes: []string{
			"the frame saved before the macro is restored unchanged",
		},
	}
}

// FileScopeClose creates the warning for a close token at file scope
// that has no matching open. The token keeps level 0 and the pass
// continues.
func FileScopeClose(got string, pos Position) StructuralError {
	return StructuralError{
		Level:    Warning,
		Code:     WarningFileScopeClose,
		Message:  fmt.Sprintf("'%s' at file scope has no matching open", got),
		Position: pos,
		Length:   len(got),
		Got:      got,
	}
}

// UnknownConfigKey creates the warning for an unrecognized config key.
func UnknownConfigKey(key string, line int) StructuralError {
	return StructuralError{
		Level:    Warning,
		Code:     WarningUnknownConfigKey,
		Message:  fmt.Sprintf("unknown option '%s'", key),
		Position: Position{Line: line, Column: 1},
		Length:   len(key),
		Got:      key,
	}
}
