package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorReporter(t *testing.T) {
	source := `int main(void) {
    if (x) {
        return 1;
    ]
}`

	reporter := NewErrorReporter("test.c", source)

	err := MismatchedClose("]", "}", 2, Position{Line: 4, Column: 5})
	formatted := reporter.FormatError(err)

	// Should contain error level and code
	assert.Contains(t, formatted, "error["+ErrorMismatchedClose+"]")
	assert.Contains(t, formatted, "unexpected ']'")
	assert.Contains(t, formatted, "expected '}'")

	// Should contain location
	assert.Contains(t, formatted, "test.c:4:5")

	// Should name the open line
	assert.Contains(t, formatted, "opened on line 2")
}

func TestMismatchedCloseError(t *testing.T) {
	err := MismatchedClose("}", ")", 7, Position{Line: 9, Column: 1})
	assert.Equal(t, ErrorMismatchedClose, err.Code)
	assert.Equal(t, Error, err.Level)
	assert.Equal(t, ")", err.Expected)
	assert.Equal(t, "}", err.Got)
	assert.Len(t, err.Notes, 1)

	// Unknown open line omits the note
	err = MismatchedClose("}", ")", 0, Position{Line: 9, Column: 1})
	assert.Empty(t, err.Notes)
}

func TestDanglingConstructError(t *testing.T) {
	pos := Position{Line: 3, Column: 1}

	err := DanglingConstruct("do", "while", "int", pos)
	assert.Equal(t, ErrorDanglingConstruct, err.Code)
	assert.Contains(t, err.Message, "expected 'while'")
	assert.Contains(t, err.Message, "got 'int'")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0], "while (condition);")

	err = DanglingConstruct("while-of-do", ";", "}", pos)
	assert.Contains(t, err.Suggestions[0], "semicolon")

	err = DanglingConstruct("switch", "(", "{", pos)
	assert.Contains(t, err.Suggestions[0], "parenthesized head")
}

func TestUnknownEntryError(t *testing.T) {
	err := UnknownEntry("COMMA", "NONE", Position{Line: 2, Column: 8})
	assert.Equal(t, ErrorUnknownEntry, err.Code)
	assert.Contains(t, err.Message, "COMMA")
	assert.Len(t, err.Notes, 1)
}

func TestWarningFormatting(t *testing.T) {
	source := `#define BLOCK {`
	reporter := NewErrorReporter("test.h", source)

	err := MacroImbalance(2, Position{Line: 1, Column: 15})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning[W1101]")
	assert.Contains(t, formatted, "unbalanced braces")
	assert.True(t, IsWarning(err.Code))
}

func TestFileScopeCloseWarning(t *testing.T) {
	err := FileScopeClose("}", Position{Line: 12, Column: 1})
	assert.Equal(t, Warning, err.Level)
	assert.Equal(t, WarningFileScopeClose, err.Code)
	assert.Contains(t, err.Message, "no matching open")
}

func TestErrorInterface(t *testing.T) {
	var err error = MismatchedClose("]", ")", 0, Position{Line: 5, Column: 2})
	assert.Contains(t, err.Error(), "error[E1001] 5:2:")
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `while (x) }`
	reporter := NewErrorReporter("test.c", source)

	marker := reporter.createMarker(5, 8, Error)

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces) // column 5 means 4 spaces before
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets) // 8 character length
}

func TestFormatAllKeepsOrder(t *testing.T) {
	source := "a\nb\nc\n"
	reporter := NewErrorReporter("test.c", source)

	batch := []StructuralError{
		FileScopeClose("}", Position{Line: 1, Column: 1}),
		MacroImbalance(3, Position{Line: 2, Column: 1}),
	}
	formatted := reporter.FormatAll(batch)

	first := strings.Index(formatted, "W1102")
	second := strings.Index(formatted, "W1101")
	assert.True(t, first >= 0 && second > first, "diagnostics should render in input order")
}

func TestErrorCodeHelpers(t *testing.T) {
	assert.True(t, IsWarning(WarningMacroImbalance))
	assert.False(t, IsWarning(ErrorMismatchedClose))

	assert.Equal(t, "Structural", GetErrorCategory(ErrorDanglingConstruct))
	assert.Equal(t, "Configuration", GetErrorCategory(ErrorConfigRequires))
	assert.Equal(t, "Warning", GetErrorCategory(WarningFileScopeClose))
	assert.Equal(t, "Unknown", GetErrorCategory("X9999"))

	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorUnknownEntry))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
}
