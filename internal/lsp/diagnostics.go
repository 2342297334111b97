package lsp

import (
	goerrors "errors"
	"strings"

	participle "github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/arma2d0/uncrustify/internal/errors"
)

// ConvertStructural transforms resolver errors and warnings into LSP
// diagnostics for IDE display. Resolver positions are 1-based, LSP
// positions 0-based.
func ConvertStructural(errs []errors.StructuralError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, serr := range errs {
		// Use the Length field if available, otherwise default span
		endChar := uint32(serr.Position.Column - 1 + serr.Length)
		if serr.Length == 0 {
			endChar = uint32(serr.Position.Column + 3) // Default small span
		}

		severity := protocol.DiagnosticSeverityError
		if serr.Level == errors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(serr.Position.Line - 1),
					Character: uint32(serr.Position.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(serr.Position.Line - 1),
					Character: endChar,
				},
			},
			Severity: ptrSeverity(severity),
			Source:   ptrString("ubrace"),
			Message:  diagnosticMessage(serr),
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// diagnosticMessage folds the code, notes and suggestions into one
// message. Editors show it as hover text, so the extra lines read like
// the terminal reporter's output.
func diagnosticMessage(serr errors.StructuralError) string {
	var b strings.Builder
	b.WriteString(serr.Code)
	b.WriteString(": ")
	b.WriteString(serr.Message)
	for _, note := range serr.Notes {
		b.WriteString("\nnote: ")
		b.WriteString(note)
	}
	for _, suggestion := range serr.Suggestions {
		b.WriteString("\nhelp: ")
		b.WriteString(suggestion)
	}
	return b.String()
}

// ConvertResolveError transforms the fatal error returned by the
// resolver. Anything that is not a structural error keeps the file
// start as its position.
func ConvertResolveError(err error) []protocol.Diagnostic {
	var serr errors.StructuralError
	if goerrors.As(err, &serr) {
		return ConvertStructural([]errors.StructuralError{serr})
	}

	return []protocol.Diagnostic{genericDiagnostic(err.Error(), 0, 0)}
}

// ConvertLexError transforms a scan failure into a diagnostic. These
// handle tokenization issues like stray characters or unterminated
// strings.
func ConvertLexError(err error) []protocol.Diagnostic {
	var perr participle.Error
	if goerrors.As(err, &perr) {
		pos := perr.Position()
		return []protocol.Diagnostic{genericDiagnostic(perr.Message(), pos.Line-1, pos.Column-1)}
	}

	return []protocol.Diagnostic{genericDiagnostic(err.Error(), 0, 0)}
}

func genericDiagnostic(message string, line, char int) protocol.Diagnostic {
	if line < 0 {
		line = 0
	}
	if char < 0 {
		char = 0
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(char)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(char + 1)},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("ubrace"),
		Message:  message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
