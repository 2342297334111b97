package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/errors"
	"github.com/arma2d0/uncrustify/internal/lsp"
)

// publishRecorder captures publishDiagnostics notifications the way a
// connected editor would receive them.
type publishRecorder struct {
	published []protocol.PublishDiagnosticsParams
}

func (r *publishRecorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
				r.published = append(r.published, *p)
			}
		},
	}
}

func openDocument(t *testing.T, h *lsp.Handler, ctx *glsp.Context, uri, text string) {
	t.Helper()

	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "c",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err, "TextDocumentDidOpen returned error")
}

func TestInitializeCapabilities(t *testing.T) {
	handler := lsp.NewHandler(config.Default())
	ctx := &glsp.Context{}

	result, err := handler.Initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)

	initResult, ok := result.(*protocol.InitializeResult)
	require.True(t, ok, "Initialize should return *InitializeResult")

	sync, ok := initResult.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok, "TextDocumentSync should be sync options")
	require.NotNil(t, sync.OpenClose)
	assert.True(t, *sync.OpenClose)
	require.NotNil(t, sync.Change)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *sync.Change)

	tokens, ok := initResult.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok, "SemanticTokensProvider should be semantic tokens options")
	assert.Equal(t, lsp.SemanticTokenTypes, tokens.Legend.TokenTypes)
	assert.Equal(t, lsp.SemanticTokenModifiers, tokens.Legend.TokenModifiers)

	require.NoError(t, handler.Initialized(ctx, &protocol.InitializedParams{}))
	require.NoError(t, handler.SetTrace(ctx, &protocol.SetTraceParams{Value: protocol.TraceValue("off")}))
	require.NoError(t, handler.Shutdown(ctx))
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	handler := lsp.NewHandler(config.Default())
	rec := &publishRecorder{}

	openDocument(t, handler, rec.context(), "file:///tmp/broken.c", "void f() {\n    x();\n)\n")

	require.Len(t, rec.published, 1, "a broken file should publish once")
	p := rec.published[0]
	assert.Equal(t, "file:///tmp/broken.c", p.URI)
	require.Len(t, p.Diagnostics, 1)

	d := p.Diagnostics[0]
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, "ubrace", *d.Source)
	assert.Contains(t, d.Message, "E1001")
	assert.Contains(t, d.Message, "unexpected ')'")
	assert.Equal(t, uint32(2), d.Range.Start.Line, "positions are 0-based")
	assert.Equal(t, uint32(0), d.Range.Start.Character)
	assert.Equal(t, uint32(1), d.Range.End.Character)
}

func TestDidOpenCleanSourcePublishesNothing(t *testing.T) {
	handler := lsp.NewHandler(config.Default())
	rec := &publishRecorder{}

	openDocument(t, handler, rec.context(), "file:///tmp/ok.c", "int main() {\n    return 0;\n}\n")

	assert.Empty(t, rec.published)
}

func TestDidChangeReplacesDocument(t *testing.T) {
	handler := lsp.NewHandler(config.Default())
	rec := &publishRecorder{}
	ctx := rec.context()
	uri := "file:///tmp/edit.c"

	openDocument(t, handler, ctx, uri, "void f() {\n    x();\n)\n")
	require.Len(t, rec.published, 1)

	err := handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "int f() {\n    return 1;\n}\n"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, rec.published, 1, "a clean edit should publish nothing new")

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 3, "f, return and 1 should be highlighted")
	assertToken(t, &decoded[0], 1, 5, 1, "function", nil)
	assertToken(t, &decoded[1], 2, 5, 6, "keyword", nil)
	assertToken(t, &decoded[2], 2, 12, 1, "number", nil)
}

func TestDidCloseDropsDocument(t *testing.T) {
	handler := lsp.NewHandler(config.Default())
	rec := &publishRecorder{}
	ctx := rec.context()
	uri := "file:///tmp/gone.c"

	openDocument(t, handler, ctx, uri, "int main() {\n    return 0;\n}\n")

	err := handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Empty(t, tokens.Data, "a closed document has no tokens")
}

func TestDialectFollowsExtension(t *testing.T) {
	source := "try { } catch { }\n"

	csRec := &publishRecorder{}
	csHandler := lsp.NewHandler(config.Default())
	openDocument(t, csHandler, csRec.context(), "file:///tmp/a.cs", source)
	assert.Empty(t, csRec.published, "C# allows a bare catch")

	cppRec := &publishRecorder{}
	cppHandler := lsp.NewHandler(config.Default())
	openDocument(t, cppHandler, cppRec.context(), "file:///tmp/a.cpp", source)
	require.Len(t, cppRec.published, 1, "C++ requires a catch clause")
	require.Len(t, cppRec.published[0].Diagnostics, 1)
	assert.Contains(t, cppRec.published[0].Diagnostics[0].Message, "E1002")
}

func TestSemanticTokensFull(t *testing.T) {
	handler := lsp.NewHandler(config.Default())
	rec := &publishRecorder{}
	ctx := rec.context()
	uri := "file:///tmp/tokens.c"

	source := "/* header */\nint main() {\n    return 42;\n}\n"
	openDocument(t, handler, ctx, uri, source)

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")
	require.NotEmpty(t, tokens.Data, "Returned token data should not be empty")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")

	require.Len(t, decoded, 4)
	assertToken(t, &decoded[0], 1, 1, 12, "comment", nil)
	assertToken(t, &decoded[1], 2, 5, 4, "function", nil)
	assertToken(t, &decoded[2], 3, 5, 6, "keyword", nil)
	assertToken(t, &decoded[3], 3, 12, 2, "number", nil)
}

func TestSemanticTokensMacroDeclaration(t *testing.T) {
	handler := lsp.NewHandler(config.Default())
	rec := &publishRecorder{}
	ctx := rec.context()
	uri := "file:///tmp/macro.c"

	openDocument(t, handler, ctx, uri, "#define MAX(x) ((x) + 1)\n")

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)

	require.Len(t, decoded, 4)
	assertToken(t, &decoded[0], 1, 1, 1, "macro", nil)
	assertToken(t, &decoded[1], 1, 2, 6, "macro", nil)
	assertToken(t, &decoded[2], 1, 9, 3, "macro", []string{"declaration"})
	assertToken(t, &decoded[3], 1, 23, 1, "number", nil)
}

func TestConvertStructural(t *testing.T) {
	diags := lsp.ConvertStructural([]errors.StructuralError{
		errors.MismatchedClose(")", "}", 1, errors.Position{Line: 3, Column: 7}),
		errors.FileScopeClose("}", errors.Position{Line: 5, Column: 1}),
	})
	require.Len(t, diags, 2)

	assert.Equal(t, uint32(2), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(6), diags[0].Range.Start.Character)
	assert.Equal(t, uint32(7), diags[0].Range.End.Character)
	require.NotNil(t, diags[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Contains(t, diags[0].Message, "E1001")
	assert.Contains(t, diags[0].Message, "note:")

	require.NotNil(t, diags[1].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[1].Severity)
	assert.Contains(t, diags[1].Message, "W1102")
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
