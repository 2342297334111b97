// Package lsp serves brace-resolution results over the language server
// protocol. Every open document is lexed and resolved on each change;
// structural errors and warnings surface as diagnostics, and the chunk
// classification backs semantic token highlighting.
package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/arma2d0/uncrustify/internal/brace"
	"github.com/arma2d0/uncrustify/internal/chunk"
	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/lexer"
)

var log = commonlog.GetLogger("ubrace.lsp")

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"keyword",
	"function",
	"macro",
	"number",
	"string",
	"comment",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration)
var SemanticTokenModifiers = []string{
	"declaration",
}

// document is one open file with its latest resolved state. The arena
// is kept even when resolution failed: chunk kinds are a lexer fact,
// so highlighting stays useful while the source is broken.
type document struct {
	text    string
	dialect config.Dialect
	arena   *chunk.Arena
}

// Handler implements the LSP server handlers for the brace resolver.
type Handler struct {
	opts config.Options

	mu   sync.RWMutex
	docs map[string]*document
}

// NewHandler creates a handler that resolves documents under the given
// options.
func NewHandler(opts config.Options) *Handler {
	return &Handler{
		opts: opts,
		docs: make(map[string]*document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true), // support full-document semantic token requests
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

// SetTrace handles the $/setTrace notification. The trace level only
// affects client-side logging, so there is nothing to store.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("setTrace: %s", params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	diagnostics := h.updateDocument(path, params.TextDocument.Text)
	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	// The server advertises full sync, so each change set carries the
	// whole document. Only the last change matters.
	text, ok := lastFullChange(params.ContentChanges)
	if !ok {
		return nil
	}

	diagnostics := h.updateDocument(path, text)
	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}

	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, path)

	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Debugf("semanticTokens/full: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	doc := h.docs[path]
	h.mu.RUnlock()

	// Documents arrive through didOpen before anything queries them.
	// A miss means the file was closed; answer with no tokens.
	if doc == nil || doc.arena == nil {
		return &protocol.SemanticTokens{}, nil
	}

	tokens := collectSemanticTokens(doc.arena)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

// updateDocument lexes and resolves one document and returns the
// diagnostics to publish, nil when the source is clean.
func (h *Handler) updateDocument(path, text string) []protocol.Diagnostic {
	dialect, ok := config.FromExtension(path)
	if !ok {
		// Unrecognized extensions resolve as plain C.
		dialect = config.C()
	}

	arena, err := lexer.New(dialect).Lex(path, text)
	if err != nil {
		return ConvertLexError(err)
	}

	warns, err := brace.Resolve(arena, h.opts, dialect)
	diagnostics := ConvertStructural(warns)
	if err != nil {
		diagnostics = append(diagnostics, ConvertResolveError(err)...)
	}

	h.mu.Lock()
	h.docs[path] = &document{text: text, dialect: dialect, arena: arena}
	h.mu.Unlock()

	return diagnostics
}

// lastFullChange picks the text of the last whole-document change in a
// didChange notification. Ranged edits only appear from clients that
// ignore the advertised full sync; their text still replaces the whole
// document.
func lastFullChange(changes []any) (string, bool) {
	var text string
	var found bool
	for _, change := range changes {
		switch ev := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = ev.Text
			found = true
		case protocol.TextDocumentContentChangeEvent:
			text = ev.Text
			found = true
		}
	}
	return text, found
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
