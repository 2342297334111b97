// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/lsp"
)

const lsName = "ubrace" // Name identifier for the language server

var handler protocol.Handler // Protocol handler instance (wired up below)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	// Create the brace resolution handler with default options
	braceHandler := lsp.NewHandler(config.Default())

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     braceHandler.Initialize,
		Initialized:                    braceHandler.Initialized,
		Shutdown:                       braceHandler.Shutdown,
		SetTrace:                       braceHandler.SetTrace,
		TextDocumentDidOpen:            braceHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           braceHandler.TextDocumentDidClose,
		TextDocumentDidChange:          braceHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: braceHandler.TextDocumentSemanticTokensFull,
	}

	// Create a new GLSP server instance
	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting ubrace LSP server...")

	// Serve over standard input/output (used by most editors for LSP)
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting ubrace LSP server:", err)
		os.Exit(1)
	}
}
