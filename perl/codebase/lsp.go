package codebase

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/praal/pearl/perl/document"
	"github.com/praal/pearl/perl/parser"
)

const lsName = "pearl"

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		codebase: New(),
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	result := ls.codebase.Open(uri, params.TextDocument.Version, params.TextDocument.Text)
	ls.publishDiagnostics(ctx, uri, result)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	var changes []Change
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				changes = append(changes, Change{Whole: true, Text: change.Text})
				continue
			}
			changes = append(changes, Change{
				Start: toDocumentPosition(change.Range.Start),
				End:   toDocumentPosition(change.Range.End),
				Text:  change.Text,
			})
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, Change{Whole: true, Text: change.Text})
		}
	}
	if len(changes) == 0 {
		return nil
	}
	result := ls.codebase.Apply(uri, params.TextDocument.Version, changes)
	if result != nil {
		ls.publishDiagnostics(ctx, uri, result)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.codebase.Close(params.TextDocument.URI)
	// An empty publish clears stale squiggles on the client.
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	uri := params.TextDocument.URI
	doc := ls.codebase.Document(uri)
	if doc == nil {
		return nil
	}
	result := ls.codebase.Replace(uri, doc.Version(), *params.Text)
	if result != nil {
		ls.publishDiagnostics(ctx, uri, result)
	}
	return nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string, result *parser.Result) {
	doc := ls.codebase.Document(uri)
	if doc == nil {
		return
	}
	diagnostics := make([]protocol.Diagnostic, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		diagnostics = append(diagnostics, toProtocolDiagnostic(doc, d))
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toProtocolDiagnostic(doc *document.Document, d parser.Diagnostic) protocol.Diagnostic {
	start, end := doc.SpanRange(d.Span)
	severity := toProtocolSeverity(d.Severity)
	source := lsName
	message := d.Message
	if d.Fix != "" {
		message += " (" + d.Fix + ")"
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: toProtocolPosition(start),
			End:   toProtocolPosition(end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func toProtocolSeverity(sev parser.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case parser.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case parser.SeverityHint:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

func toDocumentPosition(p protocol.Position) document.Position {
	return document.Position{Line: int(p.Line), Character: int(p.Character)}
}

func toProtocolPosition(p document.Position) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(p.Line), Character: protocol.UInteger(p.Character)}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
