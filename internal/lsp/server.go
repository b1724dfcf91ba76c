// Package lsp serves parse diagnostics and basic navigation over the
// Language Server Protocol (JSON-RPC on stdio).
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"simpleparser/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Debounce delays diagnostics after an edit; 0 means 200ms.
	Debounce       time.Duration
	MaxDiagnostics int
	// Log receives server messages; nil discards them.
	Log io.Writer
}

// Server handles stdio JSON-RPC for the parser.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	log    io.Writer
	sendMu sync.Mutex
	mu     sync.Mutex

	docs      map[string]*document
	snapshots map[string]*snapshot
	pending   map[string]struct{}
	published map[string]struct{}
	nextRev   uint64

	shutdownRequested bool
	debounce          time.Duration
	debounceTimer     *time.Timer
	maxDiagnostics    int
	baseCtx           context.Context
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	logOut := opts.Log
	if logOut == nil {
		logOut = io.Discard
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		log:            logOut,
		docs:           make(map[string]*document),
		snapshots:      make(map[string]*snapshot),
		pending:        make(map[string]struct{}),
		published:      make(map[string]struct{}),
		debounce:       debounce,
		maxDiagnostics: maxDiagnostics,
		baseCtx:        context.Background(),
	}
}

// Run serves LSP requests until the client exits or in is closed.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	defer s.stopTimer()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized", "$/cancelRequest", "$/setTrace", "workspace/didChangeConfiguration":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	case "textDocument/foldingRange":
		return s.handleFoldingRange(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2, // incremental
				Save:      saveOptions{IncludeText: true},
			},
			HoverProvider:          true,
			DefinitionProvider:     true,
			DocumentSymbolProvider: true,
			FoldingRangeProvider:   true,
			CodeActionProvider:     true,
		},
		ServerInfo: serverInfo{Name: "simpleparser", Version: version.Version},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.stopTimer()
	s.clearPublishedDiagnostics()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.updateDocument(uri, params.TextDocument.Version, func(string) string { return params.TextDocument.Text })
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.updateDocument(uri, params.TextDocument.Version, func(text string) string {
		return applyChanges(text, params.ContentChanges)
	})
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" || params.Text == nil {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	ver := 0
	if ok {
		ver = doc.version
	}
	s.mu.Unlock()
	s.updateDocument(uri, ver, func(string) string { return *params.Text })
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.docs, uri)
	delete(s.snapshots, uri)
	delete(s.pending, uri)
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return nil
}

// updateDocument replaces the text of uri and schedules its diagnostics.
func (s *Server) updateDocument(uri string, ver int, edit func(old string) string) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &document{uri: uri}
		s.docs[uri] = doc
	}
	s.nextRev++
	doc.text = edit(doc.text)
	doc.version = ver
	doc.rev = s.nextRev
	s.pending[uri] = struct{}{}
	s.mu.Unlock()
	s.scheduleDiagnostics()
}

func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, s.flushDiagnostics)
}

func (s *Server) stopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}

// flushDiagnostics analyzes every document edited since the last flush and
// publishes the results. A result whose document changed meanwhile is dropped;
// the change scheduled another flush.
func (s *Server) flushDiagnostics() {
	s.mu.Lock()
	docs := make([]document, 0, len(s.pending))
	for uri := range s.pending {
		if doc, ok := s.docs[uri]; ok {
			docs = append(docs, *doc)
		}
	}
	s.pending = make(map[string]struct{})
	s.mu.Unlock()
	sort.Slice(docs, func(i, j int) bool { return docs[i].uri < docs[j].uri })

	for _, doc := range docs {
		if s.baseCtx.Err() != nil {
			return
		}
		snap := analyzeDocument(s.baseCtx, doc, s.maxDiagnostics)
		if !s.storeSnapshot(snap) {
			continue
		}
		list := snap.lspDiagnostics()
		ver := snap.version
		if err := s.sendPublish(snap.uri, &ver, list); err != nil {
			s.logf("failed to publish diagnostics: %v", err)
		}
	}
}

// storeSnapshot keeps snap if it still matches the open document.
func (s *Server) storeSnapshot(snap *snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[snap.uri]
	if !ok || doc.rev != snap.rev {
		return false
	}
	s.snapshots[snap.uri] = snap
	s.published[snap.uri] = struct{}{}
	return true
}

// snapshotFor returns an up-to-date analysis of uri, analyzing it now when the
// debounced one is missing or stale. Nil when the document is not open.
func (s *Server) snapshotFor(uri string) *snapshot {
	uri = canonicalURI(uri)
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if snap := s.snapshots[uri]; snap != nil && snap.rev == doc.rev {
		s.mu.Unlock()
		return snap
	}
	copyDoc := *doc
	s.mu.Unlock()

	snap := analyzeDocument(s.baseCtx, copyDoc, s.maxDiagnostics)
	s.mu.Lock()
	if cur, ok := s.docs[uri]; ok && cur.rev == snap.rev {
		s.snapshots[uri] = snap
	}
	s.mu.Unlock()
	return snap
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	uris := make([]string, 0, len(prev))
	for uri := range prev {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, ver *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Version:     ver,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...)
}

// decodeParams unmarshals request params, answering invalid ones with an
// error response. ok is false when the request was already answered.
func (s *Server) decodeParams(msg *rpcMessage, dst any) (ok bool, err error) {
	if len(msg.Params) == 0 {
		return true, nil
	}
	if err := json.Unmarshal(msg.Params, dst); err != nil {
		return false, s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	return true, nil
}
