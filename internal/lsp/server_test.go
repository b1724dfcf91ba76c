package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

// script frames each message the way a client would send it.
func script(t *testing.T, msgs ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range msgs {
		payload, err := json.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		if err := writeMessage(&buf, payload); err != nil {
			t.Fatal(err)
		}
	}
	return &buf
}

func request(id int, method string, params any) map[string]any {
	return map[string]any{"jsonrpc": "2.0", "id": id, "method": method, "params": params}
}

func notify(method string, params any) map[string]any {
	return map[string]any{"jsonrpc": "2.0", "method": method, "params": params}
}

func readAll(t *testing.T, out []byte) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if err != nil {
			break
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func responseByID(t *testing.T, msgs []rpcMessage, id int) rpcMessage {
	t.Helper()
	want := fmt.Sprint(id)
	for _, m := range msgs {
		if string(m.ID) == want {
			return m
		}
	}
	t.Fatalf("no response with id %d", id)
	return rpcMessage{}
}

func TestServerSession(t *testing.T) {
	in := script(t,
		request(1, "initialize", map[string]any{}),
		notify("initialized", map[string]any{}),
		notify("textDocument/didOpen", didOpenTextDocumentParams{
			TextDocument: textDocumentItem{URI: testURI, LanguageID: "javascript", Version: 1, Text: "let a = 1\na;"},
		}),
		request(2, "textDocument/hover", hoverParams{
			TextDocument: textDocumentIdentifier{URI: testURI},
			Position:     position{Line: 1, Character: 0},
		}),
		notify("textDocument/didChange", didChangeTextDocumentParams{
			TextDocument: versionedTextDocumentIdentifier{URI: testURI, Version: 2},
			ContentChanges: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{Line: 0, Character: 9}, End: position{Line: 0, Character: 9}},
				Text:  ";",
			}},
		}),
		request(3, "textDocument/hover", hoverParams{
			TextDocument: textDocumentIdentifier{URI: testURI},
			Position:     position{Line: 1, Character: 0},
		}),
		request(4, "textDocument/unknown", map[string]any{}),
		request(5, "shutdown", nil),
		notify("exit", nil),
	)
	var out bytes.Buffer
	server := NewServer(in, &out, ServerOptions{Debounce: time.Hour})
	if err := server.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v, want ErrExit", err)
	}
	msgs := readAll(t, out.Bytes())

	var init initializeResult
	if err := json.Unmarshal(responseByID(t, msgs, 1).Result, &init); err != nil {
		t.Fatal(err)
	}
	if !init.Capabilities.HoverProvider || !init.Capabilities.CodeActionProvider || init.ServerInfo.Name != "simpleparser" {
		t.Errorf("initialize = %+v", init)
	}
	// до правки файл не разбирается, дерева нет
	if res := responseByID(t, msgs, 2).Result; len(res) != 0 && string(res) != "null" {
		t.Errorf("hover before fix = %s", res)
	}
	var h hover
	if err := json.Unmarshal(responseByID(t, msgs, 3).Result, &h); err != nil {
		t.Fatal(err)
	}
	if h.Contents.Value == "" {
		t.Error("hover after fix is empty")
	}
	if e := responseByID(t, msgs, 4).Error; e == nil || e.Code != codeMethodNotFound {
		t.Errorf("unknown method error = %+v", e)
	}
}

func TestServerExitWithoutShutdown(t *testing.T) {
	in := script(t, notify("exit", nil))
	var out bytes.Buffer
	err := NewServer(in, &out, ServerOptions{}).Run(context.Background())
	if !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("Run = %v", err)
	}
}

func TestPublishDiagnostics(t *testing.T) {
	var out bytes.Buffer
	server := NewServer(bytes.NewReader(nil), &out, ServerOptions{Debounce: time.Hour})
	open, _ := json.Marshal(didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: testURI, Version: 3, Text: "one\ntwo three;"},
	})
	if err := server.handleDidOpen(&rpcMessage{Method: "textDocument/didOpen", Params: open}); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	server.stopTimer()
	server.flushDiagnostics()

	msgs := readAll(t, out.Bytes())
	if len(msgs) != 1 || msgs[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("messages = %+v", msgs)
	}
	var params publishDiagnosticsParams
	if err := json.Unmarshal(msgs[0].Params, &params); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	if params.URI != testURI || params.Version == nil || *params.Version != 3 {
		t.Fatalf("uri=%q version=%v", params.URI, params.Version)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", params.Diagnostics)
	}
	got := params.Diagnostics[0]
	if got.Range.Start != (position{Line: 1, Character: 0}) || got.Range.End != (position{Line: 1, Character: 3}) {
		t.Errorf("range = %+v", got.Range)
	}
	if got.Severity != 1 || got.Code != "SYN2003" || got.Source != "simpleparser" {
		t.Errorf("diagnostic = %+v", got)
	}
	if got.Message != "unexpected EOF, expected ';' received 'two'" {
		t.Errorf("message = %q", got.Message)
	}

	// закрытие документа очищает опубликованное
	out.Reset()
	closeParams, _ := json.Marshal(didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: testURI}})
	if err := server.handleDidClose(&rpcMessage{Params: closeParams}); err != nil {
		t.Fatal(err)
	}
	msgs = readAll(t, out.Bytes())
	if len(msgs) != 1 {
		t.Fatalf("expected clearing publish, got %d messages", len(msgs))
	}
	if err := json.Unmarshal(msgs[0].Params, &params); err != nil {
		t.Fatal(err)
	}
	if len(params.Diagnostics) != 0 {
		t.Errorf("diagnostics not cleared: %+v", params.Diagnostics)
	}
}

func TestStaleSnapshotIsDropped(t *testing.T) {
	server := NewServer(bytes.NewReader(nil), &bytes.Buffer{}, ServerOptions{Debounce: time.Hour})
	defer server.stopTimer()
	server.updateDocument(testURI, 1, func(string) string { return "a;" })
	server.mu.Lock()
	old := *server.docs[testURI]
	server.mu.Unlock()
	server.updateDocument(testURI, 2, func(string) string { return "b;" })

	if server.storeSnapshot(analyzeDocument(context.Background(), old, 10)) {
		t.Fatal("stale snapshot stored")
	}
	snap := server.snapshotFor(testURI)
	if snap == nil || snap.version != 2 || string(snap.file.Content) != "b;" {
		t.Fatalf("snapshotFor = %+v", snap)
	}
	if server.snapshotFor("file:///elsewhere.js") != nil {
		t.Error("snapshot for a closed document")
	}
}
