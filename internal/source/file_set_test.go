package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.js", []byte("let a = 1;"), 0)
	if id1 != 0 {
		t.Fatalf("expected first FileID to be 0, got %d", id1)
	}
	// тот же путь, новое содержимое
	id2 := fs.Add("main.js", []byte("let a = 2;"), 0)
	if id2 != 1 {
		t.Fatalf("expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetLatest("main.js")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "let a = 1;" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Error("expected different hashes for different content")
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.js", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.js", []byte("let a;\nfoo(1);\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{5, LineCol{1, 6}},
		{6, LineCol{1, 7}}, // сам '\n'
		{7, LineCol{2, 1}},
		{10, LineCol{2, 4}},
		{15, LineCol{3, 1}},
		{16, LineCol{4, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.js", []byte("first\nsecond\n\nlast")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, ""},
		{4, "last"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.js", []byte("sum(a, b);")))
	if got := f.Text(Span{Start: 0, End: 3}); got != "sum" {
		t.Errorf("Text = %q, want sum", got)
	}
	if got := f.Text(Span{Start: 7, End: 100}); got != "b);" {
		t.Errorf("Text clamps end: got %q", got)
	}
	if got := f.Text(Span{Start: 4, End: 4}); got != "" {
		t.Errorf("empty span: got %q", got)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		raw       string
		want      string
		wantFlags FileFlags
	}{
		{"plain", "let a = 1;\n", "let a = 1;\n", 0},
		{"bom", "\xEF\xBB\xBFlet a;", "let a;", FileHadBOM},
		{"crlf", "a;\r\nb;\r\n", "a;\nb;\n", FileNormalizedCRLF},
		{"lone cr kept", "a;\rb;", "a;\rb;", 0},
		{"nfc", "let cafe\u0301 = 1;", "let caf\u00e9 = 1;", FileNormalizedNFC},
		{"all", "\xEF\xBB\xBF'e\u0301'\r\n", "'\u00e9'\n", FileHadBOM | FileNormalizedCRLF | FileNormalizedNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".js")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatal(err)
			}
			fs := NewFileSet()
			id, err := fs.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			f := fs.Get(id)
			if string(f.Content) != tt.want {
				t.Errorf("content = %q, want %q", f.Content, tt.want)
			}
			if f.Flags != tt.wantFlags {
				t.Errorf("flags = %b, want %b", f.Flags, tt.wantFlags)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.js")); err == nil {
		t.Fatal("expected error for missing file")
	} else if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadReader(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.LoadReader("<stdin>", strings.NewReader("a;\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	if f.DisplayPath("/anything") != "<stdin>" {
		t.Errorf("virtual files keep their name, got %q", f.DisplayPath("/anything"))
	}
}
