package fuzztests

import (
	"embed"
	"io/fs"
	"path"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

//go:embed testdata/*.js
var samples embed.FS

func addCorpusSeeds(f *testing.F) {
	addSampleSeeds(f)
	// минимальные примеры на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("let a = 1;\n"))
	f.Add([]byte("a = b = c\n"))
	f.Add([]byte("x.y.z(1, 'two', true)(null);"))
}

func addSampleSeeds(f *testing.F) {
	err := fs.WalkDir(samples, "testdata", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || path.Ext(p) != ".js" {
			return nil
		}
		src, err := samples.ReadFile(p)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
