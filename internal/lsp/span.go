package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"simpleparser/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// lineBounds returns the byte range of a 0-based line, without its newline.
func lineBounds(file *source.File, line int) (start, end uint32) {
	contentLen := safeUint32(len(file.Content))
	if line > 0 {
		start = file.LineIdx[line-1] + 1
	}
	end = contentLen
	if line < len(file.LineIdx) {
		end = file.LineIdx[line]
	}
	return start, end
}

func offsetForPositionInFile(file *source.File, pos position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 || len(file.Content) == 0 {
		return 0
	}
	if pos.Line > len(file.LineIdx) {
		return safeUint32(len(file.Content))
	}
	off, lineEnd := lineBounds(file, pos.Line)
	units := 0
	for off < lineEnd && units < pos.Character {
		r, size := utf8.DecodeRune(file.Content[off:lineEnd])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += safeUint32(size)
	}
	return off
}

func positionForOffsetInFile(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	if contentLen := safeUint32(len(file.Content)); offset > contentLen {
		offset = contentLen
	}
	// номер строки = число '\n' строго до offset
	line := sort.Search(len(file.LineIdx), func(i int) bool { return file.LineIdx[i] >= offset })
	lineStart, _ := lineBounds(file, line)
	units := 0
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return position{Line: line, Character: units}
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	return lspRange{
		Start: positionForOffsetInFile(file, span.Start),
		End:   positionForOffsetInFile(file, span.End),
	}
}

func spanForRange(file *source.File, rng lspRange) source.Span {
	if file == nil {
		return source.Span{}
	}
	start := offsetForPositionInFile(file, rng.Start)
	end := offsetForPositionInFile(file, rng.End)
	if end < start {
		end = start
	}
	return source.Span{File: file.ID, Start: start, End: end}
}

func lineForOffset(file *source.File, offset uint32) int {
	return positionForOffsetInFile(file, offset).Line
}
