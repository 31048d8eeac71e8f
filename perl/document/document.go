// Package document owns source buffers on behalf of editors and the
// language server. A Document applies byte-range edits, maintains a
// line-start index, and converts between byte offsets and the UTF-16
// line/character positions LSP clients speak. The parser itself works in
// bytes only; this package is the encoding boundary.
package document

import (
	"unicode/utf8"

	"github.com/praal/pearl/perl/parser"
)

// Position is a zero-based line and UTF-16 character pair, matching the
// LSP wire representation.
type Position struct {
	Line      int
	Character int
}

// Document is one open source buffer. Content is authoritative; the line
// index is rebuilt on every edit.
type Document struct {
	uri     string
	version int32
	content []byte

	// Byte offset of the start of each line. lineStarts[0] is always 0;
	// for n lines the slice has n entries.
	lineStarts []int
}

func New(uri string, version int32, text string) *Document {
	d := &Document{uri: uri, version: version, content: []byte(text)}
	d.reindex()
	return d
}

func (d *Document) URI() string    { return d.uri }
func (d *Document) Version() int32 { return d.version }
func (d *Document) Bytes() []byte  { return d.content }
func (d *Document) Text() string   { return string(d.content) }
func (d *Document) LineCount() int { return len(d.lineStarts) }

// SetText replaces the whole buffer, as a non-incremental didChange does.
func (d *Document) SetText(version int32, text string) parser.Edit {
	old := d.content
	d.content = []byte(text)
	d.version = version
	d.reindex()
	return parser.ComputeEdit(old, d.content)
}

// Replace substitutes bytes [start, end) with text and returns the
// corresponding parser edit. Out-of-range bounds are clamped.
func (d *Document) Replace(version int32, start, end int, text string) parser.Edit {
	start = clamp(start, 0, len(d.content))
	end = clamp(end, start, len(d.content))

	buf := make([]byte, 0, len(d.content)-(end-start)+len(text))
	buf = append(buf, d.content[:start]...)
	buf = append(buf, text...)
	buf = append(buf, d.content[end:]...)
	d.content = buf
	d.version = version
	d.reindex()

	return parser.Edit{Start: start, OldEnd: end, NewEnd: start + len(text)}
}

// ReplaceRange is Replace with LSP positions instead of byte offsets.
func (d *Document) ReplaceRange(version int32, start, end Position, text string) parser.Edit {
	so := d.OffsetAt(start)
	eo := d.OffsetAt(end)
	if eo < so {
		so, eo = eo, so
	}
	return d.Replace(version, so, eo, text)
}

// LineContent returns line (zero-based) without its newline, or nil when
// out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 0 || line >= len(d.lineStarts) {
		return nil
	}
	start := d.lineStarts[line]
	end := len(d.content)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1]
	}
	for end > start && (d.content[end-1] == '\n' || d.content[end-1] == '\r') {
		end--
	}
	return d.content[start:end]
}

// OffsetAt converts an LSP position to a byte offset. Positions past the
// end of a line clamp to the line end; lines past the end of the buffer
// clamp to the buffer end. The character count is UTF-16 code units.
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lineStarts) {
		return len(d.content)
	}
	start := d.lineStarts[pos.Line]
	end := len(d.content)
	if pos.Line+1 < len(d.lineStarts) {
		end = d.lineStarts[pos.Line+1]
	}

	units := 0
	off := start
	for off < end && units < pos.Character {
		b := d.content[off]
		if b == '\n' {
			break
		}
		if b < utf8.RuneSelf {
			units++
			off++
			continue
		}
		r, size := utf8.DecodeRune(d.content[off:end])
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		off += size
	}
	return off
}

// PositionAt converts a byte offset to an LSP position. Offsets inside a
// multi-byte rune snap to the rune start.
func (d *Document) PositionAt(offset int) Position {
	offset = clamp(offset, 0, len(d.content))
	line := d.lineFor(offset)
	start := d.lineStarts[line]

	units := 0
	off := start
	for off < offset {
		b := d.content[off]
		if b < utf8.RuneSelf {
			units++
			off++
			continue
		}
		r, size := utf8.DecodeRune(d.content[off:])
		if off+size > offset {
			break
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		off += size
	}
	return Position{Line: line, Character: units}
}

// SpanRange converts a parser span to an LSP start/end position pair.
func (d *Document) SpanRange(span parser.Span) (Position, Position) {
	return d.PositionAt(span.Start.Offset), d.PositionAt(span.End.Offset)
}

func (d *Document) lineFor(offset int) int {
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (d *Document) reindex() {
	d.lineStarts = d.lineStarts[:0]
	d.lineStarts = append(d.lineStarts, 0)
	for i, b := range d.content {
		if b == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
