package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praal/pearl/perl/parser"
)

func TestNew(t *testing.T) {
	d := New("file:///tmp/a.pl", 1, "my $x = 1;\nmy $y = 2;\n")
	assert.Equal(t, "file:///tmp/a.pl", d.URI())
	assert.Equal(t, int32(1), d.Version())
	assert.Equal(t, 3, d.LineCount())
}

func TestLineContent(t *testing.T) {
	d := New("u", 1, "first\nsecond\r\nthird")
	assert.Equal(t, "first", string(d.LineContent(0)))
	assert.Equal(t, "second", string(d.LineContent(1)))
	assert.Equal(t, "third", string(d.LineContent(2)))
	assert.Nil(t, d.LineContent(3))
	assert.Nil(t, d.LineContent(-1))
}

func TestOffsetAt(t *testing.T) {
	d := New("u", 1, "my $x = 1;\nmy $y = 2;\n")

	tests := []struct {
		name string
		pos  Position
		want int
	}{
		{"start", Position{0, 0}, 0},
		{"mid first line", Position{0, 3}, 3},
		{"second line", Position{1, 0}, 11},
		{"second line mid", Position{1, 3}, 14},
		{"past line end clamps", Position{0, 99}, 10},
		{"past buffer clamps", Position{9, 0}, 22},
		{"negative line", Position{-1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.OffsetAt(tt.pos))
		})
	}
}

func TestPositionAt(t *testing.T) {
	d := New("u", 1, "my $x = 1;\nmy $y = 2;\n")
	assert.Equal(t, Position{0, 0}, d.PositionAt(0))
	assert.Equal(t, Position{0, 9}, d.PositionAt(9))
	assert.Equal(t, Position{1, 0}, d.PositionAt(11))
	assert.Equal(t, Position{1, 3}, d.PositionAt(14))
	assert.Equal(t, Position{2, 0}, d.PositionAt(22))
	assert.Equal(t, Position{2, 0}, d.PositionAt(999))
}

func TestUTF16Positions(t *testing.T) {
	// "é" is two bytes, one UTF-16 unit; "😀" is four bytes, two units.
	d := New("u", 1, "my $café = \"😀\";\n")

	// After "my $café": 4 ASCII + "caf" + 2-byte é = byte 9, UTF-16 char 8.
	assert.Equal(t, Position{0, 8}, d.PositionAt(9))
	assert.Equal(t, 9, d.OffsetAt(Position{0, 8}))

	// The emoji starts at byte 13 (char 12) and takes two UTF-16 units.
	assert.Equal(t, Position{0, 12}, d.PositionAt(13))
	assert.Equal(t, 13, d.OffsetAt(Position{0, 12}))
	assert.Equal(t, Position{0, 14}, d.PositionAt(17))
	assert.Equal(t, 17, d.OffsetAt(Position{0, 14}))
}

func TestReplace(t *testing.T) {
	d := New("u", 1, "my $x = 1;\n")
	edit := d.Replace(2, 8, 9, "42")

	assert.Equal(t, "my $x = 42;\n", d.Text())
	assert.Equal(t, int32(2), d.Version())
	assert.Equal(t, parser.Edit{Start: 8, OldEnd: 9, NewEnd: 10}, edit)
}

func TestReplaceRange(t *testing.T) {
	d := New("u", 1, "my $x = 1;\nmy $y = 2;\n")
	edit := d.ReplaceRange(2, Position{1, 8}, Position{1, 9}, "20")

	assert.Equal(t, "my $x = 1;\nmy $y = 20;\n", d.Text())
	assert.Equal(t, parser.Edit{Start: 19, OldEnd: 20, NewEnd: 21}, edit)
}

func TestSetText(t *testing.T) {
	d := New("u", 1, "my $x = 1;\n")
	edit := d.SetText(5, "my $x = 100;\n")

	assert.Equal(t, int32(5), d.Version())
	assert.Equal(t, "my $x = 100;\n", d.Text())
	assert.Equal(t, 9, edit.Start)
}

func TestReplaceClampsBounds(t *testing.T) {
	d := New("u", 1, "abc")
	d.Replace(2, -5, 99, "xyz")
	assert.Equal(t, "xyz", d.Text())
}

func TestEditDrivesReparse(t *testing.T) {
	d := New("u", 1, "my $x = 1;\nmy $y = 2;\n")
	res := parser.Parse(d.Bytes(), d.URI())
	require.Zero(t, res.ErrorCount())

	edit := d.Replace(2, 19, 20, "42")
	inc := res.Reparse(d.Bytes(), edit)
	full := parser.Parse(d.Bytes(), d.URI())
	assert.Equal(t, full.DebugText(), inc.DebugText())
}

func TestSpanRange(t *testing.T) {
	d := New("u", 1, "my $x = 1;\nmy $y = 2;\n")
	res := parser.Parse(d.Bytes(), d.URI())
	stmt := res.Root.Children[1]
	start, end := d.SpanRange(stmt.Span)
	assert.Equal(t, Position{1, 0}, start)
	assert.Equal(t, Position{1, 10}, end)
}
