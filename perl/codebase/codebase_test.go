package codebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praal/pearl/perl/document"
	"github.com/praal/pearl/perl/parser"
)

const uri = "file:///tmp/test.pl"

func TestOpen(t *testing.T) {
	cb := New()
	result := cb.Open(uri, 1, "my $x = 1;\n")
	require.NotNil(t, result)
	assert.Zero(t, result.ErrorCount())
	assert.Equal(t, 1, cb.Len())
	assert.NotNil(t, cb.Document(uri))
	assert.Same(t, result, cb.Result(uri))
}

func TestApplyRangeChange(t *testing.T) {
	cb := New()
	cb.Open(uri, 1, "my $x = 1;\nmy $y = 2;\n")

	result := cb.Apply(uri, 2, []Change{{
		Start: document.Position{Line: 1, Character: 8},
		End:   document.Position{Line: 1, Character: 9},
		Text:  "42",
	}})
	require.NotNil(t, result)

	doc := cb.Document(uri)
	assert.Equal(t, "my $x = 1;\nmy $y = 42;\n", doc.Text())
	assert.Equal(t, int32(2), doc.Version())

	full := parser.Parse(doc.Bytes(), uri)
	assert.Equal(t, full.DebugText(), result.DebugText())
}

func TestApplyWholeChange(t *testing.T) {
	cb := New()
	cb.Open(uri, 1, "my $x = 1;\n")

	result := cb.Apply(uri, 2, []Change{{Whole: true, Text: "sub f { return 7; }\n"}})
	require.NotNil(t, result)
	assert.Equal(t, "sub f { return 7; }\n", cb.Document(uri).Text())

	full := parser.Parse(cb.Document(uri).Bytes(), uri)
	assert.Equal(t, full.DebugText(), result.DebugText())
}

func TestApplyBatch(t *testing.T) {
	cb := New()
	cb.Open(uri, 1, "my $x = 1;\nmy $y = 2;\nmy $z = 3;\n")

	result := cb.Apply(uri, 2, []Change{
		{
			Start: document.Position{Line: 0, Character: 8},
			End:   document.Position{Line: 0, Character: 9},
			Text:  "10",
		},
		{
			Start: document.Position{Line: 2, Character: 8},
			End:   document.Position{Line: 2, Character: 9},
			Text:  "30",
		},
	})
	require.NotNil(t, result)

	doc := cb.Document(uri)
	assert.Equal(t, "my $x = 10;\nmy $y = 2;\nmy $z = 30;\n", doc.Text())
	full := parser.Parse(doc.Bytes(), uri)
	assert.Equal(t, full.DebugText(), result.DebugText())
}

func TestApplyIntroducesAndFixesError(t *testing.T) {
	cb := New()
	cb.Open(uri, 1, "my $x = 1;\n")

	broken := cb.Apply(uri, 2, []Change{{
		Start: document.Position{Line: 0, Character: 8},
		End:   document.Position{Line: 0, Character: 9},
		Text:  "",
	}})
	require.NotNil(t, broken)
	assert.NotZero(t, broken.ErrorCount())

	fixed := cb.Apply(uri, 3, []Change{{
		Start: document.Position{Line: 0, Character: 8},
		End:   document.Position{Line: 0, Character: 8},
		Text:  "1",
	}})
	require.NotNil(t, fixed)
	assert.Zero(t, fixed.ErrorCount())
}

func TestApplyUnknownDocument(t *testing.T) {
	cb := New()
	assert.Nil(t, cb.Apply("file:///nope.pl", 1, []Change{{Whole: true, Text: "1;\n"}}))
}

func TestClose(t *testing.T) {
	cb := New()
	cb.Open(uri, 1, "my $x = 1;\n")
	cb.Close(uri)
	assert.Zero(t, cb.Len())
	assert.Nil(t, cb.Document(uri))
	assert.Nil(t, cb.Result(uri))
}

func TestReplace(t *testing.T) {
	cb := New()
	cb.Open(uri, 1, "my $x = 1;\n")
	result := cb.Replace(uri, 2, "my $x = 2;\n")
	require.NotNil(t, result)
	assert.Zero(t, result.ErrorCount())
	assert.Equal(t, "my $x = 2;\n", cb.Document(uri).Text())
}

func TestNewLSPServer(t *testing.T) {
	ls := NewLSPServer("1.0.0")
	require.NotNil(t, ls)
	require.NotNil(t, ls.codebase)
}
