package parser

import (
	"strings"
	"testing"
)

func TestNodeKindNames(t *testing.T) {
	if KindProgram.String() != "Program" {
		t.Errorf("KindProgram = %q", KindProgram.String())
	}
	if KindError.String() != "Error" {
		t.Errorf("KindError = %q", KindError.String())
	}
	if NodeKind(9999).String() != "Unknown" {
		t.Errorf("out of range = %q", NodeKind(9999).String())
	}
}

func TestNodeFingerprintStable(t *testing.T) {
	input := "my $x = 1 + 2;\n"
	a := Parse([]byte(input), "a.pl")
	b := Parse([]byte(input), "b.pl")
	if a.Root.Fingerprint() != b.Root.Fingerprint() {
		t.Error("same content must fingerprint equally regardless of file")
	}

	c := Parse([]byte("my $x = 1 + 3;\n"), "a.pl")
	if a.Root.Fingerprint() == c.Root.Fingerprint() {
		t.Error("different content should fingerprint differently")
	}
}

func TestNodeFingerprintIgnoresSpans(t *testing.T) {
	// Same statement at different offsets: same fingerprint.
	a := Parse([]byte("my $x = 1;\n"), "t.pl")
	b := Parse([]byte("\n\n\nmy $x = 1;\n"), "t.pl")
	if a.Root.Children[0].Fingerprint() != b.Root.Children[0].Fingerprint() {
		t.Error("fingerprint must not depend on position")
	}
}

func TestNodeEqual(t *testing.T) {
	a := Parse([]byte("my $x = 1;\n"), "t.pl")
	b := Parse([]byte("   my $x = 1;\n"), "t.pl")
	c := Parse([]byte("my $y = 1;\n"), "t.pl")
	if !a.Root.Equal(b.Root) {
		t.Error("shifted copies should be Equal")
	}
	if a.Root.Equal(c.Root) {
		t.Error("different variables should not be Equal")
	}
}

func TestNodeAt(t *testing.T) {
	input := "my $x = 10 / 2;\n"
	res := Parse([]byte(input), "t.pl")

	n := res.Root.NodeAt(strings.Index(input, "10"))
	if n == nil || n.Kind != KindNumberLiteral {
		t.Fatalf("NodeAt(10) = %v, want NumberLiteral", n)
	}
	if n.TokenLiteral() != "10" {
		t.Errorf("literal = %q, want 10", n.TokenLiteral())
	}

	if res.Root.NodeAt(-1) != nil {
		t.Error("NodeAt(-1) should be nil")
	}
	if res.Root.NodeAt(len(input)+5) != nil {
		t.Error("NodeAt past end should be nil")
	}
}

func TestNodeWalkPrune(t *testing.T) {
	res := Parse([]byte("sub f { my $x = 1; }\n"), "t.pl")
	depth0 := 0
	res.Root.Walk(func(n *Node) bool {
		depth0++
		return n.Kind == KindProgram // descend only one level
	})
	if depth0 != 1+len(res.Root.Children) {
		t.Errorf("visited %d nodes, want %d", depth0, 1+len(res.Root.Children))
	}
}

func TestNodeString(t *testing.T) {
	res := Parse([]byte("my $x = 1;\n"), "t.pl")
	dump := res.Root.String()
	for _, want := range []string{"Program", "VarDecl", "Variable $x", "NumberLiteral 1"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
	withPos := res.Root.StringWithPositions()
	if !strings.Contains(withPos, "[1:1-") {
		t.Errorf("positions missing from dump:\n%s", withPos)
	}
}
