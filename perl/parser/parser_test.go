package parser

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Result {
	t.Helper()
	res := Parse([]byte(input), "test.pl")
	if res.Root == nil {
		t.Fatal("Parse returned nil root")
	}
	return res
}

func parseClean(t *testing.T, input string) *Result {
	t.Helper()
	res := mustParse(t, input)
	if res.ErrorCount() != 0 {
		t.Fatalf("unexpected errors parsing %q:\n%v\n%s", input, res.Diagnostics, res.Root.String())
	}
	return res
}

func findKind(root *Node, kind NodeKind) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func countKind(root *Node, kind NodeKind) int {
	count := 0
	root.Walk(func(n *Node) bool {
		if n.Kind == kind {
			count++
		}
		return true
	})
	return count
}

func TestParseDivision(t *testing.T) {
	res := parseClean(t, "my $x = 10 / 2;\n")
	if len(res.Root.Children) != 1 {
		t.Fatalf("statements = %d, want 1", len(res.Root.Children))
	}
	decl := res.Root.Children[0]
	if decl.Kind != KindVarDecl {
		t.Fatalf("statement kind = %v, want VarDecl", decl.Kind)
	}
	bin := findKind(decl, KindBinaryExpr)
	if bin == nil {
		t.Fatal("no BinaryExpr for the division")
	}
	if bin.Token == nil || bin.Token.Literal != "/" {
		t.Errorf("operator = %v, want /", bin.Token)
	}
	if findKind(decl, KindRegexMatch) != nil {
		t.Error("division must not parse as a regex")
	}
}

func TestParseSplitRegex(t *testing.T) {
	res := parseClean(t, "split / /, $s;\n")
	call := findKind(res.Root, KindCall)
	if call == nil {
		t.Fatal("no Call node")
	}
	if findKind(call, KindRegexMatch) == nil {
		t.Error("slash after split must parse as a regex")
	}
}

func TestParseHeredocStatement(t *testing.T) {
	input := "my $x = <<EOF;\nhello\nEOF\n"
	res := parseClean(t, input)
	heredoc := findKind(res.Root, KindHeredocString)
	if heredoc == nil {
		t.Fatal("no HeredocString node")
	}
	if heredoc.Token.Heredoc == nil || heredoc.Token.Heredoc.Body != "hello\n" {
		t.Fatalf("heredoc body = %+v, want %q", heredoc.Token.Heredoc, "hello\n")
	}
	// The node's span covers the body lines.
	if heredoc.Span.End.Offset < 21 {
		t.Errorf("heredoc span end = %d, want >= 21", heredoc.Span.End.Offset)
	}
	stmt := res.Root.Children[0]
	if stmt.Span.End.Offset < heredoc.Span.End.Offset {
		t.Errorf("statement span %d..%d does not cover the heredoc body",
			stmt.Span.Start.Offset, stmt.Span.End.Offset)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	res := mustParse(t, "sub foo { my $x = ; }\nmy $y = 1;\n")
	if res.ErrorCount() == 0 {
		t.Fatal("expected at least one error")
	}
	if len(res.Root.Children) != 2 {
		t.Fatalf("statements = %d, want 2:\n%s", len(res.Root.Children), res.Root.String())
	}
	if res.Root.Children[0].Kind != KindSubDecl {
		t.Errorf("first statement = %v, want SubDecl", res.Root.Children[0].Kind)
	}
	if findKind(res.Root.Children[0], KindError) == nil {
		t.Error("broken declaration should contain an error node")
	}
	second := res.Root.Children[1]
	if second.Kind != KindVarDecl || findKind(second, KindError) != nil {
		t.Errorf("second statement must parse cleanly, got:\n%s", second.String())
	}
}

func TestParseConditionalChain(t *testing.T) {
	res := parseClean(t, "if ($x) { print \"a\"; } elsif ($y) { } else { }\n")
	cond := res.Root.Children[0]
	if cond.Kind != KindConditional {
		t.Fatalf("kind = %v, want Conditional", cond.Kind)
	}
	if countKind(cond, KindConditional) != 2 {
		t.Errorf("conditional nodes = %d, want 2 (if + elsif)", countKind(cond, KindConditional))
	}
	if countKind(cond, KindBlock) != 3 {
		t.Errorf("blocks = %d, want 3", countKind(cond, KindBlock))
	}
}

func TestParseLoops(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"while ($x) { last; }\n", KindLoop},
		{"until ($x) { next; }\n", KindLoop},
		{"foreach my $i (@xs) { }\n", KindForeach},
		{"for my $i (@xs) { }\n", KindForeach},
		{"foreach (@xs) { }\n", KindForeach},
		{"for (my $i = 0; $i < 10; $i++) { }\n", KindForC},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := parseClean(t, tt.input)
			if res.Root.Children[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", res.Root.Children[0].Kind, tt.kind)
			}
		})
	}
}

func TestParseStatementModifiers(t *testing.T) {
	tests := []string{
		"print \"hi\" if $ok;\n",
		"return unless $x;\n",
		"$i++ while $i < 10;\n",
		"print $_ for @xs;\n",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			res := parseClean(t, input)
			if findKind(res.Root, KindStatementModifier) == nil {
				t.Errorf("no StatementModifier in:\n%s", res.Root.String())
			}
		})
	}
}

func TestParsePackageAndUse(t *testing.T) {
	input := `package Foo::Bar;
use strict;
use warnings;
use POSIX qw(floor ceil);
use 5.010;
no warnings 'once';
require Exporter;
our $VERSION = '1.00';
`
	res := parseClean(t, input)
	if res.Root.Children[0].Kind != KindPackageDecl {
		t.Errorf("first = %v, want PackageDecl", res.Root.Children[0].Kind)
	}
	if countKind(res.Root, KindUseDecl) != 4 {
		t.Errorf("use decls = %d, want 4", countKind(res.Root, KindUseDecl))
	}
	if countKind(res.Root, KindNoDecl) != 1 {
		t.Errorf("no decls = %d, want 1", countKind(res.Root, KindNoDecl))
	}
	if countKind(res.Root, KindRequireDecl) != 1 {
		t.Errorf("require decls = %d, want 1", countKind(res.Root, KindRequireDecl))
	}
}

func TestParseSubDecl(t *testing.T) {
	res := parseClean(t, "sub greet {\n  my ($name) = @_;\n  return \"hi $name\";\n}\n")
	sub := res.Root.Children[0]
	if sub.Kind != KindSubDecl {
		t.Fatalf("kind = %v, want SubDecl", sub.Kind)
	}
	name := sub.FirstChildOfKind(KindIdentifier)
	if name == nil || name.TokenLiteral() != "greet" {
		t.Errorf("sub name = %v, want greet", name)
	}
	if findKind(sub, KindReturnStmt) == nil {
		t.Error("no ReturnStmt in sub body")
	}
}

func TestParseAnonymousStructures(t *testing.T) {
	res := parseClean(t, "my $h = { a => 1, b => 2 };\nmy $a = [1, 2, 3];\nmy $f = sub { return 1; };\n")
	if findKind(res.Root, KindHashLiteral) == nil {
		t.Error("no HashLiteral")
	}
	if findKind(res.Root, KindArrayLiteral) == nil {
		t.Error("no ArrayLiteral")
	}
	if findKind(res.Root, KindAnonSub) == nil {
		t.Error("no AnonSub")
	}
}

func TestParseBlockVersusHash(t *testing.T) {
	// Statement position: always a block.
	res := parseClean(t, "{ my $x = 1; }\n")
	if res.Root.Children[0].Kind != KindBlock {
		t.Errorf("statement brace = %v, want Block", res.Root.Children[0].Kind)
	}
	// map takes a block argument.
	res = parseClean(t, "my @out = map { $_ * 2 } @xs;\n")
	if findKind(res.Root, KindHashLiteral) != nil {
		t.Errorf("map block must not be a hash:\n%s", res.Root.String())
	}
	if findKind(res.Root, KindBlock) == nil {
		t.Error("map block missing")
	}
}

func TestParseSubscripts(t *testing.T) {
	res := parseClean(t, "$x[0] = $h{key};\n@slice[1, 2];\n$ref->[0]{name};\n")
	if findKind(res.Root, KindIndexExpr) == nil {
		t.Error("no IndexExpr")
	}
	if findKind(res.Root, KindKeyExpr) == nil {
		t.Error("no KeyExpr")
	}
	if findKind(res.Root, KindSliceExpr) == nil {
		t.Error("no SliceExpr")
	}
	if findKind(res.Root, KindDeref) == nil {
		t.Error("no Deref")
	}
}

func TestParseMethodChain(t *testing.T) {
	res := parseClean(t, "my $n = Foo::Bar->new(x => 1)->count;\n")
	if countKind(res.Root, KindMethodCall) != 2 {
		t.Errorf("method calls = %d, want 2:\n%s", countKind(res.Root, KindMethodCall), res.Root.String())
	}
}

func TestParsePrecedence(t *testing.T) {
	res := parseClean(t, "my $x = 1 + 2 * 3;\n")
	top := findKind(res.Root, KindBinaryExpr)
	if top == nil || top.Token.Literal != "+" {
		t.Fatalf("top operator = %v, want +", top)
	}
	inner := findKind(top.Children[1], KindBinaryExpr)
	if inner == nil || inner.Token.Literal != "*" {
		t.Errorf("right operand should be the multiplication:\n%s", top.String())
	}
}

func TestParseTernaryAndRange(t *testing.T) {
	res := parseClean(t, "my $v = $ok ? 1 : 0;\nmy @r = (1 .. 10);\n")
	if findKind(res.Root, KindTernaryExpr) == nil {
		t.Error("no TernaryExpr")
	}
	if findKind(res.Root, KindRangeExpr) == nil {
		t.Error("no RangeExpr")
	}
}

func TestParseWordOperators(t *testing.T) {
	res := parseClean(t, "open my $fh, '<', $path or die \"no: $!\";\n")
	bin := res.Root.Children[0].Children[0]
	if bin.Kind != KindBinaryExpr || bin.Token.Literal != "or" {
		t.Fatalf("top of statement = %v %q, want BinaryExpr or:\n%s",
			bin.Kind, bin.TokenLiteral(), res.Root.String())
	}
}

func TestParsePhaseBlock(t *testing.T) {
	res := parseClean(t, "BEGIN { print \"early\"; }\n")
	if res.Root.Children[0].Kind != KindPhaseBlock {
		t.Errorf("kind = %v, want PhaseBlock", res.Root.Children[0].Kind)
	}
}

func TestParseDataSection(t *testing.T) {
	res := parseClean(t, "my $x = 1;\n__END__\nfree text, not code ((\n")
	last := res.Root.Children[len(res.Root.Children)-1]
	if last.Kind != KindDataSection {
		t.Fatalf("last = %v, want DataSection", last.Kind)
	}
	if last.Span.End.Offset != len(res.Input()) {
		t.Errorf("data section must reach end of input")
	}
}

func TestParseTotality(t *testing.T) {
	inputs := []string{
		"",
		";;;",
		"\xff\xfe)))",
		"}}}{{{",
		"my my my",
		"if (((",
		"sub { sub { sub {",
		strings.Repeat("(", 200),
	}
	for _, input := range inputs {
		res := Parse([]byte(input), "test.pl")
		if res.Root == nil {
			t.Fatalf("nil root for %q", input)
		}
		if res.Root.Span.Start.Offset != 0 || res.Root.Span.End.Offset != len(input) {
			t.Errorf("root span %d..%d does not cover input %q (len %d)",
				res.Root.Span.Start.Offset, res.Root.Span.End.Offset, input, len(input))
		}
	}
}

func TestParseSpanInvariants(t *testing.T) {
	input := `package App;
use strict;

sub run {
    my ($self, @args) = @_;
    foreach my $arg (@args) {
        next if $arg =~ /^-/;
        print "arg: $arg\n";
    }
    return scalar @args;
}

my $text = <<EOT;
line one
line two
EOT
run(App->new, split / /, $text);
`
	res := parseClean(t, input)
	if !validateSpans(res.Root) {
		t.Fatalf("span invariants violated:\n%s", res.Root.StringWithPositions())
	}
}

func TestParseDeterminism(t *testing.T) {
	input := "my $x = 10 / 2;\nsub f { return $x if $x; }\nmy %h = (a => 1);\n"
	a := Parse([]byte(input), "test.pl")
	b := Parse([]byte(input), "test.pl")
	if a.DebugText() != b.DebugText() {
		t.Error("identical input produced different trees")
	}
	if len(a.Diagnostics) != len(b.Diagnostics) {
		t.Error("identical input produced different diagnostics")
	}
}

func TestParseDiagnosticsOrdered(t *testing.T) {
	res := mustParse(t, "my $ = ;\nmy $y = ;\n")
	for i := 1; i < len(res.Diagnostics); i++ {
		if res.Diagnostics[i].Span.Start.Offset < res.Diagnostics[i-1].Span.Start.Offset {
			t.Fatalf("diagnostics out of order: %v", res.Diagnostics)
		}
	}
}

func TestParseUnterminatedStringDiagnostic(t *testing.T) {
	res := mustParse(t, "my $s = \"never closed;\n")
	found := false
	for _, d := range res.Diagnostics {
		if strings.Contains(d.Message, "unterminated string") {
			found = true
		}
	}
	if !found {
		t.Errorf("no unterminated string diagnostic in %v", res.Diagnostics)
	}
}

func TestParseDeepNesting(t *testing.T) {
	inputs := []string{
		"$x = " + strings.Repeat("(", 3000),
		strings.Repeat("{", 2000),
		"$y = " + strings.Repeat("!", 1500) + "1;",
	}
	for _, input := range inputs {
		res := Parse([]byte(input), "test.pl")
		if res.ErrorCount() == 0 {
			t.Errorf("no errors for %d-byte input starting %q", len(input), input[:10])
		}
		if res.Root.Span.End.Offset != len(input) {
			t.Errorf("root span ends at %d, want %d", res.Root.Span.End.Offset, len(input))
		}
		found := false
		for _, d := range res.Diagnostics {
			if strings.Contains(d.Message, "nesting too deep") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no nesting diagnostic for input starting %q", input[:10])
		}
		// Rendering the tree must not blow the stack either.
		if res.Sexp() == "" {
			t.Errorf("empty sexp for input starting %q", input[:10])
		}
	}
}
