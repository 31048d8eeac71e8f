package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Heredoc  string      `json:"heredoc,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

type jsonDiagnostic struct {
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Span     jsonSpan `json:"span"`
	Fix      string   `json:"fix,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: toJSONPosition(n.Span.Start),
			End:   toJSONPosition(n.Span.End),
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
		if n.Token.Heredoc != nil {
			jn.Heredoc = n.Token.Heredoc.Body
		}
	}

	if n.Error != nil {
		jn.Error = &jsonError{
			Message: n.Error.Message,
		}
		for _, exp := range n.Error.Expected {
			jn.Error.Expected = append(jn.Error.Expected, exp.String())
		}
		if n.Error.Got != nil {
			jn.Error.Got = n.Error.Got.Literal
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

func toJSONPosition(p Position) jsonPosition {
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// MarshalJSON renders the result as {"tree": ..., "diagnostics": [...]}.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Tree        *jsonNode        `json:"tree"`
		Diagnostics []jsonDiagnostic `json:"diagnostics"`
	}{
		Diagnostics: []jsonDiagnostic{},
	}
	if r.Root != nil {
		out.Tree = r.Root.toJSON()
	}
	for _, d := range r.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			Severity: d.Severity.String(),
			Message:  d.Message,
			Span:     jsonSpan{Start: toJSONPosition(d.Span.Start), End: toJSONPosition(d.Span.End)},
			Fix:      d.Fix,
		})
	}
	return json.Marshal(out)
}
