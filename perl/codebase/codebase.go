// Package codebase tracks open Perl documents and their parse trees on
// behalf of the language server. Edits route through the incremental
// engine; every mutation leaves the stored tree equal to a from-scratch
// parse of the buffer.
package codebase

import (
	"sync"

	"github.com/praal/pearl/perl/document"
	"github.com/praal/pearl/perl/parser"
)

// Change is one content change from a didChange notification. Whole
// replaces the entire buffer; otherwise [Start, End) is replaced by Text.
type Change struct {
	Whole bool
	Start document.Position
	End   document.Position
	Text  string
}

type openDocument struct {
	doc    *document.Document
	result *parser.Result
}

// Codebase owns every open document. Safe for concurrent use.
type Codebase struct {
	mu   sync.Mutex
	docs map[string]*openDocument
}

func New() *Codebase {
	return &Codebase{docs: map[string]*openDocument{}}
}

// Open registers a document and parses it.
func (c *Codebase) Open(uri string, version int32, text string) *parser.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := document.New(uri, version, text)
	result := parser.Parse(doc.Bytes(), uri)
	c.docs[uri] = &openDocument{doc: doc, result: result}
	return result
}

// Apply applies a didChange batch in order and reparses incrementally.
// It returns nil when the document is not open.
func (c *Codebase) Apply(uri string, version int32, changes []Change) *parser.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	od, ok := c.docs[uri]
	if !ok {
		return nil
	}
	for _, change := range changes {
		var edit parser.Edit
		if change.Whole {
			edit = od.doc.SetText(version, change.Text)
		} else {
			edit = od.doc.ReplaceRange(version, change.Start, change.End, change.Text)
		}
		od.result = od.result.Reparse(od.doc.Bytes(), edit)
	}
	return od.result
}

// Replace substitutes the whole buffer, as didSave with text does.
func (c *Codebase) Replace(uri string, version int32, text string) *parser.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	od, ok := c.docs[uri]
	if !ok {
		return nil
	}
	edit := od.doc.SetText(version, text)
	od.result = od.result.Reparse(od.doc.Bytes(), edit)
	return od.result
}

// Close forgets a document.
func (c *Codebase) Close(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, uri)
}

// Document returns the live buffer for uri, or nil.
func (c *Codebase) Document(uri string) *document.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if od, ok := c.docs[uri]; ok {
		return od.doc
	}
	return nil
}

// Result returns the current parse for uri, or nil.
func (c *Codebase) Result(uri string) *parser.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if od, ok := c.docs[uri]; ok {
		return od.result
	}
	return nil
}

// Len reports how many documents are open.
func (c *Codebase) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}
