// Package xmldoc is a small read-only view over parsed XML report exports.
//
// Parsers only need tag lookups over descendants and attribute reads, so the
// underlying tree library stays behind the Element interface.
package xmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
)

// ErrMalformedDocument is returned when the input is not well-formed XML
var ErrMalformedDocument = errors.New("malformed document")

// parserErrorTag is the marker element some exporters embed when they fail.
const parserErrorTag = "parsererror"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Element is one node of a parsed document.
type Element interface {
	Tag() string
	// Attr returns the attribute value, or "" when absent.
	Attr(name string) string
	HasAttr(name string) bool
	// FindAll returns all descendants with the tag, in document order.
	FindAll(tag string) []Element
	// First returns the first descendant with the tag, or nil.
	First(tag string) Element
}

// Document is a parsed report. Searches on a Document include the root element.
type Document interface {
	Element
	Root() Element
	// RootAttr reads an attribute of the root element.
	RootAttr(name string) string
}

// Parse reads an XML report. Single-byte legacy encodings declared in the
// prolog are decoded; anything else is rejected as malformed.
func Parse(data []byte) (Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader

	if err := doc.ReadFromBytes(bytes.TrimPrefix(data, utf8BOM)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}

	d := &document{node: node{el: &doc.Element}}
	if d.First(parserErrorTag) != nil {
		return nil, fmt.Errorf("%w: document carries a parser error marker", ErrMalformedDocument)
	}
	return d, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}

type node struct {
	el *etree.Element
}

func (n node) Tag() string {
	return n.el.Tag
}

func (n node) Attr(name string) string {
	return n.el.SelectAttrValue(name, "")
}

func (n node) HasAttr(name string) bool {
	return n.el.SelectAttr(name) != nil
}

func (n node) FindAll(tag string) []Element {
	var out []Element
	walk(n.el, func(el *etree.Element) bool {
		if el.Tag == tag {
			out = append(out, node{el: el})
		}
		return true
	})
	return out
}

func (n node) First(tag string) Element {
	var found Element
	walk(n.el, func(el *etree.Element) bool {
		if el.Tag == tag {
			found = node{el: el}
			return false
		}
		return true
	})
	return found
}

// walk visits descendants of el in document order until visit returns false.
func walk(el *etree.Element, visit func(*etree.Element) bool) bool {
	for _, child := range el.ChildElements() {
		if !visit(child) || !walk(child, visit) {
			return false
		}
	}
	return true
}

type document struct {
	node
}

func (d *document) Root() Element {
	for _, child := range d.el.ChildElements() {
		return node{el: child}
	}
	return nil
}

func (d *document) RootAttr(name string) string {
	root := d.Root()
	if root == nil {
		return ""
	}
	return root.Attr(name)
}
