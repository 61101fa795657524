package mdsanitizer

import (
	"io"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML copies a tree parsed by golang.org/x/net/html into a new
// Document. A document node's children become the root's children;
// any other node becomes the root's only child.
func FromHTML(n *html.Node) *Document {
	return FromHTMLNodes([]*html.Node{n})
}

// FromHTMLNodes copies parsed nodes, such as the result of
// html.ParseFragment, into a new Document as children of its root.
func FromHTMLNodes(nodes []*html.Node) *Document {
	d := NewDocument()
	for _, n := range nodes {
		d.importNode(d.root, n)
	}
	return d
}

func (d *Document) importNode(parent NodeID, n *html.Node) {
	var id NodeID
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			d.importNode(parent, c)
		}
		return
	case html.ElementNode:
		attrs := make([]Attribute, 0, len(n.Attr))
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			attrs = append(attrs, Attribute{Key: strings.ToLower(key), Val: a.Val})
		}
		id = d.CreateElement(n.Data, attrs...)
	case html.TextNode, html.RawNode:
		// Raw nodes are rendered unescaped by html.Render, so they
		// come in as ordinary text.
		id = d.CreateText(n.Data)
	case html.CommentNode:
		id = d.CreateComment(n.Data)
	case html.DoctypeNode:
		id = d.CreateDoctype(n.Data)
	default:
		return
	}
	d.AppendChild(parent, id)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.importNode(id, c)
	}
}

// HTMLNodes converts the root's children back into
// golang.org/x/net/html nodes. Children of void elements are dropped
// since they cannot be rendered.
func (d *Document) HTMLNodes() []*html.Node {
	var out []*html.Node
	for _, c := range d.nodes[d.root].children {
		if n := d.exportNode(c); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (d *Document) exportNode(id NodeID) *html.Node {
	src := &d.nodes[id]
	n := &html.Node{Data: src.Data}
	switch src.Type {
	case ElementNode:
		n.Type = html.ElementNode
		n.DataAtom = atom.Lookup([]byte(src.Data))
		for _, a := range src.Attr {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		if isVoidElement(src.Data) {
			return n
		}
	case TextNode:
		n.Type = html.TextNode
	case CommentNode:
		n.Type = html.CommentNode
	case DoctypeNode:
		n.Type = html.DoctypeNode
	default:
		return nil
	}
	for _, c := range src.children {
		if cn := d.exportNode(c); cn != nil {
			n.AppendChild(cn)
		}
	}
	return n
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.HTMLNodes() {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// String returns the rendered document, or "" if rendering fails.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// SafeHTML sanitizes d under req and returns the result as a
// safehtml.HTML value.
func SafeHTML(d *Document, req Request) safehtml.HTML {
	s := Sanitize(d, req).String()
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s)
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"keygen", "link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}
