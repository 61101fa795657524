package mdsanitizer

import (
	"slices"
	"strings"
)

// NodeID identifies a node inside a [Document].
type NodeID int

// NoNode is the parent of the root and of detached nodes.
const NoNode NodeID = -1

// A NodeType is the kind of a [Node].
type NodeType uint8

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

// Attribute is a single element attribute.
type Attribute struct {
	Key string
	Val string
}

// Node is one entry of a Document's arena. Nodes reference each other
// by NodeID, so splicing a node out of its parent never invalidates
// the IDs held by a caller.
type Node struct {
	Type NodeType
	// Data is the lower-cased tag name for elements and the raw
	// character data for text and comment nodes.
	Data string
	Attr []Attribute

	parent   NodeID
	children []NodeID
}

// Document is a mutable, arena-backed HTML tree.
//
// A Document is not safe for concurrent use. Callers sanitizing
// several documents at once must give each call its own Document.
type Document struct {
	nodes []Node
	root  NodeID
}

// NewDocument returns an empty document holding only its root.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.add(Node{Type: DocumentNode})
	return d
}

// Root returns the ID of the document node.
func (d *Document) Root() NodeID { return d.root }

func (d *Document) add(n Node) NodeID {
	n.parent = NoNode
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// CreateElement adds a detached element to the arena.
func (d *Document) CreateElement(tag string, attrs ...Attribute) NodeID {
	return d.add(Node{
		Type: ElementNode,
		Data: strings.ToLower(tag),
		Attr: slices.Clone(attrs),
	})
}

// CreateText adds a detached text node to the arena.
func (d *Document) CreateText(text string) NodeID {
	return d.add(Node{Type: TextNode, Data: text})
}

// CreateComment adds a detached comment node to the arena.
func (d *Document) CreateComment(text string) NodeID {
	return d.add(Node{Type: CommentNode, Data: text})
}

// CreateDoctype adds a detached doctype node to the arena.
func (d *Document) CreateDoctype(name string) NodeID {
	return d.add(Node{Type: DoctypeNode, Data: name})
}

// AppendChild makes child the last child of parent,
// detaching it from any previous parent first.
func (d *Document) AppendChild(parent, child NodeID) {
	d.Remove(child)
	d.nodes[parent].children = append(d.nodes[parent].children, child)
	d.nodes[child].parent = parent
}

// Append is a convenience for building trees: it appends each child
// to parent and returns parent.
func (d *Document) Append(parent NodeID, children ...NodeID) NodeID {
	for _, c := range children {
		d.AppendChild(parent, c)
	}
	return parent
}

// Type returns the type of the node.
func (d *Document) Type(id NodeID) NodeType { return d.nodes[id].Type }

// Tag returns the tag name of an element, or "" for any other node.
func (d *Document) Tag(id NodeID) string {
	if d.nodes[id].Type != ElementNode {
		return ""
	}
	return d.nodes[id].Data
}

// Data returns the node's raw data: the tag name of an element,
// the text of a text or comment node.
func (d *Document) Data(id NodeID) string { return d.nodes[id].Data }

// Parent returns the node's parent, or NoNode.
func (d *Document) Parent(id NodeID) NodeID { return d.nodes[id].parent }

// Children returns a copy of the node's child list.
func (d *Document) Children(id NodeID) []NodeID {
	return slices.Clone(d.nodes[id].children)
}

// Attrs returns a copy of the element's attributes in document order.
func (d *Document) Attrs(id NodeID) []Attribute {
	return slices.Clone(d.nodes[id].Attr)
}

// Attr returns the value of the named attribute.
func (d *Document) Attr(id NodeID, key string) (string, bool) {
	for _, a := range d.nodes[id].Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets (or adds) the attribute key=val on the element.
func (d *Document) SetAttr(id NodeID, key, val string) {
	n := &d.nodes[id]
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attribute{Key: key, Val: val})
}

// RemoveAttr removes the named attribute if present.
func (d *Document) RemoveAttr(id NodeID, key string) {
	n := &d.nodes[id]
	n.Attr = slices.DeleteFunc(n.Attr, func(a Attribute) bool { return a.Key == key })
}

func (d *Document) setAttrs(id NodeID, attrs []Attribute) {
	d.nodes[id].Attr = attrs
}

// index reports the position of id in its parent's child list.
func (d *Document) index(id NodeID) int {
	p := d.nodes[id].parent
	if p == NoNode {
		return -1
	}
	return slices.Index(d.nodes[p].children, id)
}

// Remove detaches the node, together with its subtree, from its parent.
// Removing a detached node is a no-op.
func (d *Document) Remove(id NodeID) {
	i := d.index(id)
	if i < 0 {
		return
	}
	p := d.nodes[id].parent
	d.nodes[p].children = slices.Delete(d.nodes[p].children, i, i+1)
	d.nodes[id].parent = NoNode
}

// Unwrap replaces the node with its children, spliced into the
// parent at the node's position. The node itself ends up detached
// and childless. Unwrapping a detached node is a no-op.
func (d *Document) Unwrap(id NodeID) {
	i := d.index(id)
	if i < 0 {
		return
	}
	p := d.nodes[id].parent
	kids := d.nodes[id].children
	for _, c := range kids {
		d.nodes[c].parent = p
	}
	d.nodes[p].children = slices.Replace(d.nodes[p].children, i, i+1, kids...)
	d.nodes[id].children = nil
	d.nodes[id].parent = NoNode
}

// RemoveChildren detaches every child of the node.
func (d *Document) RemoveChildren(id NodeID) {
	for _, c := range d.nodes[id].children {
		d.nodes[c].parent = NoNode
	}
	d.nodes[id].children = nil
}

// Node returns a copy of the node. Changing the copy does not change
// the document.
func (d *Document) Node(id NodeID) Node {
	n := d.nodes[id]
	n.Attr = slices.Clone(n.Attr)
	n.children = slices.Clone(n.children)
	return n
}

// Ancestors returns the ancestors of the node, nearest first, ending
// with the root. A detached node has none.
func (d *Document) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := d.nodes[id].parent; p != NoNode; p = d.nodes[p].parent {
		out = append(out, p)
	}
	return out
}

// HasAncestor reports whether any ancestor of the node is an element
// with one of the given tag names.
func (d *Document) HasAncestor(id NodeID, tags ...string) bool {
	for p := d.nodes[id].parent; p != NoNode; p = d.nodes[p].parent {
		if d.nodes[p].Type == ElementNode && slices.Contains(tags, d.nodes[p].Data) {
			return true
		}
	}
	return false
}

// Walk calls fn for every node reachable from the root, in pre-order.
// If fn returns false the node's children are skipped.
func (d *Document) Walk(fn func(id NodeID) bool) {
	d.walk(d.root, fn)
}

func (d *Document) walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range d.nodes[id].children {
		d.walk(c, fn)
	}
}
