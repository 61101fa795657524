package mdsanitizer

import (
	"github.com/njchilds90/mdsanitizer/embed"
)

// An Action tells the engine what to do with the element a
// Transformer has just looked at.
type Action uint8

const (
	// Keep leaves the element in place and visits its children.
	Keep Action = iota
	// Unwrap replaces the element with its children, which are then
	// visited in turn.
	Unwrap
	// Remove drops the element and its subtree.
	Remove
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Unwrap:
		return "unwrap"
	case Remove:
		return "remove"
	}
	return "unknown"
}

// A Transformer encodes a rule the flat whitelist cannot express.
// The engine calls Transform for each element of the tree, in
// pre-order, after the whitelist pass. Transform may mutate the
// element's attributes and children before returning.
//
// Transformers must be stateless: a RuleSet shares them between
// concurrent calls.
type Transformer interface {
	Transform(d *Document, id NodeID) Action
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(d *Document, id NodeID) Action

func (f TransformerFunc) Transform(d *Document, id NodeID) Action { return f(d, id) }

// The built-in transformers.
var (
	StripInvalidNode Transformer = invalidNodeStripper{}
	FilterScript     Transformer = &ScriptFilter{Registry: embed.Default}
	FilterIframe     Transformer = &IframeFilter{Registry: embed.Default}
)

// invalidNodeStripper unwraps list items outside any list and table
// parts outside any table.
type invalidNodeStripper struct{}

func (invalidNodeStripper) Transform(d *Document, id NodeID) Action {
	switch d.Tag(id) {
	case "li":
		if !d.HasAncestor(id, "ul", "ol") {
			return Unwrap
		}
	case "thead", "tbody", "tfoot", "tr", "td", "th":
		if !d.HasAncestor(id, "table") {
			return Unwrap
		}
	}
	return Keep
}

// ScriptFilter keeps only scripts loading a registered embed script.
// A kept script loses its inline body and is marked async.
type ScriptFilter struct {
	Registry *embed.Registry
}

func (f *ScriptFilter) Transform(d *Document, id NodeID) Action {
	if d.Tag(id) != "script" {
		return Keep
	}
	src, _ := d.Attr(id, "src")
	if _, ok := f.Registry.ScriptProvider(src); !ok {
		return Remove
	}
	if _, ok := d.Attr(id, "async"); !ok {
		d.SetAttr(id, "async", "")
	}
	d.RemoveChildren(id)
	return Keep
}

// IframeFilter keeps only iframes served from a registered embed host.
// A kept iframe loses its fallback content and spans the full width.
type IframeFilter struct {
	Registry *embed.Registry
}

func (f *IframeFilter) Transform(d *Document, id NodeID) Action {
	if d.Tag(id) != "iframe" {
		return Keep
	}
	src, _ := d.Attr(id, "src")
	if _, ok := f.Registry.IframeProvider(src); !ok {
		return Remove
	}
	d.SetAttr(id, "width", "100%")
	d.RemoveChildren(id)
	return Keep
}
