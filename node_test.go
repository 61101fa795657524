package mdsanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mdsanitizer"
	"github.com/njchilds90/mdsanitizer/internal/testutil"
)

func TestDocument_Unwrap(t *testing.T) {
	d := testutil.Parse(t, `<p>a<span>b<i>c</i></span>d</p>`)
	p := d.Children(d.Root())[0]
	span := d.Children(p)[1]
	require.Equal(t, "span", d.Tag(span))

	d.Unwrap(span)
	assert.Equal(t, `<p>ab<i>c</i>d</p>`, testutil.Render(t, d))
	assert.Equal(t, mdsanitizer.NoNode, d.Parent(span))
	assert.Empty(t, d.Children(span))
	for _, c := range d.Children(p) {
		assert.Equal(t, p, d.Parent(c))
	}

	// Detached nodes are left alone.
	d.Unwrap(span)
	d.Remove(span)
	assert.Equal(t, `<p>ab<i>c</i>d</p>`, testutil.Render(t, d))
}

func TestDocument_Remove(t *testing.T) {
	d := testutil.Parse(t, `<p>a<b>b</b>c</p>`)
	p := d.Children(d.Root())[0]
	b := d.Children(p)[1]

	d.Remove(b)
	assert.Equal(t, `<p>ac</p>`, testutil.Render(t, d))

	d.AppendChild(d.Root(), b)
	assert.Equal(t, `<p>ac</p><b>b</b>`, testutil.Render(t, d))
	assert.Equal(t, d.Root(), d.Parent(b))
}

func TestDocument_AppendChildMoves(t *testing.T) {
	d := mdsanitizer.NewDocument()
	a := d.CreateElement("DIV")
	b := d.CreateElement("span")
	txt := d.CreateText("x")
	d.Append(d.Root(), d.Append(a, txt), b)
	d.AppendChild(b, txt)

	assert.Equal(t, "div", d.Tag(a))
	assert.Empty(t, d.Children(a))
	assert.Equal(t, `<div></div><span>x</span>`, d.String())
}

func TestDocument_Attrs(t *testing.T) {
	d := mdsanitizer.NewDocument()
	n := d.CreateElement("a")
	d.SetAttr(n, "href", "https://example.com")
	v, ok := d.Attr(n, "href")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", v)

	d.SetAttr(n, "href", "https://other.com")
	v, _ = d.Attr(n, "href")
	assert.Equal(t, "https://other.com", v)

	d.RemoveAttr(n, "href")
	_, ok = d.Attr(n, "href")
	assert.False(t, ok)
}

func TestDocument_HasAncestor(t *testing.T) {
	d := testutil.Parse(t, `<ul><li><p><b>x</b></p></li></ul>`)
	var b mdsanitizer.NodeID
	d.Walk(func(id mdsanitizer.NodeID) bool {
		if d.Tag(id) == "b" {
			b = id
		}
		return true
	})
	assert.True(t, d.HasAncestor(b, "ol", "ul"))
	assert.False(t, d.HasAncestor(b, "table"))
}

func TestDocument_NodeAndAncestors(t *testing.T) {
	d := mdsanitizer.NewDocument()
	ul := d.CreateElement("UL")
	li := d.CreateElement("li", mdsanitizer.Attribute{Key: "class", Val: "x"})
	text := d.CreateText("item")
	d.Append(d.Root(), d.Append(ul, d.Append(li, text)))

	n := d.Node(li)
	assert.Equal(t, mdsanitizer.ElementNode, n.Type)
	assert.Equal(t, "li", n.Data)
	assert.Equal(t, []mdsanitizer.Attribute{{Key: "class", Val: "x"}}, n.Attr)
	n.Attr[0].Val = "changed"
	v, _ := d.Attr(li, "class")
	assert.Equal(t, "x", v)

	assert.Equal(t, mdsanitizer.TextNode, d.Node(text).Type)
	assert.Equal(t, "item", d.Node(text).Data)
	assert.Equal(t, []mdsanitizer.NodeID{li, ul, d.Root()}, d.Ancestors(text))
	assert.Empty(t, d.Ancestors(d.Root()))

	d.Remove(li)
	assert.Empty(t, d.Ancestors(li))
	assert.Equal(t, []mdsanitizer.NodeID{li}, d.Ancestors(text))
}

func TestDocument_RenderVoidChildren(t *testing.T) {
	d := mdsanitizer.NewDocument()
	br := d.CreateElement("br")
	d.Append(d.Root(), d.Append(br, d.CreateText("lost")))
	assert.Equal(t, `<br/>`, testutil.Render(t, d))
}

func TestFromHTML_RawAndDoctype(t *testing.T) {
	d := testutil.Parse(t, `<!-- c --><p>x</p>`)
	assert.Equal(t, mdsanitizer.CommentNode, d.Type(d.Children(d.Root())[0]))
	assert.Equal(t, `<!-- c --><p>x</p>`, testutil.Render(t, d))
}
