package mdsanitizer_test

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/njchilds90/mdsanitizer"
)

func parseFragment(s string) []*html.Node {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		panic(err)
	}
	return nodes
}

func ExampleSanitize() {
	doc := mdsanitizer.FromHTMLNodes(parseFragment(
		`<p onclick="x()"><marquee>Hello</marquee> <a href="javascript:alert(1)">world</a></p><script>bad()</script>`))
	mdsanitizer.Sanitize(doc, mdsanitizer.Request{})
	fmt.Println(doc)
	// Output: <p>Hello <a>world</a></p>
}

func ExampleSanitize_script() {
	const embed = `<iframe src="https://www.youtube.com/embed/x"></iframe><iframe src="https://example.org/"></iframe>`

	strict := mdsanitizer.FromHTMLNodes(parseFragment(embed))
	fmt.Println(mdsanitizer.Sanitize(strict, mdsanitizer.Request{}))

	approved := mdsanitizer.FromHTMLNodes(parseFragment(embed))
	fmt.Println(mdsanitizer.Sanitize(approved, mdsanitizer.Request{Script: true}))
	// Output:
	// <iframe src="https://www.youtube.com/embed/x" width="100%"></iframe>
	// <iframe src="https://www.youtube.com/embed/x"></iframe><iframe src="https://example.org/"></iframe>
}

func ExampleTransformerFunc() {
	rule := mdsanitizer.Strict.Derive(func(s *mdsanitizer.RuleSpec) {
		s.Transformers = append(s.Transformers, mdsanitizer.TransformerFunc(
			func(d *mdsanitizer.Document, id mdsanitizer.NodeID) mdsanitizer.Action {
				if d.Tag(id) == "a" {
					d.SetAttr(id, "rel", "nofollow")
				}
				return mdsanitizer.Keep
			}))
	})
	doc := mdsanitizer.FromHTMLNodes(parseFragment(`<a href="https://example.com">link</a>`))
	mdsanitizer.Sanitize(doc, mdsanitizer.Request{Rule: rule})
	fmt.Println(doc)
	// Output: <a href="https://example.com" rel="nofollow">link</a>
}
