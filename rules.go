package mdsanitizer

import (
	"slices"

	"github.com/njchilds90/mdsanitizer/embed"
)

// Strict is the default rule. Since it runs at the end of the
// rendering pipeline it is intentionally weaker than a user-input
// filter: it keeps the elements and attributes earlier filters
// generate, and lets scripts and iframes through only when they match
// a registered embed.
var Strict = NewRuleSet(RuleSpec{
	Elements: []string{
		"a", "b", "blockquote", "br",
		"code",
		"dd", "del", "details", "div", "dl", "dt",
		"em",
		"font",
		"h1", "h2", "h3", "h4", "h5", "h6", "h7", "h8", "hr",
		"i", "img", "input", "ins",
		"kbd",
		"li",
		"ol",
		"p", "pre",
		"q",
		"rp", "rt", "ruby",
		"s", "samp", "script", "iframe", "span", "strike", "strong", "sub", "summary", "sup",
		"table", "tbody", "td", "tfoot", "th", "thead", "tr", "tt",
		"ul",
		"var",
	},
	Attributes: map[string][]string{
		"a": {
			"data-hovercard-target-name",
			"data-hovercard-target-type",
			"href",
			"rel",
		},
		"blockquote": embed.Default.Attributes("blockquote"),
		"iframe": concat([]string{
			"allowfullscreen",
			"frameborder",
			"height",
			"marginheight",
			"marginwidth",
			"scrolling",
			"src",
			"style",
			"width",
		}, embed.Default.Attributes("iframe")),
		"img":   {"src"},
		"input": {"checked", "disabled", "type"},
		"div":   {"itemscope", "itemtype"},
		"p":     embed.Default.Attributes("p"),
		"script": concat([]string{"async", "src", "type"}, embed.Default.Attributes("script")),
		"span":  {"style"},
		"td":    {"style"},
		"th":    {"style"},
		"video": {"src", "autoplay", "controls", "loop", "muted", "poster"},
		All: {
			"abbr", "align", "alt",
			"border",
			"cellpadding", "cellspacing", "cite", "class", "color", "cols", "colspan",
			"data-lang", "datetime",
			"height", "hreflang",
			"id", "itemprop",
			"lang",
			"name",
			"rowspan",
			"tabindex", "target", "title",
			"width",
		},
	},
	CSSProperties: []string{"text-align", "background-color"},
	Protocols: map[string]map[string][]string{
		"a":     {"href": {Relative, "http", "https", "mailto"}},
		"img":   {"src": {Relative, "http", "https"}},
		"video": {"src": {Relative, "http", "https"}, "poster": {Relative, "http", "https"}},
	},
	RemoveContents: []string{
		"iframe", "math", "noembed", "noframes", "noscript",
		"plaintext", "script", "style", "svg", "xmp",
	},
	Transformers: []Transformer{
		StripInvalidNode,
		FilterScript,
		FilterIframe,
	},
})

// Scriptable is Strict for documents whose embeds were approved
// upstream: it additionally allows data-* attributes everywhere and
// self-hosted video, and stops filtering scripts and iframes.
var Scriptable = Strict.Derive(func(s *RuleSpec) {
	s.Attributes[All] = append(s.Attributes[All], DataAttributes)
	s.Elements = append(s.Elements, "video")
	s.Transformers = slices.DeleteFunc(s.Transformers, func(t Transformer) bool {
		return t == FilterScript || t == FilterIframe
	})
})

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
