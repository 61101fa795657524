package mdsanitizer

import (
	"maps"
	"slices"

	"github.com/microcosm-cc/bluemonday"
)

// Bluemonday returns a bluemonday policy approximating r, for callers
// that must re-check serialized HTML.
//
// The translation is lossy: bluemonday allows URL schemes per policy
// rather than per attribute, so the policy accepts the union of r's
// schemes on every URL attribute. bluemonday never emits script
// content, and transformers are not carried over.
func (r *RuleSet) Bluemonday() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(slices.Sorted(maps.Keys(r.elements))...)

	css := slices.Sorted(maps.Keys(r.css))
	for _, el := range slices.Sorted(maps.Keys(r.attributes)) {
		var names []string
		var style, data bool
		for name := range r.attributes[el] {
			switch name {
			case DataAttributes:
				data = true
			case "style":
				style = true
			default:
				names = append(names, name)
			}
		}
		slices.Sort(names)
		if data {
			p.AllowDataAttributes()
		}
		if el == All {
			if len(names) > 0 {
				p.AllowAttrs(names...).Globally()
			}
			if style && len(css) > 0 {
				p.AllowStyles(css...).Globally()
			}
			continue
		}
		if len(names) > 0 {
			p.AllowAttrs(names...).OnElements(el)
		}
		if style && len(css) > 0 {
			p.AllowStyles(css...).OnElements(el)
		}
	}

	schemes := make(set)
	for _, attrs := range r.protocols {
		for _, s := range attrs {
			maps.Copy(schemes, s)
		}
	}
	if len(schemes) > 0 {
		p.RequireParseableURLs(true)
		if schemes.has(Relative) {
			p.AllowRelativeURLs(true)
			delete(schemes, Relative)
		}
		if len(schemes) > 0 {
			p.AllowURLSchemes(slices.Sorted(maps.Keys(schemes))...)
		}
	}
	return p
}
