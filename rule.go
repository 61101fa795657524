package mdsanitizer

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

const (
	// All is the Attributes key whose names are allowed on every element.
	All = "*"

	// Relative is the protocol entry allowing URLs without a scheme.
	Relative = ":relative"

	// DataAttributes, placed in an attribute list, allows every
	// well-formed HTML5 data-* attribute.
	DataAttributes = "data"
)

// RuleSpec is the mutable description from which a [RuleSet] is built.
type RuleSpec struct {
	// Elements lists the tag names that are kept.
	Elements []string

	// Attributes maps a tag name, or All, to the attribute names kept
	// on it.
	Attributes map[string][]string

	// CSSProperties lists the properties kept in style attributes.
	CSSProperties []string

	// Protocols maps element -> attribute -> allowed URL schemes.
	// Attributes without an entry accept any value.
	Protocols map[string]map[string][]string

	// RemoveContents lists disallowed elements that are removed with
	// their whole subtree instead of being unwrapped.
	RemoveContents []string

	// Transformers run in order after the whitelist pass.
	Transformers []Transformer
}

func (s RuleSpec) clone() RuleSpec {
	c := RuleSpec{
		Elements:       slices.Clone(s.Elements),
		CSSProperties:  slices.Clone(s.CSSProperties),
		RemoveContents: slices.Clone(s.RemoveContents),
		Transformers:   slices.Clone(s.Transformers),
	}
	if s.Attributes != nil {
		c.Attributes = make(map[string][]string, len(s.Attributes))
		for k, v := range s.Attributes {
			c.Attributes[k] = slices.Clone(v)
		}
	}
	if s.Protocols != nil {
		c.Protocols = make(map[string]map[string][]string, len(s.Protocols))
		for el, m := range s.Protocols {
			c.Protocols[el] = make(map[string][]string, len(m))
			for attr, schemes := range m {
				c.Protocols[el][attr] = slices.Clone(schemes)
			}
		}
	}
	return c
}

type set map[string]struct{}

func newSet(names []string) set {
	s := make(set, len(names))
	for _, n := range names {
		s[strings.ToLower(n)] = struct{}{}
	}
	return s
}

func (s set) has(name string) bool {
	_, ok := s[name]
	return ok
}

// A RuleSet is an immutable whitelist. It is safe for concurrent use.
type RuleSet struct {
	spec           RuleSpec
	elements       set
	attributes     map[string]set
	css            set
	protocols      map[string]map[string]set
	removeContents set
}

// NewRuleSet builds a RuleSet from spec. Later changes to spec do not
// affect the returned RuleSet.
func NewRuleSet(spec RuleSpec) *RuleSet {
	spec = spec.clone()
	r := &RuleSet{
		spec:           spec,
		elements:       newSet(spec.Elements),
		attributes:     make(map[string]set, len(spec.Attributes)),
		css:            newSet(spec.CSSProperties),
		protocols:      make(map[string]map[string]set, len(spec.Protocols)),
		removeContents: newSet(spec.RemoveContents),
	}
	for el, names := range spec.Attributes {
		r.attributes[strings.ToLower(el)] = newSet(names)
	}
	for el, m := range spec.Protocols {
		ps := make(map[string]set, len(m))
		for attr, schemes := range m {
			ps[strings.ToLower(attr)] = newSet(schemes)
		}
		r.protocols[strings.ToLower(el)] = ps
	}
	return r
}

// Spec returns a copy of the description r was built from.
func (r *RuleSet) Spec() RuleSpec { return r.spec.clone() }

// Derive returns a new RuleSet built from a copy of r's spec after
// edit has modified it. r itself is unchanged.
func (r *RuleSet) Derive(edit func(*RuleSpec)) *RuleSet {
	spec := r.Spec()
	edit(&spec)
	return NewRuleSet(spec)
}

// AllowsElement reports whether elements named tag are kept.
func (r *RuleSet) AllowsElement(tag string) bool {
	return r.elements.has(strings.ToLower(tag))
}

// AllowedAttributes returns the sorted attribute names allowed on tag,
// including the names allowed on every element. The DataAttributes
// marker is left out; whether data-* names are allowed is reported by
// AllowsAttribute.
func (r *RuleSet) AllowedAttributes(tag string) []string {
	names := maps.Clone(r.attributes[All])
	if names == nil {
		names = make(set)
	}
	maps.Copy(names, r.attributes[strings.ToLower(tag)])
	delete(names, DataAttributes)
	return slices.Sorted(maps.Keys(names))
}

// AllowsAttribute reports whether the attribute name may appear on tag,
// without looking at its value.
func (r *RuleSet) AllowsAttribute(tag, name string) bool {
	tag, name = strings.ToLower(tag), strings.ToLower(name)
	if name == DataAttributes {
		// The marker itself never names a real attribute.
		return false
	}
	specific, global := r.attributes[tag], r.attributes[All]
	if specific.has(name) || global.has(name) {
		return true
	}
	if specific.has(DataAttributes) || global.has(DataAttributes) {
		return validDataAttribute(name)
	}
	return false
}

// AllowsCSSProperty reports whether the CSS property is kept in
// style attributes.
func (r *RuleSet) AllowsCSSProperty(name string) bool {
	return r.css.has(strings.ToLower(strings.TrimSpace(name)))
}

// AllowedSchemes returns the sorted schemes allowed for the attribute
// on tag. The boolean is false when the attribute has no protocol
// restriction.
func (r *RuleSet) AllowedSchemes(tag, attr string) ([]string, bool) {
	s, ok := r.schemes(strings.ToLower(tag), strings.ToLower(attr))
	if !ok {
		return nil, false
	}
	return slices.Sorted(maps.Keys(s)), true
}

func (r *RuleSet) schemes(tag, attr string) (set, bool) {
	s, ok := r.protocols[tag][attr]
	return s, ok
}

// removesContents reports whether a disallowed element is removed
// with its subtree.
func (r *RuleSet) removesContents(tag string) bool {
	return r.removeContents.has(tag)
}

// Transformers returns the rule's transformer pipeline.
func (r *RuleSet) Transformers() []Transformer {
	return slices.Clone(r.spec.Transformers)
}

var dataInvalidChars = regexp.MustCompile("[A-Z;]+")

// validDataAttribute reports whether name is an HTML5 data attribute.
func validDataAttribute(name string) bool {
	rest, ok := strings.CutPrefix(name, "data-")
	if !ok || rest == "" {
		return false
	}
	// data-xml* is reserved.
	if strings.HasPrefix(rest, "xml") {
		return false
	}
	return !dataInvalidChars.MatchString(rest)
}
