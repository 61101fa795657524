package mdsanitizer

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// transformerNames maps the names accepted by LoadRuleSet to the
// built-in transformers.
var transformerNames = map[string]Transformer{
	"strip_invalid_node": StripInvalidNode,
	"filter_script":      FilterScript,
	"filter_iframe":      FilterIframe,
}

// ruleFile is the YAML form of a rule.
type ruleFile struct {
	Base           string                         `yaml:"base"`
	Elements       []string                       `yaml:"elements"`
	Attributes     map[string][]string            `yaml:"attributes"`
	CSSProperties  []string                       `yaml:"css_properties"`
	Protocols      map[string]map[string][]string `yaml:"protocols"`
	RemoveContents []string                       `yaml:"remove_contents"`
	Transformers   []string                       `yaml:"transformers"`
}

// LoadRuleSet decodes an override rule from YAML:
//
//	base: strict            # optional: strict or scriptable
//	elements: [p, a]
//	attributes:
//	  a: [href]
//	  all: [class]          # "all" or "*": every element; "data": data-* attributes
//	css_properties: [text-align]
//	protocols:
//	  a:
//	    href: [relative, https]
//	remove_contents: [script, style]
//	transformers: [strip_invalid_node, filter_script, filter_iframe]
//
// Keys present in the file replace the base rule's value for that key;
// absent keys keep it. Without a base, absent keys are empty.
func LoadRuleSet(r io.Reader) (*RuleSet, error) {
	var f ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("mdsanitizer: empty rule file")
		}
		return nil, fmt.Errorf("mdsanitizer: decoding rule: %w", err)
	}

	var spec RuleSpec
	switch f.Base {
	case "":
	case "strict":
		spec = Strict.Spec()
	case "scriptable":
		spec = Scriptable.Spec()
	default:
		return nil, fmt.Errorf("mdsanitizer: unknown base rule %q", f.Base)
	}

	if f.Elements != nil {
		spec.Elements = f.Elements
	}
	if f.Attributes != nil {
		spec.Attributes = make(map[string][]string, len(f.Attributes))
		for el, names := range f.Attributes {
			if el == "all" {
				el = All
			}
			spec.Attributes[el] = append(spec.Attributes[el], names...)
		}
	}
	if f.CSSProperties != nil {
		spec.CSSProperties = f.CSSProperties
	}
	if f.Protocols != nil {
		spec.Protocols = make(map[string]map[string][]string, len(f.Protocols))
		for el, m := range f.Protocols {
			spec.Protocols[el] = make(map[string][]string, len(m))
			for attr, schemes := range m {
				schemes = slices.Clone(schemes)
				for i, s := range schemes {
					if s == "relative" {
						schemes[i] = Relative
					}
				}
				spec.Protocols[el][attr] = schemes
			}
		}
	}
	if f.RemoveContents != nil {
		spec.RemoveContents = f.RemoveContents
	}
	if f.Transformers != nil {
		spec.Transformers = nil
		for _, name := range f.Transformers {
			t, ok := transformerNames[name]
			if !ok {
				return nil, fmt.Errorf("mdsanitizer: unknown transformer %q", name)
			}
			spec.Transformers = append(spec.Transformers, t)
		}
	}
	return NewRuleSet(spec), nil
}
