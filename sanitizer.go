package mdsanitizer

import (
	"log/slog"
	"strings"
)

// Sanitize cleans d in place under the rule req resolves to and
// returns d. It never fails; in the worst case the tree ends up empty.
func Sanitize(d *Document, req Request) *Document {
	p := &pass{d: d, rule: req.RuleSet(), lg: req.Logger}
	p.run()
	return d
}

// SanitizeWithRule cleans d in place under r and returns d.
func SanitizeWithRule(d *Document, r *RuleSet) *Document {
	p := &pass{d: d, rule: r}
	p.run()
	return d
}

// An outcome is one change the engine made. Outcomes are only
// counted and logged; callers observe the resulting tree.
type outcome uint8

const (
	unwrapped outcome = iota
	removed
	attributeDropped
	declarationDropped
	numOutcomes
)

func (o outcome) String() string {
	switch o {
	case unwrapped:
		return "unwrapped"
	case removed:
		return "removed"
	case attributeDropped:
		return "attributes_dropped"
	case declarationDropped:
		return "declarations_dropped"
	}
	return "unknown"
}

// pass is the state of one Sanitize call.
type pass struct {
	d      *Document
	rule   *RuleSet
	lg     *slog.Logger
	counts [numOutcomes]int
}

func (p *pass) run() {
	p.walk(p.d.root, p.whitelist)
	for _, t := range p.rule.spec.Transformers {
		p.walk(p.d.root, func(id NodeID) Action {
			if p.d.Type(id) != ElementNode {
				return Keep
			}
			return t.Transform(p.d, id)
		})
	}
	if p.lg != nil {
		args := make([]any, 0, 2*numOutcomes)
		for o, n := range p.counts {
			args = append(args, outcome(o).String(), n)
		}
		p.lg.Debug("mdsanitizer: sanitized document", args...)
	}
}

// walk visits the children of parent in pre-order, applying visit to
// each node before descending into it. Unwrapped nodes splice their
// children into the position being visited, so those children are
// visited next.
func (p *pass) walk(parent NodeID, visit func(NodeID) Action) {
	for i := 0; i < len(p.d.nodes[parent].children); {
		id := p.d.nodes[parent].children[i]
		switch visit(id) {
		case Keep:
			p.walk(id, visit)
			i++
		case Unwrap:
			p.note(unwrapped, id)
			p.d.Unwrap(id)
		default:
			p.note(removed, id)
			p.d.Remove(id)
		}
	}
}

func (p *pass) note(o outcome, id NodeID) {
	p.counts[o]++
	if p.lg != nil && p.d.Type(id) == ElementNode {
		p.lg.Debug("mdsanitizer: "+o.String()+" element", "tag", p.d.Tag(id))
	}
}

// whitelist applies the rule's element, attribute, protocol and CSS
// decisions to a single node.
func (p *pass) whitelist(id NodeID) Action {
	switch p.d.Type(id) {
	case TextNode:
		return Keep
	case ElementNode:
	default:
		// Comments, doctypes and stray document nodes never survive.
		return Remove
	}

	tag := p.d.Tag(id)
	if !p.rule.AllowsElement(tag) {
		if p.rule.removesContents(tag) {
			return Remove
		}
		return Unwrap
	}
	p.filterAttrs(id, tag)
	return Keep
}

func (p *pass) filterAttrs(id NodeID, tag string) {
	attrs := p.d.nodes[id].Attr
	out := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if !p.rule.AllowsAttribute(tag, key) {
			p.counts[attributeDropped]++
			continue
		}
		if schemes, ok := p.rule.schemes(tag, key); ok && !schemeAllowed(a.Val, schemes) {
			p.counts[attributeDropped]++
			continue
		}
		if key == "style" {
			style, dropped := p.rule.filterStyle(a.Val)
			p.counts[declarationDropped] += dropped
			if style == "" {
				p.counts[attributeDropped]++
				continue
			}
			a.Val = style
		}
		a.Key = key
		out = append(out, a)
	}
	p.d.setAttrs(id, out)
}
