package mdsanitizer

import "log/slog"

// Request carries the context of one sanitization call.
type Request struct {
	// Script marks a document whose script and iframe embeds were
	// approved upstream. It selects Scriptable instead of Strict.
	Script bool

	// Rule, if set, replaces the built-in rules wholesale.
	Rule *RuleSet

	// Logger receives debug records for every element removed or
	// unwrapped. A nil Logger disables logging.
	Logger *slog.Logger
}

// RuleSet returns the rule the request resolves to: Rule if set,
// then Scriptable if Script is true, then Strict.
func (req Request) RuleSet() *RuleSet {
	switch {
	case req.Rule != nil:
		return req.Rule
	case req.Script:
		return Scriptable
	default:
		return Strict
	}
}
