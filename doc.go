// Package mdsanitizer is the last sanitization stage of a
// markdown-to-HTML rendering pipeline.
//
// # Overview
//
// mdsanitizer works on an already parsed document tree. Trees parsed
// with golang.org/x/net/html are copied into a [Document] with
// [FromHTML] or [FromHTMLNodes]; [Sanitize] then mutates the Document
// in place and [Document.Render] writes it back out.
//
// Sanitization is two passes over the tree:
//   - the whitelist pass drops disallowed attributes, filters style
//     declarations and URL schemes, and unwraps disallowed elements
//     (keeping their children), except for the [RuleSpec.RemoveContents]
//     elements, which are removed with their subtree
//   - each of the rule's [Transformer]s then runs once, in order, for
//     the structural rules a whitelist cannot express
//
// # Rules
//
// A [RuleSet] is immutable and shared process-wide. Two are built in:
//   - [Strict], used by default. Scripts and iframes survive only when
//     they match a provider in the embed package registry.
//   - [Scriptable], derived from Strict, for documents whose embeds
//     were approved upstream. It also allows data-* attributes and
//     video.
//
// A [Request] selects between them, or replaces both with its own Rule.
// Override rules can be loaded from YAML with [LoadRuleSet].
//
// # Thread Safety
//
// RuleSets, the built-in transformers and the embed registry are
// read-only and safe for concurrent use. A Document must be owned by a
// single call at a time.
//
// # Example
//
//	doc := mdsanitizer.FromHTMLNodes(nodes)
//	mdsanitizer.Sanitize(doc, mdsanitizer.Request{Script: approved})
//	err := doc.Render(w)
package mdsanitizer
