// Package tmpl provides typed placeholder templates.
//
// A template is plain text with named placeholders such as
// "Hello {Name}!". Placeholders are resolved against the field list of a
// Params type once, when the template is parsed, so rendering can never
// fail on an unknown name.
//
// Syntax:
//   - {name} references the field called name, matched verbatim
//   - {{ and }} produce literal braces
//   - a lone } or an unterminated { is a parse error
//
// Params implementations are usually generated with cmd/tmplgen, or
// derived at run time with the reflectfields package.
package tmpl
