// Package render turns Systems, search results and proof traces into
// text for the three downstream consumers: plain text for leaf-system
// files and round-trip parsing, LaTeX for proof transcripts, and
// computer-algebra syntax for the external decision procedure that
// closes out leaf systems.
//
// Rendering never mutates a System. The plain format is the canonical
// interchange form: ParsePlain inverts Plain exactly.
package render
