// Package store persists verification runs and their leaf systems to
// SQLite. The engine never touches the store; the CLI records a
// finished run so that leaf systems survive for the external algebra
// step and so that past instances can be listed without re-running the
// search.
//
// Leaf systems are stored in the plain interchange form, so a stored
// leaf round-trips through the render parser unchanged.
package store
