// Package buffer provides a thread-safe mutable text buffer over the
// persistent rope.
//
// A Buffer serializes edits and hands out immutable Snapshot values.
// Snapshots are cheap to take and never invalidated, so readers such as
// renderers or search workers can hold one across any number of
// concurrent edits. Attaching a history.History gives the buffer undo
// and redo.
package buffer
