// Package history provides undo and redo stacks over persistent rope
// states.
//
// Each recorded revision holds a complete rope value. Ropes share all
// unchanged subtrees between revisions, so retaining a long edit
// history costs memory proportional to the edits, not to the document
// size times the number of revisions.
package history
