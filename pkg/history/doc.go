// Package history persists how often each file has been opened.
//
// The store maps canonical absolute paths to a rank that grows by one on every
// successful open. It is loaded wholesale at startup, mutated in memory and
// written back wholesale, one JSON object per line:
//
//	{"path":"/home/alice/notes.md","rank":3}
//
// Tables written by older versions as "<path>\t<rank>" lines are still accepted
// and are rewritten as JSON Lines on the next save.
package history
