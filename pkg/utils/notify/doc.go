// Package notify prints one-line status messages for CLI users.
//
// Each [Kind] has its own symbol and color: error (✗), warning (⚠), activity (►),
// success (✔) and info (ℹ). [Printf] writes a message of any kind; [Errorf],
// [Warningf], [Activityf], [Successf] and [Infof] are shorthands.
package notify
