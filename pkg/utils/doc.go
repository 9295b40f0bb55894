// Package utils groups small utility packages shared across vimoxide.
//
//   - notify: formatted user-facing messages with symbols and colors
package utils
