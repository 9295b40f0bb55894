// Package fsutil provides filesystem helpers shared by the history store, the matcher
// and the configuration manager.
//
// Key functionality:
//   - Path operations: Canonicalize, CleanAbs, Exists
//   - File writing: TryWriteFile, WriteFileAtomic
//
// All file access goes through an afero.Fs so callers can substitute an in-memory
// filesystem.
package fsutil
