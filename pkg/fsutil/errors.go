package fsutil

import "errors"

// ErrEmptyOutputPath is returned when an output path is empty.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

// ErrFileExists is returned when a write would overwrite an existing file without force.
var ErrFileExists = errors.New("file already exists")
