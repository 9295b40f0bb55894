package cmd

import "io"

// ExportWrapWidth exposes wrapWidth for testing.
func ExportWrapWidth(writer io.Writer) uint {
	return wrapWidth(writer)
}
