package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPermUserGroupRX = 0o750
	filePermUserRW     = 0o600
)

// TryWriteFile writes content to output, handling force/overwrite logic.
//
// When the file already exists and force is false nothing is written and
// ErrFileExists is returned. Missing parent directories are created.
func TryWriteFile(fs afero.Fs, content []byte, output string, force bool) error {
	if output == "" {
		return ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	if !force {
		_, err := fs.Stat(output)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, output)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check file %s: %w", output, err)
		}
	}

	dir := filepath.Dir(output)

	err := fs.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	err = afero.WriteFile(fs, output, content, filePermUserRW)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", output, err)
	}

	return nil
}

// WriteFileAtomic replaces output with content by writing a temporary file in the
// same directory and renaming it into place. Readers see either the old or the new
// file, never a partial one.
func WriteFileAtomic(fs afero.Fs, output string, content []byte) error {
	if output == "" {
		return ErrEmptyOutputPath
	}

	dir := filepath.Dir(output)

	err := fs.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(output)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Sync()
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = fs.Remove(tmpName)

		return fmt.Errorf("failed to write file %s: %w", tmpName, err)
	}

	err = fs.Rename(tmpName, output)
	if err != nil {
		_ = fs.Remove(tmpName)

		return fmt.Errorf("failed to replace %s: %w", output, err)
	}

	return nil
}
