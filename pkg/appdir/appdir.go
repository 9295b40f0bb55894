// Package appdir locates the per-user vimoxide configuration directory.
//
// The directory is computed from an explicit [Environment] value rather than from
// process globals, so callers (and tests) decide where configuration lives.
package appdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// Name is the directory name vimoxide uses below the user configuration directory.
	Name = "vimoxide"
	// HistoryFileName is the name of the persisted history table.
	HistoryFileName = "history"
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "conf.json"
	// ConfigDirEnvVar overrides the configuration directory when set.
	ConfigDirEnvVar = "VIMOXIDE_CONFIG_DIR"

	defaultHomeRoot = "/home"
	dirPermUserRWX  = 0o755
)

// ErrConfigDirUnavailable is returned when no configuration directory can be determined.
var ErrConfigDirUnavailable = errors.New("unable to determine configuration directory")

// Environment carries the inputs used to locate the configuration directory.
type Environment struct {
	// ConfigDirOverride is used verbatim when non-empty.
	ConfigDirOverride string
	// SudoUser is the invoking user when running under sudo.
	SudoUser string
	// User is the current login name.
	User string
	// HomeRoot is the parent of per-user home directories. Defaults to /home.
	HomeRoot string
	// UserConfigDir returns the platform configuration directory (os.UserConfigDir).
	UserConfigDir func() (string, error)
	// Shell is the login shell path, used for the alias hint.
	Shell string
}

// FromOS builds an Environment from the current process.
func FromOS() Environment {
	return Environment{
		ConfigDirOverride: os.Getenv(ConfigDirEnvVar),
		SudoUser:          os.Getenv("SUDO_USER"),
		User:              os.Getenv("USER"),
		HomeRoot:          defaultHomeRoot,
		UserConfigDir:     os.UserConfigDir,
		Shell:             os.Getenv("SHELL"),
	}
}

// Dirs holds the resolved vimoxide locations.
type Dirs struct {
	ConfigDir string
}

// HistoryFile returns the path of the history table.
func (d Dirs) HistoryFile() string {
	return filepath.Join(d.ConfigDir, HistoryFileName)
}

// ConfigFile returns the path of conf.json.
func (d Dirs) ConfigFile() string {
	return filepath.Join(d.ConfigDir, ConfigFileName)
}

// Ensure creates the configuration directory if it does not exist.
func (d Dirs) Ensure(fs afero.Fs) error {
	err := fs.MkdirAll(d.ConfigDir, dirPermUserRWX)
	if err != nil {
		return fmt.Errorf("create configuration directory %s: %w", d.ConfigDir, err)
	}

	return nil
}

// Resolve determines the configuration directory.
//
// Precedence:
//  1. ConfigDirOverride
//  2. <HomeRoot>/<user>/.config, where user is SudoUser or else User, when that directory exists.
//     This keeps `sudo vimoxide` pointed at the caller's configuration.
//  3. UserConfigDir()
//
// The vimoxide directory name is appended in cases 2 and 3.
func Resolve(fs afero.Fs, env Environment) (Dirs, error) {
	if env.ConfigDirOverride != "" {
		return Dirs{ConfigDir: filepath.Clean(env.ConfigDirOverride)}, nil
	}

	if base, ok := userConfigBase(fs, env); ok {
		return Dirs{ConfigDir: filepath.Join(base, Name)}, nil
	}

	if env.UserConfigDir == nil {
		return Dirs{}, ErrConfigDirUnavailable
	}

	base, err := env.UserConfigDir()
	if err != nil {
		return Dirs{}, fmt.Errorf("%w: %w", ErrConfigDirUnavailable, err)
	}

	if base == "" {
		return Dirs{}, ErrConfigDirUnavailable
	}

	return Dirs{ConfigDir: filepath.Join(base, Name)}, nil
}

func userConfigBase(fs afero.Fs, env Environment) (string, bool) {
	user := env.SudoUser
	if user == "" {
		user = env.User
	}

	if user == "" {
		return "", false
	}

	homeRoot := env.HomeRoot
	if homeRoot == "" {
		homeRoot = defaultHomeRoot
	}

	candidate := filepath.Join(homeRoot, user, ".config")

	isDir, err := afero.IsDir(fs, candidate)
	if err != nil || !isDir {
		return "", false
	}

	return candidate, true
}
