package di

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/vimoxide/vimoxide/pkg/appdir"
	"github.com/vimoxide/vimoxide/pkg/history"
	configmanagerinterface "github.com/vimoxide/vimoxide/pkg/io/config-manager"
	"github.com/vimoxide/vimoxide/pkg/matcher"
)

// Dependency resolvers.

// ResolveFs retrieves the filesystem.
func ResolveFs(injector Injector) (afero.Fs, error) {
	fs, err := do.Invoke[afero.Fs](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve filesystem dependency: %w", err)
	}

	return fs, nil
}

// ResolveEnvironment retrieves the environment used to locate the configuration directory.
func ResolveEnvironment(injector Injector) (appdir.Environment, error) {
	env, err := do.Invoke[appdir.Environment](injector)
	if err != nil {
		return appdir.Environment{}, fmt.Errorf("resolve environment dependency: %w", err)
	}

	return env, nil
}

// ResolveDirs retrieves the vimoxide directories.
func ResolveDirs(injector Injector) (appdir.Dirs, error) {
	dirs, err := do.Invoke[appdir.Dirs](injector)
	if err != nil {
		return appdir.Dirs{}, fmt.Errorf("resolve app dirs dependency: %w", err)
	}

	return dirs, nil
}

// ResolveLogger retrieves the diagnostic logger.
func ResolveLogger(injector Injector) (logrus.FieldLogger, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveConfigManager retrieves the configuration manager.
func ResolveConfigManager(injector Injector) (configmanagerinterface.ConfigManager, error) {
	manager, err := do.Invoke[configmanagerinterface.ConfigManager](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve config manager dependency: %w", err)
	}

	return manager, nil
}

// ResolveHistory retrieves the history table loaded for this invocation.
func ResolveHistory(injector Injector) (*history.Store, error) {
	store, err := do.Invoke[*history.Store](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve history dependency: %w", err)
	}

	return store, nil
}

// ResolveMatcher retrieves the query matcher.
func ResolveMatcher(injector Injector) (*matcher.Matcher, error) {
	m, err := do.Invoke[*matcher.Matcher](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve matcher dependency: %w", err)
	}

	return m, nil
}

// ResolveLauncherFactory retrieves the launcher factory.
func ResolveLauncherFactory(injector Injector) (LauncherFactory, error) {
	factory, err := do.Invoke[LauncherFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve launcher factory dependency: %w", err)
	}

	return factory, nil
}
