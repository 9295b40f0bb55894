package di

import (
	"os"

	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vimoxide/vimoxide/pkg/apis/config/v1alpha1"
	"github.com/vimoxide/vimoxide/pkg/appdir"
	"github.com/vimoxide/vimoxide/pkg/history"
	configmanagerinterface "github.com/vimoxide/vimoxide/pkg/io/config-manager"
	configmanager "github.com/vimoxide/vimoxide/pkg/io/config-manager/vimoxide"
	"github.com/vimoxide/vimoxide/pkg/launcher"
	"github.com/vimoxide/vimoxide/pkg/logging"
	"github.com/vimoxide/vimoxide/pkg/matcher"
	"github.com/vimoxide/vimoxide/pkg/utils/notify"
)

// Dependency providers.

// LauncherFactory creates a launcher for the configured executor.
type LauncherFactory func(executor v1alpha1.Executor) *launcher.Launcher

// Dependencies are the leaf values the default providers build on.
// Zero fields fall back to the operating system.
type Dependencies struct {
	Fs             afero.Fs
	Environment    *appdir.Environment
	Canonicalizer  func(path string) (string, error)
	LauncherOption []launcher.Option
}

// NewRuntime constructs the runtime used by the root command, backed by the operating system.
func NewRuntime() *Runtime {
	return NewRuntimeWith(Dependencies{})
}

// NewRuntimeWith constructs a runtime from explicit dependencies.
func NewRuntimeWith(deps Dependencies) *Runtime {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	if deps.Environment == nil {
		env := appdir.FromOS()
		deps.Environment = &env
	}

	return New(
		provideFs(deps.Fs),
		provideEnvironment(*deps.Environment),
		provideDirs,
		provideLogger,
		provideConfigManager,
		provideHistory(deps.Canonicalizer),
		provideMatcher,
		provideLauncherFactory(deps.LauncherOption),
	)
}

func provideFs(fs afero.Fs) Module {
	return func(i Injector) error {
		do.ProvideValue(i, fs)

		return nil
	}
}

func provideEnvironment(env appdir.Environment) Module {
	return func(i Injector) error {
		do.ProvideValue(i, env)

		return nil
	}
}

// provideDirs resolves the configuration directory lazily, on first use.
func provideDirs(i Injector) error {
	do.Provide(i, func(injector Injector) (appdir.Dirs, error) {
		fs, err := ResolveFs(injector)
		if err != nil {
			return appdir.Dirs{}, err
		}

		env, err := ResolveEnvironment(injector)
		if err != nil {
			return appdir.Dirs{}, err
		}

		return appdir.Resolve(fs, env)
	})

	return nil
}

// provideLogger builds the diagnostic logger from the running command's
// --log-level flag, falling back to VIMOXIDE_LOG_LEVEL.
func provideLogger(i Injector) error {
	do.Provide(i, func(injector Injector) (logrus.FieldLogger, error) {
		level := os.Getenv(logging.LevelEnvVar)

		cmd, err := do.Invoke[*cobra.Command](injector)
		if err != nil || cmd == nil {
			return logging.New(os.Stderr, level)
		}

		flag := cmd.Flags().Lookup(logging.FlagName)
		if flag != nil && (flag.Changed || level == "") {
			level = flag.Value.String()
		}

		return logging.New(cmd.ErrOrStderr(), level)
	})

	return nil
}

func provideConfigManager(i Injector) error {
	do.Provide(i, func(injector Injector) (configmanagerinterface.ConfigManager, error) {
		fs, err := ResolveFs(injector)
		if err != nil {
			return nil, err
		}

		dirs, err := ResolveDirs(injector)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(injector)
		if err != nil {
			return nil, err
		}

		return configmanager.NewConfigManager(fs, dirs.ConfigFile(), logger), nil
	})

	return nil
}

// provideHistory loads the history table from the configuration directory.
func provideHistory(canonicalize func(path string) (string, error)) Module {
	return func(i Injector) error {
		do.Provide(i, func(injector Injector) (*history.Store, error) {
			fs, err := ResolveFs(injector)
			if err != nil {
				return nil, err
			}

			dirs, err := ResolveDirs(injector)
			if err != nil {
				return nil, err
			}

			logger, err := ResolveLogger(injector)
			if err != nil {
				return nil, err
			}

			opts := []history.Option{history.WithFs(fs), history.WithLogger(logger)}
			if canonicalize != nil {
				opts = append(opts, history.WithCanonicalizer(canonicalize))
			}

			return history.Load(dirs.HistoryFile(), opts...), nil
		})

		return nil
	}
}

func provideMatcher(i Injector) error {
	do.Provide(i, func(injector Injector) (*matcher.Matcher, error) {
		fs, err := ResolveFs(injector)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(injector)
		if err != nil {
			return nil, err
		}

		return matcher.New(matcher.WithFs(fs), matcher.WithLogger(logger)), nil
	})

	return nil
}

// provideLauncherFactory registers a factory whose launchers report warnings on the
// running command's stderr. extra options are applied last.
func provideLauncherFactory(extra []launcher.Option) Module {
	return func(i Injector) error {
		do.Provide(i, func(injector Injector) (LauncherFactory, error) {
			logger, err := ResolveLogger(injector)
			if err != nil {
				return nil, err
			}

			opts := []launcher.Option{launcher.WithLogger(logger)}

			cmd, err := do.Invoke[*cobra.Command](injector)
			if err == nil && cmd != nil {
				opts = append(opts, launcher.WithWarn(func(format string, args ...any) {
					notify.Warningf(cmd.ErrOrStderr(), format, args...)
				}))
			}

			opts = append(opts, extra...)

			return func(executor v1alpha1.Executor) *launcher.Launcher {
				return launcher.New(executor, opts...)
			}, nil
		})

		return nil
	}
}
