package configmanager

import (
	"encoding/json"
	"errors"
	"fmt"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vimoxide/vimoxide/pkg/apis/config/v1alpha1"
	"github.com/vimoxide/vimoxide/pkg/fsutil"
	configmanagerinterface "github.com/vimoxide/vimoxide/pkg/io/config-manager"
	"github.com/vimoxide/vimoxide/pkg/logging"
)

const (
	// EnvPrefix is the prefix for environment variables overriding configuration keys.
	EnvPrefix = "VIMOXIDE"

	executorKey = "executor"
)

// ErrExecutorNotSet is recorded when the configuration file has no executor key.
var ErrExecutorNotSet = errors.New("executor not set")

// ConfigManager loads conf.json through a dedicated viper instance.
// Configuration priority: defaults < conf.json < VIMOXIDE_EXECUTOR.
type ConfigManager struct {
	Viper  *viper.Viper
	fs     afero.Fs
	path   string
	logger logrus.FieldLogger
}

var _ configmanagerinterface.ConfigManager = (*ConfigManager)(nil)

// NewConfigManager creates a manager for the configuration file at path.
// A nil logger discards diagnostics.
func NewConfigManager(fs afero.Fs, path string, logger logrus.FieldLogger) *ConfigManager {
	return &ConfigManager{
		Viper:  InitializeViper(fs, path),
		fs:     fs,
		path:   path,
		logger: logging.OrDiscard(logger),
	}
}

// InitializeViper returns a viper instance reading path as JSON with environment overrides.
func InitializeViper(fs afero.Fs, path string) *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetFs(fs)
	viperInstance.SetConfigFile(path)
	viperInstance.SetConfigType("json")
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.AutomaticEnv()

	_ = viperInstance.BindEnv(executorKey)

	return viperInstance
}

// Path returns the configuration file location.
func (m *ConfigManager) Path() string {
	return m.path
}

// Load reads the configuration. It never fails; see configmanager.LoadResult.
func (m *ConfigManager) Load() configmanagerinterface.LoadResult {
	reason, cause := m.readConfig()

	if !m.Viper.IsSet(executorKey) {
		if reason == configmanagerinterface.ReasonNone {
			reason, cause = configmanagerinterface.ReasonInvalidExecutor, ErrExecutorNotSet
		}

		return m.defaulted(reason, cause)
	}

	config := &v1alpha1.Config{}

	err := m.Viper.Unmarshal(config, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(setterDecodeHook())
	})
	if err == nil {
		// Weakly typed input may turn non-string values into an unchecked Executor.
		err = config.Validate()
	}

	if err != nil {
		return m.defaulted(configmanagerinterface.ReasonInvalidExecutor, err)
	}

	m.logger.WithField("executor", config.Executor).Debug("configuration loaded")

	return configmanagerinterface.LoadResult{Config: config}
}

// Write persists cfg as indented JSON.
func (m *ConfigManager) Write(cfg *v1alpha1.Config, force bool) error {
	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("refusing to write configuration: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	err = fsutil.TryWriteFile(m.fs, append(data, '\n'), m.path, force)
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}

func (m *ConfigManager) readConfig() (configmanagerinterface.Reason, error) {
	exists, err := afero.Exists(m.fs, m.path)
	if err != nil {
		return configmanagerinterface.ReasonUnreadable, err
	}

	if !exists {
		return configmanagerinterface.ReasonMissing, nil
	}

	err = m.Viper.ReadInConfig()
	if err == nil {
		return configmanagerinterface.ReasonNone, nil
	}

	var parseErr viper.ConfigParseError
	if errors.As(err, &parseErr) {
		return configmanagerinterface.ReasonMalformed, err
	}

	return configmanagerinterface.ReasonUnreadable, err
}

func (m *ConfigManager) defaulted(
	reason configmanagerinterface.Reason,
	cause error,
) configmanagerinterface.LoadResult {
	entry := m.logger.WithFields(logrus.Fields{
		"path":   m.path,
		"reason": reason.String(),
	})
	if cause != nil {
		entry = entry.WithError(cause)
	}

	entry.Debug("using default configuration")

	return configmanagerinterface.LoadResult{
		Config:      v1alpha1.NewConfig(),
		UsedDefault: true,
		Reason:      reason,
		Err:         cause,
	}
}
