// Package configmanager defines how vimoxide configuration is loaded.
//
// Loading never fails: every problem with the configuration file results in the
// default configuration, and the returned [LoadResult] records which default was
// used and why.
package configmanager

import (
	"github.com/vimoxide/vimoxide/pkg/apis/config/v1alpha1"
)

// Reason explains why a default configuration value was used.
type Reason int

const (
	// ReasonNone means the configuration was read successfully.
	ReasonNone Reason = iota
	// ReasonMissing means no configuration file exists.
	ReasonMissing
	// ReasonUnreadable means the configuration file exists but could not be read.
	ReasonUnreadable
	// ReasonMalformed means the configuration file is not valid JSON.
	ReasonMalformed
	// ReasonInvalidExecutor means the executor is absent or not one of vim/nvim.
	ReasonInvalidExecutor
)

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMissing:
		return "config file missing"
	case ReasonUnreadable:
		return "config file unreadable"
	case ReasonMalformed:
		return "config file malformed"
	case ReasonInvalidExecutor:
		return "invalid executor"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of loading the configuration.
type LoadResult struct {
	// Config is always usable.
	Config *v1alpha1.Config
	// UsedDefault is true when Config holds the default instead of configured values.
	UsedDefault bool
	// Reason explains UsedDefault. It is ReasonNone when UsedDefault is false.
	Reason Reason
	// Err carries the underlying error behind Reason, if any.
	Err error
}

// ConfigManager provides configuration management functionality.
type ConfigManager interface {
	// Load reads the configuration, falling back to defaults on any problem.
	Load() LoadResult
	// Write persists cfg, refusing to overwrite an existing file unless force is set.
	Write(cfg *v1alpha1.Config, force bool) error
}
