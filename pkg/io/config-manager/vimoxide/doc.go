// Package configmanager implements configuration loading for vimoxide's conf.json.
//
// Note: This package shares the "configmanager" package name with its parent directory
// (pkg/io/config-manager). Import with an alias for clarity:
//
//	import vimoxideconfigmanager "github.com/vimoxide/vimoxide/pkg/io/config-manager/vimoxide"
package configmanager
