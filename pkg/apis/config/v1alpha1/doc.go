// Package v1alpha1 contains the configuration types for vimoxide.
//
// The configuration is a single JSON document stored in conf.json inside the
// vimoxide configuration directory:
//
//	{"executor": "nvim"}
package v1alpha1
