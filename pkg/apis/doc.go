// Package apis provides versioned API type definitions for vimoxide.
//
//   - config: the conf.json schema (executor selection)
package apis
