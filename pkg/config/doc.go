// Package config handles run configuration for dotpatch.
// Values are layered from built-in defaults, DOTPATCH_* environment
// variables and explicitly set command-line flags, in that order.
package config
