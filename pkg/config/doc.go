// Package config loads Lockbox configuration from file and environment.
//
// Values are resolved in precedence order: environment variables override
// the config file, which overrides built-in defaults. Each attribute tracks
// the source its value came from, which "lockboxctl configuration show"
// surfaces for operators.
package config
