// Package config manages persisted client settings.
//
// Settings live in a YAML file under the platform's configuration
// directory (e.g. ~/.config/invadm/config.yaml on Linux) and hold the
// default backend base URL, the request timeout, and delete-confirmation
// preferences. The file is optional: when absent, defaults are used.
//
// Loading is lazy and shared; saving is atomic (write to a temp file,
// then rename) so a crash can never leave a truncated config behind.
package config
