// Package config loads buffer configuration from TOML files with
// LINEEDIT_* environment overrides, and turns it into buffer options plus
// the collaborators they need.
package config
