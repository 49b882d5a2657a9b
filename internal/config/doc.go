// Package config loads the dashboard helper configuration from a YAML
// file with environment variable overrides (POSEDASH_* prefix).
//
// No field is required: an empty configuration resolves to usable
// defaults so the helpers can be embedded without any setup. The model
// root path is deliberately left defaultless since there is no sensible
// guess for where model outputs live.
package config
