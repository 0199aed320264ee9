// Package settings is the device's persistent key/value store.
//
// Values live in a single file whose format follows its extension: TOML
// (.toml), YAML (.yaml, .yml), or JSON (.json). A missing file is not an
// error; the store starts from the built-in defaults.
package settings
