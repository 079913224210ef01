// Package config loads the server settings from defaults, an optional
// config.yaml and TASKLIST_-prefixed environment variables, then validates
// them with struct tags.
package config
